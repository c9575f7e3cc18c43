package wasm

// Features gates which encoding variants a decode call accepts. A
// disabled feature turns an otherwise-recognized encoding into
// ErrInvalidInput rather than an unknown-opcode or unknown-type error,
// so the message can name the missing feature.
type Features uint32

const (
	// FeatureMultiValue allows a FunctionType/BlockType to have more than
	// one result.
	FeatureMultiValue Features = 1 << iota
	// FeatureSignExtension allows the i32/i64 extendN_s instructions
	// (0xC0-0xC4). WebAssembly 1.0 implementations widely ship this, but
	// it was formally a post-1.0 proposal.
	FeatureSignExtension
	// FeatureReferenceTypes allows externref, table.get/set, and
	// ref.null/ref.is_null/ref.func.
	FeatureReferenceTypes
	// FeatureBulkMemory allows table.init/copy/grow/fill/size,
	// elem.drop, memory.init/copy/fill, and data.drop.
	FeatureBulkMemory
)

// FeaturesV1 is the conservative WebAssembly 1.0 MVP feature set.
const FeaturesV1 Features = 0

// FeaturesAll enables every feature this decoder understands, the right
// default for callers that just want a modern binary parsed.
const FeaturesAll Features = FeatureMultiValue | FeatureSignExtension | FeatureReferenceTypes | FeatureBulkMemory

// Has reports whether every bit set in want is also set in f.
func (f Features) Has(want Features) bool {
	return f&want == want
}
