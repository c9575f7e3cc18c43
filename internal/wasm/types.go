package wasm

// FunctionType is the (parameters, results) signature shared by a
// function, an import, and a call_indirect/call target.
type FunctionType struct {
	Params  ResultType
	Results ResultType
}

// Limits bounds a table's or memory's size. Max, when non-nil, must be at
// least Min - decodeLimits enforces this.
type Limits struct {
	Min uint32
	Max *uint32
}

// MemoryType is a memory's limits, counted in 64KiB pages.
type MemoryType struct {
	Limits Limits
}

// TableType is a table's element type and size limits. ElementType must be
// a reference type.
type TableType struct {
	ElementType ValueType
	Limits      Limits
}

// GlobalType is a global's value type and mutability.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// BlockTypeKind discriminates BlockType's three encodings.
type BlockTypeKind byte

const (
	// BlockTypeKindEmpty is a block with no parameters and no results.
	BlockTypeKindEmpty BlockTypeKind = iota
	// BlockTypeKindValue is a block producing a single result of ValType.
	BlockTypeKindValue
	// BlockTypeKindTypeIndex is a block whose signature is FunctionType at
	// TypeIndex in the module's TypeSection (params and results).
	BlockTypeKindTypeIndex
)

// BlockType is the signature attached to block, loop, and if. Exactly one
// of ValType / TypeIndex is meaningful, selected by Kind.
type BlockType struct {
	Kind      BlockTypeKind
	ValType   ValueType
	TypeIndex TypeIndex
}

// EmptyBlockType is the signature shared by every block/loop/if that takes
// no parameters and leaves no result - the common case.
var EmptyBlockType = BlockType{Kind: BlockTypeKindEmpty}
