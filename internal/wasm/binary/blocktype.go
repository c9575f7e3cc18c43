package binary

import (
	"fmt"

	"github.com/tetratelabs/wazero-coredecode/internal/leb128"
	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// emptyBlockTag and valueType bytes share the single-byte encoding space
// with a type-index form, so a block/loop/if immediate can't be decoded
// by looking at one byte in isolation: 0x40 is empty, the value-type
// bytes (0x7C-0x7F, plus funcref 0x70 and externref 0x6F) are themselves valid
// one-byte encodings, and anything else is the first byte of a signed
// 33-bit LEB128 type index into the Type section. decodeBlockType reads
// one byte, classifies it, and - only in the type-index case - pushes
// that byte back so the LEB128 reader sees the whole number.
const emptyBlockTag = 0x40

func decodeBlockType(r *pushbackReader, features wasm.Features) (wasm.BlockType, error) {
	b, err := readByte(r)
	if err != nil {
		return wasm.BlockType{}, err
	}

	if b == emptyBlockTag {
		return wasm.EmptyBlockType, nil
	}

	if vt, err := validateValueType(wasm.ValueType(b), features); err == nil {
		return wasm.BlockType{Kind: wasm.BlockTypeKindValue, ValType: vt}, nil
	}

	if !features.Has(wasm.FeatureMultiValue) {
		return wasm.BlockType{}, fmt.Errorf("%w: multi-value block types require the multi-value feature", wasm.ErrInvalidInput)
	}

	r.unreadByte(b)
	idx, _, err := leb128.DecodeInt33AsInt64(r)
	if err != nil {
		return wasm.BlockType{}, fmt.Errorf("block type: %w", wrapLEBErr(err, wasm.ErrInvalidInput))
	}
	if idx < 0 {
		return wasm.BlockType{}, fmt.Errorf("%w: negative block type index %d", wasm.ErrInvalidInput, idx)
	}
	return wasm.BlockType{Kind: wasm.BlockTypeKindTypeIndex, TypeIndex: wasm.TypeIndex(idx)}, nil
}
