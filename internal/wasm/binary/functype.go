package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

const functionTypeTag = 0x60

// decodeFunctionType reads the Type section's (tag, params, results)
// shape. Results with more than one entry require the multi-value
// feature.
func decodeFunctionType(r io.Reader, features wasm.Features) (wasm.FunctionType, error) {
	tag, err := readByte(r)
	if err != nil {
		return wasm.FunctionType{}, fmt.Errorf("%w: function type tag: %s", wasm.ErrExpectedKindTag, err)
	}
	if tag != functionTypeTag {
		return wasm.FunctionType{}, fmt.Errorf("%w: function type tag 0x%02x != 0x%02x", wasm.ErrInvalidTag, tag, functionTypeTag)
	}

	params, err := decodeResultType(r, features)
	if err != nil {
		return wasm.FunctionType{}, fmt.Errorf("function type params: %w", err)
	}
	results, err := decodeResultType(r, features)
	if err != nil {
		return wasm.FunctionType{}, fmt.Errorf("function type results: %w", err)
	}
	if len(results) > 1 && !features.Has(wasm.FeatureMultiValue) {
		return wasm.FunctionType{}, fmt.Errorf("%w: multiple result types require the multi-value feature", wasm.ErrInvalidInput)
	}

	return wasm.FunctionType{Params: params, Results: results}, nil
}
