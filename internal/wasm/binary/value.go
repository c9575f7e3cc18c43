package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// decodeValueType reads a single value-type byte (i32/i64/f32/f64 and
// funcref always, externref only when
// features.Has(wasm.FeatureReferenceTypes)).
func decodeValueType(r io.Reader, features wasm.Features) (wasm.ValueType, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, err
	}
	return validateValueType(wasm.ValueType(b), features)
}

func validateValueType(vt wasm.ValueType, features wasm.Features) (wasm.ValueType, error) {
	switch vt {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return vt, nil
	case wasm.ValueTypeFuncref:
		// funcref is the table element type every WebAssembly 1.0 MVP
		// module already uses; it needs no feature gate.
		return vt, nil
	case wasm.ValueTypeExternref:
		if !features.Has(wasm.FeatureReferenceTypes) {
			return 0, fmt.Errorf("%w: reference types feature is disabled", wasm.ErrInvalidInput)
		}
		return vt, nil
	default:
		return 0, fmt.Errorf("%w: 0x%02x", wasm.ErrInvalidType, byte(vt))
	}
}

// decodeResultType reads a vector of value types, the shape used for a
// FunctionType's params/results.
func decodeResultType(r io.Reader, features wasm.Features) (wasm.ResultType, error) {
	count, err := decodeVectorSize(r, 0)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	result := make(wasm.ResultType, count)
	for i := range result {
		vt, err := decodeValueType(r, features)
		if err != nil {
			return nil, fmt.Errorf("result type[%d]: %w", i, err)
		}
		result[i] = vt
	}
	return result, nil
}
