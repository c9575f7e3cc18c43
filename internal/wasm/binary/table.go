package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeTableType(r io.Reader, features wasm.Features) (wasm.TableType, error) {
	elemType, err := decodeValueType(r, features)
	if err != nil {
		return wasm.TableType{}, fmt.Errorf("table element type: %w", err)
	}
	if !elemType.IsReference() {
		return wasm.TableType{}, fmt.Errorf("%w: table element type must be a reference type, got %s", wasm.ErrInvalidType, elemType)
	}

	limits, err := decodeLimits(r)
	if err != nil {
		return wasm.TableType{}, err
	}
	return wasm.TableType{ElementType: elemType, Limits: limits}, nil
}
