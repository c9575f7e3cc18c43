package binary

import (
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeMemoryType(r io.Reader) (wasm.MemoryType, error) {
	limits, err := decodeLimits(r)
	if err != nil {
		return wasm.MemoryType{}, err
	}
	return wasm.MemoryType{Limits: limits}, nil
}
