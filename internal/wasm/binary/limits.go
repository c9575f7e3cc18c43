package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// decodeLimits reads the (flags, min[, max]) shape shared by MemoryType
// and TableType: flags is 0x00 for min-only, 0x01 for min-and-max.
func decodeLimits(r io.Reader) (wasm.Limits, error) {
	flag, err := readByte(r)
	if err != nil {
		return wasm.Limits{}, fmt.Errorf("%w: limits flag: %s", wasm.ErrExpectedKindTag, err)
	}
	if flag != 0x00 && flag != 0x01 {
		return wasm.Limits{}, fmt.Errorf("%w: limits flag 0x%02x", wasm.ErrInvalidTag, flag)
	}

	min, err := decodeUint32(r)
	if err != nil {
		return wasm.Limits{}, fmt.Errorf("limits min: %w", err)
	}

	limits := wasm.Limits{Min: min}
	if flag == 0x01 {
		max, err := decodeUint32(r)
		if err != nil {
			return wasm.Limits{}, fmt.Errorf("limits max: %w", err)
		}
		if max < min {
			return wasm.Limits{}, fmt.Errorf("%w: size minimum must not be greater than maximum", wasm.ErrInvalidInput)
		}
		limits.Max = &max
	}
	return limits, nil
}
