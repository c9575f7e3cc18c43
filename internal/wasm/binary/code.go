package binary

import (
	"fmt"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// decodeCode reads one Code section entry: a size-prefixed bounded view
// containing the run-length-encoded locals followed by the function
// body, terminated by end.
func decodeCode(r *boundedReader, features wasm.Features) (wasm.Code, error) {
	size, err := decodeUint32(r)
	if err != nil {
		return wasm.Code{}, fmt.Errorf("%w: code entry size: %s", wasm.ErrExpectedSize, err)
	}
	if uint64(size) > r.Remaining {
		return wasm.Code{}, fmt.Errorf("%w: code entry size %d exceeds section", wasm.ErrInvalidSize, size)
	}
	body := newBoundedReader(r, uint64(size))

	localCount, err := decodeVectorSize(body, body.Remaining)
	if err != nil {
		return wasm.Code{}, err
	}
	locals := make([]wasm.Locals, localCount)
	for i := range locals {
		count, err := decodeUint32(body)
		if err != nil {
			return wasm.Code{}, fmt.Errorf("code locals[%d] count: %w", i, err)
		}
		vt, err := decodeValueType(body, features)
		if err != nil {
			return wasm.Code{}, fmt.Errorf("code locals[%d] type: %w", i, err)
		}
		locals[i] = wasm.Locals{Count: count, Type: vt}
	}

	expr, _, err := decodeExpression(newPushbackReader(body), features, false)
	if err != nil {
		return wasm.Code{}, fmt.Errorf("code body: %w", err)
	}

	if err := body.requireExhausted(); err != nil {
		return wasm.Code{}, err
	}

	return wasm.Code{Locals: locals, Body: expr}, nil
}

func decodeCodeSection(r *boundedReader, features wasm.Features) ([]wasm.Code, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	code := make([]wasm.Code, count)
	for i := range code {
		c, err := decodeCode(r, features)
		if err != nil {
			return nil, fmt.Errorf("code[%d]: %w", i, err)
		}
		code[i] = c
	}
	return code, nil
}
