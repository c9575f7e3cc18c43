package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeGlobalType(r io.Reader, features wasm.Features) (wasm.GlobalType, error) {
	vt, err := decodeValueType(r, features)
	if err != nil {
		return wasm.GlobalType{}, fmt.Errorf("global value type: %w", err)
	}
	mutFlag, err := readByte(r)
	if err != nil {
		return wasm.GlobalType{}, fmt.Errorf("%w: global mutability flag: %s", wasm.ErrExpectedKindTag, err)
	}
	if mutFlag != 0x00 && mutFlag != 0x01 {
		return wasm.GlobalType{}, fmt.Errorf("%w: global mutability flag 0x%02x", wasm.ErrInvalidTag, mutFlag)
	}
	return wasm.GlobalType{ValType: vt, Mutable: mutFlag == 0x01}, nil
}

// decodeGlobal reads a Global section entry: a type followed by a
// constant initializer expression.
func decodeGlobal(r io.Reader, features wasm.Features) (wasm.Global, error) {
	typ, err := decodeGlobalType(r, features)
	if err != nil {
		return wasm.Global{}, err
	}
	init, _, err := decodeExpression(newPushbackReader(r), features, false)
	if err != nil {
		return wasm.Global{}, fmt.Errorf("global init expression: %w", err)
	}
	return wasm.Global{Type: typ, Init: init}, nil
}
