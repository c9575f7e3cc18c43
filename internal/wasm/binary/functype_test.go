package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func TestDecodeFunctionType(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected wasm.FunctionType
	}{
		{"empty", []byte{0x60, 0x00, 0x00}, wasm.FunctionType{}},
		{
			"one param one result",
			[]byte{0x60, 0x01, 0x7f, 0x01, 0x7f},
			wasm.FunctionType{Params: wasm.ResultType{wasm.ValueTypeI32}, Results: wasm.ResultType{wasm.ValueTypeI32}},
		},
		{
			"two params",
			[]byte{0x60, 0x02, 0x7f, 0x7e, 0x01, 0x7d},
			wasm.FunctionType{Params: wasm.ResultType{wasm.ValueTypeI32, wasm.ValueTypeI64}, Results: wasm.ResultType{wasm.ValueTypeF32}},
		},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			actual, err := decodeFunctionType(bytes.NewReader(tc.input), wasm.FeaturesV1)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecodeFunctionType_Errors(t *testing.T) {
	t.Run("wrong tag", func(t *testing.T) {
		_, err := decodeFunctionType(bytes.NewReader([]byte{0x61, 0x00, 0x00}), wasm.FeaturesV1)
		require.ErrorIs(t, err, wasm.ErrInvalidTag)
	})
	t.Run("multiple results require multi-value", func(t *testing.T) {
		input := []byte{0x60, 0x00, 0x02, 0x7f, 0x7f}
		_, err := decodeFunctionType(bytes.NewReader(input), wasm.FeaturesV1)
		require.ErrorIs(t, err, wasm.ErrInvalidInput)

		ft, err := decodeFunctionType(bytes.NewReader(input), wasm.FeaturesAll)
		require.NoError(t, err)
		require.Equal(t, wasm.ResultType{wasm.ValueTypeI32, wasm.ValueTypeI32}, ft.Results)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := decodeFunctionType(bytes.NewReader(nil), wasm.FeaturesV1)
		require.ErrorIs(t, err, wasm.ErrExpectedKindTag)
	})
}
