package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func section(id byte, payload []byte) []byte {
	out := []byte{id, byte(len(payload))}
	return append(out, payload...)
}

func header() []byte {
	return append(append([]byte{}, Magic...), version...)
}

func TestDecodeModule_Empty(t *testing.T) {
	m, err := DecodeModuleBytes(header(), wasm.FeaturesAll)
	require.NoError(t, err)
	require.Equal(t, &wasm.Module{}, m)
}

func TestDecodeModule_TypeSectionOnly(t *testing.T) {
	typeSection := section(wasm.SectionIDType, []byte{
		0x01,                   // 1 type
		0x60, 0x00, 0x00, // () -> ()
	})
	input := append(header(), typeSection...)

	m, err := DecodeModuleBytes(input, wasm.FeaturesAll)
	require.NoError(t, err)
	require.Equal(t, []wasm.FunctionType{{}}, m.TypeSection)
}

func TestDecodeModule_IdentityFunction(t *testing.T) {
	// (module (type (func (param i32) (result i32))) (func (type 0) local.get 0))
	typeSection := section(wasm.SectionIDType, []byte{
		0x01,
		0x60, 0x01, byte(wasm.ValueTypeI32), 0x01, byte(wasm.ValueTypeI32),
	})
	functionSection := section(wasm.SectionIDFunction, []byte{0x01, 0x00})
	codeBody := []byte{0x00, wasm.OpcodeLocalGet, 0x00, wasm.OpcodeEnd}
	codeSection := section(wasm.SectionIDCode, append([]byte{0x01, byte(len(codeBody))}, codeBody...))

	input := append(header(), typeSection...)
	input = append(input, functionSection...)
	input = append(input, codeSection...)

	m, err := DecodeModuleBytes(input, wasm.FeaturesAll)
	require.NoError(t, err)
	require.Len(t, m.TypeSection, 1)
	require.Equal(t, []wasm.TypeIndex{0}, m.FunctionSection)
	require.Len(t, m.CodeSection, 1)
	require.Equal(t, wasm.Expression{{Op: wasm.Opcode{Byte: wasm.OpcodeLocalGet}, Operand: wasm.LocalIndex(0)}}, m.CodeSection[0].Body)
}

func TestDecodeModule_MemoryAndDataCount(t *testing.T) {
	memorySection := section(wasm.SectionIDMemory, []byte{0x01, 0x00, 0x01})
	dataCountSection := section(wasm.SectionIDDataCount, []byte{0x01})
	dataSection := section(wasm.SectionIDData, []byte{
		0x01,
		0x00, wasm.OpcodeI32Const, 0x00, wasm.OpcodeEnd,
		0x02, 'h', 'i',
	})

	input := append(header(), memorySection...)
	input = append(input, dataCountSection...)
	input = append(input, dataSection...)

	m, err := DecodeModuleBytes(input, wasm.FeaturesAll)
	require.NoError(t, err)
	require.Len(t, m.MemorySection, 1)
	require.NotNil(t, m.DataCountSection)
	require.Equal(t, uint32(1), *m.DataCountSection)
	require.Equal(t, []byte("hi"), m.DataSection[0].Init)
}

func TestDecodeModule_NameSection(t *testing.T) {
	nameSubsection := append([]byte{0x04}, []byte("name")...)
	nameSubsection = append(nameSubsection, subsectionIDModuleName, 0x07, 0x06, 's', 'i', 'm', 'p', 'l', 'e')
	customSection := section(wasm.SectionIDCustom, nameSubsection)

	m, err := DecodeModuleBytes(append(header(), customSection...), wasm.FeaturesAll)
	require.NoError(t, err)
	require.Equal(t, &wasm.NameSection{ModuleName: "simple"}, m.NameSection)
}

func TestDecodeModule_SkipsUnrelatedCustomSection(t *testing.T) {
	customSection := section(wasm.SectionIDCustom, append([]byte{0x04, 'm', 'e', 'm', 'e'}, 1, 2, 3))
	m, err := DecodeModuleBytes(append(header(), customSection...), wasm.FeaturesAll)
	require.NoError(t, err)
	require.Equal(t, &wasm.Module{CustomSections: []wasm.CustomSection{{Name: "meme", Data: []byte{1, 2, 3}}}}, m)
}

func TestDecodeModule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		err   error
	}{
		{"wrong magic", []byte("wasm\x01\x00\x00\x00"), wasm.ErrInvalidModuleMagic},
		{"wrong version", append(append([]byte{}, Magic...), 0x01, 0x00, 0x00, 0x01), wasm.ErrInvalidModuleVersion},
		{"truncated header", []byte{0x00, 0x61}, wasm.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeModuleBytes(tc.input, wasm.FeaturesAll)
			require.ErrorIs(t, err, tc.err)
		})
	}

	t.Run("out of order sections", func(t *testing.T) {
		codeSection := section(wasm.SectionIDCode, []byte{0x00})
		typeSection := section(wasm.SectionIDType, []byte{0x00})
		input := append(header(), codeSection...)
		input = append(input, typeSection...)
		_, err := DecodeModuleBytes(input, wasm.FeaturesAll)
		require.ErrorIs(t, err, wasm.ErrInvalidInput)
	})

	t.Run("section size mismatch", func(t *testing.T) {
		// a 2-byte section whose 0-count type vector leaves one byte unread
		typeSection := section(wasm.SectionIDType, []byte{0x00, 0xFF})
		_, err := DecodeModuleBytes(append(header(), typeSection...), wasm.FeaturesAll)
		require.ErrorIs(t, err, wasm.ErrInvalidSize)
	})
}
