package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeExpr(t *testing.T, input []byte, features wasm.Features) wasm.Expression {
	t.Helper()
	expr, terminator, err := decodeExpression(newPushbackReader(bytes.NewReader(input)), features, false)
	require.NoError(t, err)
	require.Equal(t, wasm.OpcodeEnd, terminator)
	return expr
}

func TestDecodeExpression_Flat(t *testing.T) {
	input := []byte{
		wasm.OpcodeI32Const, 0x01,
		wasm.OpcodeI32Const, 0x02,
		0x6a, // i32.add, a bare no-operand opcode in the numeric range
		wasm.OpcodeEnd,
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Len(t, expr, 3)
	require.Equal(t, int32(1), expr[0].Operand)
	require.Equal(t, int32(2), expr[1].Operand)
	require.Equal(t, wasm.Opcode{Byte: 0x6a}, expr[2].Op)
	require.Nil(t, expr[2].Operand)
}

func TestDecodeExpression_NestedBlock(t *testing.T) {
	// (block (result i32) (loop (br 0) ) (i32.const 5))
	input := []byte{
		wasm.OpcodeBlock, 0x7f,
		wasm.OpcodeLoop, 0x40,
		wasm.OpcodeBr, 0x00,
		wasm.OpcodeEnd, // ends loop
		wasm.OpcodeI32Const, 0x05,
		wasm.OpcodeEnd, // ends block
		wasm.OpcodeEnd, // ends outer expression
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Len(t, expr, 1)

	block := expr[0].Operand.(wasm.BlockAndInstructions)
	require.Equal(t, wasm.BlockType{Kind: wasm.BlockTypeKindValue, ValType: wasm.ValueTypeI32}, block.BlockType)
	require.Len(t, block.Body, 2)

	loop := block.Body[0].Operand.(wasm.BlockAndInstructions)
	require.Equal(t, wasm.EmptyBlockType, loop.BlockType)
	require.Equal(t, wasm.Expression{{Op: wasm.Opcode{Byte: wasm.OpcodeBr}, Operand: wasm.LabelIndex(0)}}, loop.Body)

	require.Equal(t, int32(5), block.Body[1].Operand)
}

func TestDecodeExpression_IfElse(t *testing.T) {
	// (if (then (i32.const 1)) (else (i32.const 2)))
	input := []byte{
		wasm.OpcodeIf, 0x40,
		wasm.OpcodeI32Const, 0x01,
		wasm.OpcodeElse,
		wasm.OpcodeI32Const, 0x02,
		wasm.OpcodeEnd, // ends if
		wasm.OpcodeEnd, // ends outer expression
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Len(t, expr, 1)

	ifOp := expr[0].Operand.(wasm.BlockAndTwoInstructions)
	require.Equal(t, int32(1), ifOp.Then[0].Operand)
	require.Equal(t, int32(2), ifOp.Else[0].Operand)
}

func TestDecodeExpression_IfNoElse(t *testing.T) {
	input := []byte{
		wasm.OpcodeIf, 0x40,
		wasm.OpcodeNop,
		wasm.OpcodeEnd,
		wasm.OpcodeEnd,
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	ifOp := expr[0].Operand.(wasm.BlockAndTwoInstructions)
	require.Len(t, ifOp.Then, 1)
	require.Nil(t, ifOp.Else)
}

func TestDecodeExpression_BlockWithNestedIfElse(t *testing.T) {
	// (block (if (then (nop)) (else (nop))))
	input := []byte{
		wasm.OpcodeBlock, 0x40,
		wasm.OpcodeIf, 0x40,
		wasm.OpcodeNop,
		wasm.OpcodeElse,
		wasm.OpcodeNop,
		wasm.OpcodeEnd, // ends if
		wasm.OpcodeEnd, // ends block
		wasm.OpcodeEnd, // ends outer expression
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Len(t, expr, 1)

	block := expr[0].Operand.(wasm.BlockAndInstructions)
	require.Equal(t, wasm.EmptyBlockType, block.BlockType)
	require.Len(t, block.Body, 1)

	ifOp := block.Body[0].Operand.(wasm.BlockAndTwoInstructions)
	require.Equal(t, wasm.EmptyBlockType, ifOp.BlockType)
	require.Equal(t, wasm.Expression{{Op: wasm.Opcode{Byte: wasm.OpcodeNop}}}, ifOp.Then)
	require.Equal(t, wasm.Expression{{Op: wasm.Opcode{Byte: wasm.OpcodeNop}}}, ifOp.Else)
}

func TestDecodeInstruction_BrTable(t *testing.T) {
	input := []byte{
		wasm.OpcodeBrTable,
		0x02, 0x00, 0x01, // 2 labels: 0, 1
		0x02, // default: 2
		wasm.OpcodeEnd,
	}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	tb := expr[0].Operand.(wasm.TableBranch)
	require.Equal(t, []wasm.LabelIndex{0, 1}, tb.Labels)
	require.Equal(t, wasm.LabelIndex(2), tb.Default)
}

func TestDecodeInstruction_CallIndirect(t *testing.T) {
	input := []byte{wasm.OpcodeCallIndirect, 0x03, 0x00, wasm.OpcodeEnd}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Equal(t, wasm.IndirectCall{Type: 3, Table: 0}, expr[0].Operand)
}

func TestDecodeInstruction_MemoryLoadStore(t *testing.T) {
	input := []byte{wasm.OpcodeI32Load, 0x02, 0x04, wasm.OpcodeEnd}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Equal(t, wasm.MemoryArgument{Align: 2, Offset: 4}, expr[0].Operand)
}

func TestDecodeInstruction_MiscBulkMemory(t *testing.T) {
	input := []byte{
		wasm.OpcodeMiscPrefix, wasm.MiscTableInit, 0x01, 0x00,
		wasm.OpcodeEnd,
	}
	expr := decodeExpr(t, input, wasm.FeaturesAll)
	require.Equal(t, wasm.TableElementArgs{Table: 0, Element: 1}, expr[0].Operand)
}

func TestDecodeInstruction_MiscRequiresFeature(t *testing.T) {
	input := []byte{wasm.OpcodeMiscPrefix, wasm.MiscTableInit, 0x01, 0x00, wasm.OpcodeEnd}
	_, _, err := decodeExpression(newPushbackReader(bytes.NewReader(input)), wasm.FeaturesV1, false)
	require.ErrorIs(t, err, wasm.ErrInvalidInput)
}

func TestDecodeInstruction_SaturatingTruncation(t *testing.T) {
	input := []byte{wasm.OpcodeMiscPrefix, wasm.MiscI32TruncSatF32S, wasm.OpcodeEnd}
	expr := decodeExpr(t, input, wasm.FeaturesV1)
	require.Equal(t, wasm.Opcode{Byte: wasm.OpcodeMiscPrefix, Sub: uint32(wasm.MiscI32TruncSatF32S)}, expr[0].Op)
}

func TestDecodeInstruction_UnknownOpcode(t *testing.T) {
	_, _, err := decodeExpression(newPushbackReader(bytes.NewReader([]byte{0xFF, wasm.OpcodeEnd})), wasm.FeaturesAll, false)
	require.ErrorIs(t, err, wasm.ErrInvalidInput)
}

func TestDecodeInstruction_SignExtensionGated(t *testing.T) {
	input := []byte{0xC0, wasm.OpcodeEnd} // i32.extend8_s
	_, _, err := decodeExpression(newPushbackReader(bytes.NewReader(input)), wasm.FeaturesV1, false)
	require.ErrorIs(t, err, wasm.ErrInvalidInput)

	expr := decodeExpr(t, input, wasm.FeatureSignExtension)
	require.Equal(t, wasm.Opcode{Byte: 0xC0}, expr[0].Op)
}

func TestDecodeInstruction_RefIsNullGated(t *testing.T) {
	input := []byte{wasm.OpcodeRefIsNull, wasm.OpcodeEnd}
	_, _, err := decodeExpression(newPushbackReader(bytes.NewReader(input)), wasm.FeaturesV1, false)
	require.ErrorIs(t, err, wasm.ErrInvalidInput)

	expr := decodeExpr(t, input, wasm.FeatureReferenceTypes)
	require.Equal(t, wasm.Opcode{Byte: wasm.OpcodeRefIsNull}, expr[0].Op)
	require.Nil(t, expr[0].Operand)
}
