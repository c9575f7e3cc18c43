package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/leb128"
	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// no-operand numeric ranges: i32/i64/f32/f64 comparisons, arithmetic,
// conversions (0x45-0xBF), and sign-extension (0xC0-0xC4).
const (
	numericRangeLo    = 0x45
	numericRangeHi    = 0xBF
	signExtendRangeLo = 0xC0
	signExtendRangeHi = 0xC4
)

// isBareOpcode reports whether b is a recognized primary opcode that takes
// no operand at all: it is fully self-contained once the opcode byte has
// been read.
func isBareOpcode(b byte) bool {
	switch {
	case b == wasm.OpcodeUnreachable, b == wasm.OpcodeNop, b == wasm.OpcodeReturn:
	case b == wasm.OpcodeDrop, b == wasm.OpcodeSelect:
	case b == wasm.OpcodeRefIsNull:
	case b >= numericRangeLo && b <= numericRangeHi:
	case b >= signExtendRangeLo && b <= signExtendRangeHi:
	default:
		return false
	}
	return true
}

// isBareMiscOpcode reports whether misc sub-opcode s is one of the
// saturating truncations (0-7), which take no immediate at all.
// memory.copy/fill, whose only immediates are reserved bytes, are not
// included.
func isBareMiscOpcode(s uint32) bool {
	return s <= uint32(wasm.MiscI64TruncSatF64U)
}

// decodeExpression decodes instructions until it consumes a terminator
// (end or, when allowElse, also else), returning the body and which byte
// ended it. It drives the nested block/loop/if state machine: for those
// opcodes decodeInstructionBody calls back into decodeExpression for
// their own sub-expressions.
func decodeExpression(r *pushbackReader, features wasm.Features, allowElse bool) (wasm.Expression, byte, error) {
	var body wasm.Expression
	for {
		opByte, err := readByte(r)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", wasm.ErrExpectedValueOrTerminator, err)
		}
		if opByte == wasm.OpcodeEnd {
			return body, opByte, nil
		}
		if allowElse && opByte == wasm.OpcodeElse {
			return body, opByte, nil
		}

		inst, err := decodeInstructionBody(r, opByte, features)
		if err != nil {
			return nil, 0, err
		}
		body = append(body, inst)
	}
}

// decodeInstructionBody decodes everything after an opcode byte the caller
// has already read. For 0xFC-prefixed instructions that includes the
// secondary opcode, read by decodeMiscInstruction.
func decodeInstructionBody(r *pushbackReader, opByte byte, features wasm.Features) (wasm.Instruction, error) {
	if opByte == wasm.OpcodeMiscPrefix {
		return decodeMiscInstruction(r, features)
	}

	op := wasm.Opcode{Byte: opByte}

	if isBareOpcode(opByte) {
		if opByte >= signExtendRangeLo && opByte <= signExtendRangeHi && !features.Has(wasm.FeatureSignExtension) {
			return wasm.Instruction{}, fmt.Errorf("%w: sign-extension feature is disabled", wasm.ErrInvalidInput)
		}
		if opByte == wasm.OpcodeRefIsNull && !features.Has(wasm.FeatureReferenceTypes) {
			return wasm.Instruction{}, fmt.Errorf("%w: ref.is_null requires the reference-types feature", wasm.ErrInvalidInput)
		}
		return wasm.Instruction{Op: op}, nil
	}

	switch opByte {
	case wasm.OpcodeBlock, wasm.OpcodeLoop:
		bt, err := decodeBlockType(r, features)
		if err != nil {
			return wasm.Instruction{}, err
		}
		body, _, err := decodeExpression(r, features, false)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.BlockAndInstructions{BlockType: bt, Body: body}}, nil

	case wasm.OpcodeIf:
		bt, err := decodeBlockType(r, features)
		if err != nil {
			return wasm.Instruction{}, err
		}
		then, terminator, err := decodeExpression(r, features, true)
		if err != nil {
			return wasm.Instruction{}, err
		}
		var elseBody wasm.Expression
		if terminator == wasm.OpcodeElse {
			elseBody, _, err = decodeExpression(r, features, false)
			if err != nil {
				return wasm.Instruction{}, err
			}
		}
		return wasm.Instruction{Op: op, Operand: wasm.BlockAndTwoInstructions{BlockType: bt, Then: then, Else: elseBody}}, nil

	case wasm.OpcodeBr, wasm.OpcodeBrIf:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.LabelIndex(idx)}, nil

	case wasm.OpcodeBrTable:
		count, err := decodeVectorSize(r, r.remaining())
		if err != nil {
			return wasm.Instruction{}, err
		}
		labels := make([]wasm.LabelIndex, count)
		for i := range labels {
			idx, err := decodeIndex(r)
			if err != nil {
				return wasm.Instruction{}, fmt.Errorf("br_table label[%d]: %w", i, err)
			}
			labels[i] = wasm.LabelIndex(idx)
		}
		def, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("br_table default: %w", err)
		}
		return wasm.Instruction{Op: op, Operand: wasm.TableBranch{Labels: labels, Default: wasm.LabelIndex(def)}}, nil

	case wasm.OpcodeCall:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.FunctionIndex(idx)}, nil

	case wasm.OpcodeCallIndirect:
		typeIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		tableIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.IndirectCall{Type: wasm.TypeIndex(typeIdx), Table: wasm.TableIndex(tableIdx)}}, nil

	case wasm.OpcodeSelectT:
		if !features.Has(wasm.FeatureReferenceTypes) {
			return wasm.Instruction{}, fmt.Errorf("%w: typed select requires the reference-types feature", wasm.ErrInvalidInput)
		}
		types, err := decodeResultType(r, features)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: types}, nil

	case wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeLocalTee:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.LocalIndex(idx)}, nil

	case wasm.OpcodeGlobalGet, wasm.OpcodeGlobalSet:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.GlobalIndex(idx)}, nil

	case wasm.OpcodeTableGet, wasm.OpcodeTableSet:
		if !features.Has(wasm.FeatureReferenceTypes) {
			return wasm.Instruction{}, fmt.Errorf("%w: table.get/set requires the reference-types feature", wasm.ErrInvalidInput)
		}
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.TableIndex(idx)}, nil

	case wasm.OpcodeRefNull:
		if !features.Has(wasm.FeatureReferenceTypes) {
			return wasm.Instruction{}, fmt.Errorf("%w: ref.null requires the reference-types feature", wasm.ErrInvalidInput)
		}
		vt, err := decodeValueType(r, features)
		if err != nil {
			return wasm.Instruction{}, err
		}
		if !vt.IsReference() {
			return wasm.Instruction{}, fmt.Errorf("%w: ref.null of non-reference type %s", wasm.ErrInvalidType, vt)
		}
		return wasm.Instruction{Op: op, Operand: vt}, nil

	case wasm.OpcodeRefFunc:
		if !features.Has(wasm.FeatureReferenceTypes) {
			return wasm.Instruction{}, fmt.Errorf("%w: ref.func requires the reference-types feature", wasm.ErrInvalidInput)
		}
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.FunctionIndex(idx)}, nil

	case wasm.OpcodeI32Load, wasm.OpcodeI64Load, wasm.OpcodeF32Load, wasm.OpcodeF64Load,
		wasm.OpcodeI32Load8S, wasm.OpcodeI32Load8U, wasm.OpcodeI32Load16S, wasm.OpcodeI32Load16U,
		wasm.OpcodeI64Load8S, wasm.OpcodeI64Load8U, wasm.OpcodeI64Load16S, wasm.OpcodeI64Load16U,
		wasm.OpcodeI64Load32S, wasm.OpcodeI64Load32U,
		wasm.OpcodeI32Store, wasm.OpcodeI64Store, wasm.OpcodeF32Store, wasm.OpcodeF64Store,
		wasm.OpcodeI32Store8, wasm.OpcodeI32Store16, wasm.OpcodeI64Store8, wasm.OpcodeI64Store16, wasm.OpcodeI64Store32:
		arg, err := decodeMemoryArgument(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: arg}, nil

	case wasm.OpcodeMemorySize, wasm.OpcodeMemoryGrow:
		b, err := readByte(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		if b != 0x00 {
			return wasm.Instruction{}, fmt.Errorf("%w: memory.size/grow reserved byte 0x%02x", wasm.ErrInvalidInput, b)
		}
		return wasm.Instruction{Op: op}, nil

	case wasm.OpcodeI32Const:
		v, _, err := leb128.DecodeInt32(r)
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("i32.const: %w", wrapLEBErr(err, wasm.ErrInvalidInput))
		}
		return wasm.Instruction{Op: op, Operand: v}, nil

	case wasm.OpcodeI64Const:
		v, _, err := leb128.DecodeInt64(r)
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("i64.const: %w", wrapLEBErr(err, wasm.ErrInvalidInput))
		}
		return wasm.Instruction{Op: op, Operand: v}, nil

	case wasm.OpcodeF32Const:
		v, err := decodeFloat32(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: v}, nil

	case wasm.OpcodeF64Const:
		v, err := decodeFloat64(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: v}, nil

	default:
		return wasm.Instruction{}, fmt.Errorf("%w: opcode 0x%02x", wasm.ErrInvalidInput, opByte)
	}
}

func decodeMemoryArgument(r io.Reader) (wasm.MemoryArgument, error) {
	align, err := decodeUint32(r)
	if err != nil {
		return wasm.MemoryArgument{}, fmt.Errorf("memory argument align: %w", err)
	}
	offset, err := decodeUint32(r)
	if err != nil {
		return wasm.MemoryArgument{}, fmt.Errorf("memory argument offset: %w", err)
	}
	return wasm.MemoryArgument{Align: align, Offset: offset}, nil
}

// decodeMiscInstruction decodes the secondary opcode following
// OpcodeMiscPrefix and dispatches the handful that take an operand.
func decodeMiscInstruction(r *pushbackReader, features wasm.Features) (wasm.Instruction, error) {
	sub, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return wasm.Instruction{}, fmt.Errorf("misc opcode: %w", wrapLEBErr(err, wasm.ErrInvalidInput))
	}
	op := wasm.Opcode{Byte: wasm.OpcodeMiscPrefix, Sub: sub}

	if isBareMiscOpcode(sub) {
		return wasm.Instruction{Op: op}, nil
	}
	if !features.Has(wasm.FeatureBulkMemory) {
		return wasm.Instruction{}, fmt.Errorf("%w: bulk-memory feature is disabled", wasm.ErrInvalidInput)
	}

	switch byte(sub) {
	case wasm.MiscMemoryInit:
		dataIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		b, err := readByte(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		if b != 0x00 {
			return wasm.Instruction{}, fmt.Errorf("%w: memory.init reserved byte 0x%02x", wasm.ErrInvalidInput, b)
		}
		return wasm.Instruction{Op: op, Operand: wasm.DataIndex(dataIdx)}, nil

	case wasm.MiscDataDrop:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.DataIndex(idx)}, nil

	case wasm.MiscMemoryCopy:
		for i := 0; i < 2; i++ {
			b, err := readByte(r)
			if err != nil {
				return wasm.Instruction{}, err
			}
			if b != 0x00 {
				return wasm.Instruction{}, fmt.Errorf("%w: memory.copy reserved byte 0x%02x", wasm.ErrInvalidInput, b)
			}
		}
		return wasm.Instruction{Op: op}, nil

	case wasm.MiscMemoryFill:
		b, err := readByte(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		if b != 0x00 {
			return wasm.Instruction{}, fmt.Errorf("%w: memory.fill reserved byte 0x%02x", wasm.ErrInvalidInput, b)
		}
		return wasm.Instruction{Op: op}, nil

	case wasm.MiscTableInit:
		elemIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		tableIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.TableElementArgs{Table: wasm.TableIndex(tableIdx), Element: wasm.ElementIndex(elemIdx)}}, nil

	case wasm.MiscElemDrop:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.ElementIndex(idx)}, nil

	case wasm.MiscTableCopy:
		dst, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		src, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.TableTableArgs{Dst: wasm.TableIndex(dst), Src: wasm.TableIndex(src)}}, nil

	case wasm.MiscTableGrow, wasm.MiscTableSize, wasm.MiscTableFill:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Op: op, Operand: wasm.TableIndex(idx)}, nil

	default:
		return wasm.Instruction{}, fmt.Errorf("%w: misc opcode %d", wasm.ErrInvalidInput, sub)
	}
}
