package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// Element segment flag bytes. Flags 0-3 carry their init list as direct
// function indices, the only form this decoder implements; flags 4-7
// carry init as a vector of expressions (one ref.func/ref.null constant
// expression per element) and are reported as ErrNotImplemented.
const (
	elemFlagActiveFuncIndices              = 0
	elemFlagPassiveFuncIndices             = 1
	elemFlagActiveExplicitTableFuncIndices = 2
	elemFlagDeclarativeFuncIndices         = 3
	elemFlagActiveExprs                    = 4
	elemFlagPassiveExprs                   = 5
	elemFlagActiveExplicitTableExprs       = 6
	elemFlagDeclarativeExprs               = 7
)

const elemKindFuncref = 0x00

func decodeElement(r *boundedReader, features wasm.Features) (wasm.Element, error) {
	flag, err := decodeUint32(r)
	if err != nil {
		return wasm.Element{}, fmt.Errorf("element segment flag: %w", err)
	}

	switch flag {
	case elemFlagActiveExprs, elemFlagPassiveExprs, elemFlagActiveExplicitTableExprs, elemFlagDeclarativeExprs:
		return wasm.Element{}, fmt.Errorf("%w: element segment flag %d (expression-list init)", wasm.ErrNotImplemented, flag)
	}

	var el wasm.Element
	switch flag {
	case elemFlagActiveFuncIndices:
		el.Mode = wasm.ElementModeActive
		el.Table = 0
		offset, _, err := decodeExpression(newPushbackReader(r), features, false)
		if err != nil {
			return wasm.Element{}, fmt.Errorf("element offset expression: %w", err)
		}
		el.Offset = offset

	case elemFlagPassiveFuncIndices:
		el.Mode = wasm.ElementModePassive
		if err := expectElemKind(r); err != nil {
			return wasm.Element{}, err
		}

	case elemFlagActiveExplicitTableFuncIndices:
		el.Mode = wasm.ElementModeActive
		tableIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Element{}, fmt.Errorf("element table index: %w", err)
		}
		el.Table = wasm.TableIndex(tableIdx)
		offset, _, err := decodeExpression(newPushbackReader(r), features, false)
		if err != nil {
			return wasm.Element{}, fmt.Errorf("element offset expression: %w", err)
		}
		el.Offset = offset
		if err := expectElemKind(r); err != nil {
			return wasm.Element{}, err
		}

	case elemFlagDeclarativeFuncIndices:
		el.Mode = wasm.ElementModeDeclarative
		if err := expectElemKind(r); err != nil {
			return wasm.Element{}, err
		}

	default:
		return wasm.Element{}, fmt.Errorf("%w: element segment flag %d", wasm.ErrInvalidTag, flag)
	}

	if (flag == elemFlagActiveExplicitTableFuncIndices || flag == elemFlagDeclarativeFuncIndices) && !features.Has(wasm.FeatureBulkMemory) {
		return wasm.Element{}, fmt.Errorf("%w: this element segment encoding requires the bulk-memory feature", wasm.ErrInvalidInput)
	}

	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return wasm.Element{}, err
	}
	init := make([]wasm.FunctionIndex, count)
	for i := range init {
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Element{}, fmt.Errorf("element init[%d]: %w", i, err)
		}
		init[i] = wasm.FunctionIndex(idx)
	}
	el.Init = init

	return el, nil
}

func expectElemKind(r io.Reader) error {
	b, err := readByte(r)
	if err != nil {
		return err
	}
	if b != elemKindFuncref {
		return fmt.Errorf("%w: element kind 0x%02x != funcref(0x%02x)", wasm.ErrInvalidTag, b, elemKindFuncref)
	}
	return nil
}

func decodeElementSection(r *boundedReader, features wasm.Features) ([]wasm.Element, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	elements := make([]wasm.Element, count)
	for i := range elements {
		el, err := decodeElement(r, features)
		if err != nil {
			return nil, fmt.Errorf("element[%d]: %w", i, err)
		}
		elements[i] = el
	}
	return elements, nil
}
