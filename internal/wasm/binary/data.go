package binary

import (
	"fmt"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// Data segment flag bytes. 0 and 2 are active (against memory 0 and an
// explicit memory index respectively); 1 is passive.
const (
	dataFlagActiveMemZero     = 0
	dataFlagPassive           = 1
	dataFlagActiveExplicitMem = 2
)

func decodeData(r *boundedReader, features wasm.Features) (wasm.Data, error) {
	flag, err := decodeUint32(r)
	if err != nil {
		return wasm.Data{}, fmt.Errorf("data segment flag: %w", err)
	}

	var d wasm.Data
	switch flag {
	case dataFlagActiveMemZero:
		d.Mode = wasm.DataModeActive
		offset, _, err := decodeExpression(newPushbackReader(r), features, false)
		if err != nil {
			return wasm.Data{}, fmt.Errorf("data offset expression: %w", err)
		}
		d.Offset = offset
	case dataFlagPassive:
		d.Mode = wasm.DataModePassive
	case dataFlagActiveExplicitMem:
		d.Mode = wasm.DataModeActive
		if !features.Has(wasm.FeatureBulkMemory) {
			return wasm.Data{}, fmt.Errorf("%w: explicit memory index data segments require the bulk-memory feature", wasm.ErrInvalidInput)
		}
		memIdx, err := decodeIndex(r)
		if err != nil {
			return wasm.Data{}, fmt.Errorf("data memory index: %w", err)
		}
		d.Memory = wasm.MemoryIndex(memIdx)
		offset, _, err := decodeExpression(newPushbackReader(r), features, false)
		if err != nil {
			return wasm.Data{}, fmt.Errorf("data offset expression: %w", err)
		}
		d.Offset = offset
	default:
		return wasm.Data{}, fmt.Errorf("%w: data segment flag %d", wasm.ErrInvalidTag, flag)
	}

	size, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return wasm.Data{}, err
	}
	init := make([]byte, size)
	if err := readFull(r, init); err != nil {
		return wasm.Data{}, fmt.Errorf("data bytes: %w", err)
	}
	d.Init = init

	return d, nil
}

func decodeDataSection(r *boundedReader, features wasm.Features) ([]wasm.Data, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	data := make([]wasm.Data, count)
	for i := range data {
		d, err := decodeData(r, features)
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		data[i] = d
	}
	return data, nil
}
