package binary

import (
	"fmt"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeExport(r *boundedReader) (wasm.Export, error) {
	name, _, err := decodeUTF8(r, r.Remaining, "export name")
	if err != nil {
		return wasm.Export{}, err
	}
	kindByte, err := readByte(r)
	if err != nil {
		return wasm.Export{}, fmt.Errorf("%w: export kind: %s", wasm.ErrExpectedKindTag, err)
	}
	switch wasm.ExportKind(kindByte) {
	case wasm.ExportKindFunc, wasm.ExportKindTable, wasm.ExportKindMemory, wasm.ExportKindGlobal:
	default:
		return wasm.Export{}, fmt.Errorf("%w: export kind 0x%02x", wasm.ErrInvalidTag, kindByte)
	}
	idx, err := decodeIndex(r)
	if err != nil {
		return wasm.Export{}, fmt.Errorf("export %q index: %w", name, err)
	}
	return wasm.Export{Name: name, Kind: wasm.ExportKind(kindByte), Index: idx}, nil
}

// decodeExportSection reads the vector of exports, rejecting duplicate
// names the way the binary format's own section-level constraint
// requires (each export name must be unique within a module).
func decodeExportSection(r *boundedReader) ([]wasm.Export, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	exports := make([]wasm.Export, count)
	seen := make(map[string]struct{}, count)
	for i := range exports {
		exp, err := decodeExport(r)
		if err != nil {
			return nil, fmt.Errorf("export[%d]: %w", i, err)
		}
		if _, ok := seen[exp.Name]; ok {
			return nil, fmt.Errorf("%w: export[%d] duplicates name %q", wasm.ErrInvalidInput, i, exp.Name)
		}
		seen[exp.Name] = struct{}{}
		exports[i] = exp
	}
	return exports, nil
}
