package binary

import (
	"fmt"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

func decodeImport(r *boundedReader, features wasm.Features) (wasm.Import, error) {
	module, _, err := decodeUTF8(r, r.Remaining, "import module")
	if err != nil {
		return wasm.Import{}, err
	}
	name, _, err := decodeUTF8(r, r.Remaining, "import name")
	if err != nil {
		return wasm.Import{}, err
	}
	kindByte, err := readByte(r)
	if err != nil {
		return wasm.Import{}, fmt.Errorf("%w: import kind: %s", wasm.ErrExpectedKindTag, err)
	}

	imp := wasm.Import{Module: module, Name: name, Kind: wasm.ImportKind(kindByte)}
	switch imp.Kind {
	case wasm.ImportKindFunc:
		idx, err := decodeIndex(r)
		if err != nil {
			return wasm.Import{}, fmt.Errorf("import %s.%s func type: %w", module, name, err)
		}
		imp.DescFunc = wasm.TypeIndex(idx)
	case wasm.ImportKindTable:
		t, err := decodeTableType(r, features)
		if err != nil {
			return wasm.Import{}, fmt.Errorf("import %s.%s table: %w", module, name, err)
		}
		imp.DescTable = t
	case wasm.ImportKindMemory:
		m, err := decodeMemoryType(r)
		if err != nil {
			return wasm.Import{}, fmt.Errorf("import %s.%s memory: %w", module, name, err)
		}
		imp.DescMemory = m
	case wasm.ImportKindGlobal:
		g, err := decodeGlobalType(r, features)
		if err != nil {
			return wasm.Import{}, fmt.Errorf("import %s.%s global: %w", module, name, err)
		}
		imp.DescGlobal = g
	default:
		return wasm.Import{}, fmt.Errorf("%w: import kind 0x%02x", wasm.ErrInvalidTag, kindByte)
	}
	return imp, nil
}

func decodeImportSection(r *boundedReader, features wasm.Features) ([]wasm.Import, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	imports := make([]wasm.Import, count)
	for i := range imports {
		imp, err := decodeImport(r, features)
		if err != nil {
			return nil, fmt.Errorf("import[%d]: %w", i, err)
		}
		imports[i] = imp
	}
	return imports, nil
}
