package binary

import (
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// subsectionIDModuleName is the "name" custom section's subsection id for
// the module name - the only name subsection this decoder interprets.
const subsectionIDModuleName = 0

func decodeTypeSection(r *boundedReader, features wasm.Features) ([]wasm.FunctionType, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	types := make([]wasm.FunctionType, count)
	for i := range types {
		ft, err := decodeFunctionType(r, features)
		if err != nil {
			return nil, fmt.Errorf("type[%d]: %w", i, err)
		}
		types[i] = ft
	}
	return types, nil
}

func decodeFunctionSection(r *boundedReader) ([]wasm.TypeIndex, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	indices := make([]wasm.TypeIndex, count)
	for i := range indices {
		idx, err := decodeIndex(r)
		if err != nil {
			return nil, fmt.Errorf("function[%d] type index: %w", i, err)
		}
		indices[i] = wasm.TypeIndex(idx)
	}
	return indices, nil
}

func decodeTableSection(r *boundedReader, features wasm.Features) ([]wasm.TableType, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	if count > 1 {
		return nil, fmt.Errorf("%w: at most one table allowed in module, but read %d", wasm.ErrInvalidInput, count)
	}
	tables := make([]wasm.TableType, count)
	for i := range tables {
		t, err := decodeTableType(r, features)
		if err != nil {
			return nil, fmt.Errorf("table[%d]: %w", i, err)
		}
		tables[i] = t
	}
	return tables, nil
}

func decodeMemorySection(r *boundedReader) ([]wasm.MemoryType, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	if count > 1 {
		return nil, fmt.Errorf("%w: at most one memory allowed in module, but read %d", wasm.ErrInvalidInput, count)
	}
	mems := make([]wasm.MemoryType, count)
	for i := range mems {
		m, err := decodeMemoryType(r)
		if err != nil {
			return nil, fmt.Errorf("memory[%d]: %w", i, err)
		}
		mems[i] = m
	}
	return mems, nil
}

func decodeGlobalSection(r *boundedReader, features wasm.Features) ([]wasm.Global, error) {
	count, err := decodeVectorSize(r, r.Remaining)
	if err != nil {
		return nil, err
	}
	globals := make([]wasm.Global, count)
	for i := range globals {
		g, err := decodeGlobal(r, features)
		if err != nil {
			return nil, fmt.Errorf("global[%d]: %w", i, err)
		}
		globals[i] = g
	}
	return globals, nil
}

func decodeStartSection(r io.Reader) (wasm.FunctionIndex, error) {
	idx, err := decodeIndex(r)
	if err != nil {
		return 0, fmt.Errorf("start function index: %w", err)
	}
	return wasm.FunctionIndex(idx), nil
}

func decodeDataCountSection(r io.Reader) (uint32, error) {
	return decodeUint32(r)
}

// decodeNameSection interprets the custom "name" section's module-name
// subsection (id 0) and skips every other subsection - function and
// local name maps are a pretty-printer concern, out of this core's
// scope.
func decodeNameSection(r io.Reader, size uint64) (*wasm.NameSection, error) {
	body := newBoundedReader(r, size)

	var name *wasm.NameSection
	for body.Remaining > 0 {
		subID, err := readByte(body)
		if err != nil {
			return nil, err
		}
		subSize, err := decodeUint32(body)
		if err != nil {
			return nil, fmt.Errorf("name subsection size: %w", err)
		}
		if uint64(subSize) > body.Remaining {
			return nil, fmt.Errorf("%w: name subsection size %d exceeds section", wasm.ErrInvalidSize, subSize)
		}
		sub := newBoundedReader(body, uint64(subSize))

		if subID == subsectionIDModuleName {
			if name != nil {
				return nil, fmt.Errorf("%w: redundant custom section name", wasm.ErrInvalidInput)
			}
			moduleName, _, err := decodeUTF8(sub, sub.Remaining, "module name")
			if err != nil {
				return nil, err
			}
			name = &wasm.NameSection{ModuleName: moduleName}
		}

		if _, err := io.Copy(io.Discard, sub); err != nil {
			return nil, wrapEOF(err)
		}
	}
	return name, nil
}
