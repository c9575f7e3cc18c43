package binary

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// DecodeModule parses a complete WebAssembly binary from r: the magic
// number and version header, then every section in turn. features gates
// which post-MVP encodings are accepted; pass wasm.FeaturesV1 for strict
// WebAssembly 1.0 and wasm.FeaturesAll to accept everything this decoder
// understands.
func DecodeModule(r io.Reader, features wasm.Features) (*wasm.Module, error) {
	magic := make([]byte, 4)
	if err := readFull(r, magic); err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, Magic) {
		return nil, wasm.ErrInvalidModuleMagic
	}

	ver := make([]byte, 4)
	if err := readFull(r, ver); err != nil {
		return nil, err
	}
	if !bytes.Equal(ver, version) {
		return nil, wasm.ErrInvalidModuleVersion
	}

	m := &wasm.Module{}
	lastNonCustomID := -1

	for {
		idByte, err := readByte(r)
		if err == wasm.ErrUnexpectedEOF {
			break // clean end of stream between sections
		}
		if err != nil {
			return nil, err
		}
		id := int(idByte)

		size, err := decodeUint32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d size: %s", wasm.ErrExpectedSize, id, err)
		}
		body := newBoundedReader(r, uint64(size))

		if id != wasm.SectionIDCustom {
			if id <= lastNonCustomID {
				return nil, fmt.Errorf("%w: section %d out of order after section %d", wasm.ErrInvalidInput, id, lastNonCustomID)
			}
			lastNonCustomID = id
		}

		if err := decodeSection(m, id, body, features); err != nil {
			return nil, fmt.Errorf("section %s: %w", sectionName(id), err)
		}
		if err := body.requireExhausted(); err != nil {
			return nil, fmt.Errorf("section %s: %w", sectionName(id), err)
		}
	}

	return m, nil
}

// DecodeModuleBytes is a convenience wrapper for callers that already
// hold the entire binary in memory.
func DecodeModuleBytes(b []byte, features wasm.Features) (*wasm.Module, error) {
	return DecodeModule(bytes.NewReader(b), features)
}

func decodeSection(m *wasm.Module, id int, body *boundedReader, features wasm.Features) (err error) {
	switch id {
	case wasm.SectionIDCustom:
		name, _, err := decodeUTF8(body, body.Remaining, "custom section name")
		if err != nil {
			return err
		}
		if name == "name" {
			ns, err := decodeNameSection(body, body.Remaining)
			if err != nil {
				return err
			}
			if ns != nil {
				if m.NameSection != nil {
					return fmt.Errorf("%w: redundant custom section name", wasm.ErrInvalidInput)
				}
				m.NameSection = ns
			}
			return nil
		}
		data := make([]byte, body.Remaining)
		if err := readFull(body, data); err != nil {
			return err
		}
		m.CustomSections = append(m.CustomSections, wasm.CustomSection{Name: name, Data: data})
		return nil

	case wasm.SectionIDType:
		m.TypeSection, err = decodeTypeSection(body, features)
	case wasm.SectionIDImport:
		m.ImportSection, err = decodeImportSection(body, features)
	case wasm.SectionIDFunction:
		m.FunctionSection, err = decodeFunctionSection(body)
	case wasm.SectionIDTable:
		m.TableSection, err = decodeTableSection(body, features)
	case wasm.SectionIDMemory:
		m.MemorySection, err = decodeMemorySection(body)
	case wasm.SectionIDGlobal:
		m.GlobalSection, err = decodeGlobalSection(body, features)
	case wasm.SectionIDExport:
		m.ExportSection, err = decodeExportSection(body)
	case wasm.SectionIDStart:
		var start wasm.FunctionIndex
		start, err = decodeStartSection(body)
		m.StartSection = &start
	case wasm.SectionIDElement:
		m.ElementSection, err = decodeElementSection(body, features)
	case wasm.SectionIDCode:
		m.CodeSection, err = decodeCodeSection(body, features)
	case wasm.SectionIDData:
		m.DataSection, err = decodeDataSection(body, features)
	case wasm.SectionIDDataCount:
		var count uint32
		count, err = decodeDataCountSection(body)
		m.DataCountSection = &count
	default:
		return fmt.Errorf("%w: section id %d", wasm.ErrInvalidTag, id)
	}
	return err
}

func sectionName(id int) string {
	switch id {
	case wasm.SectionIDCustom:
		return "custom"
	case wasm.SectionIDType:
		return "type"
	case wasm.SectionIDImport:
		return "import"
	case wasm.SectionIDFunction:
		return "function"
	case wasm.SectionIDTable:
		return "table"
	case wasm.SectionIDMemory:
		return "memory"
	case wasm.SectionIDGlobal:
		return "global"
	case wasm.SectionIDExport:
		return "export"
	case wasm.SectionIDStart:
		return "start"
	case wasm.SectionIDElement:
		return "element"
	case wasm.SectionIDCode:
		return "code"
	case wasm.SectionIDData:
		return "data"
	case wasm.SectionIDDataCount:
		return "data count"
	default:
		return fmt.Sprintf("unknown(%d)", id)
	}
}
