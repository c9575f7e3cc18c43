package wasm

import "fmt"

// ValueType is the encoding of one of the six WebAssembly 1.0 value types,
// matching the single-byte encoding used in the binary format.
type ValueType byte

const (
	ValueTypeI32       ValueType = 0x7f
	ValueTypeI64       ValueType = 0x7e
	ValueTypeF32       ValueType = 0x7d
	ValueTypeF64       ValueType = 0x7c
	ValueTypeFuncref   ValueType = 0x70
	ValueTypeExternref ValueType = 0x6f
)

// IsNumeric is true for i32, i64, f32, f64.
func (v ValueType) IsNumeric() bool {
	switch v {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64:
		return true
	}
	return false
}

// IsReference is true for funcref and externref.
func (v ValueType) IsReference() bool {
	switch v {
	case ValueTypeFuncref, ValueTypeExternref:
		return true
	}
	return false
}

// String renders the value type using its textual name, or a hex fallback
// for anything this decoder doesn't recognize (the caller may still want
// to print out an otherwise-valid module for diagnostics).
func (v ValueType) String() string {
	switch v {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	case ValueTypeExternref:
		return "externref"
	}
	return fmt.Sprintf("0x%02x", byte(v))
}

// ResultType is the ordered sequence of value types produced (or consumed)
// by a function, block, or select instruction.
type ResultType []ValueType
