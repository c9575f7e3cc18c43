package wasm

// The index newtypes below give each of eight WebAssembly index spaces
// a distinct Go type (ElementIndex, in instruction.go, is a ninth), so that passing e.g. a FunctionIndex where a
// TypeIndex is expected is caught by the compiler rather than at runtime.
// Decoding never resolves an index into a pointer - that's the validator's
// and interpreter's job, once the module has been fully decoded.

// TypeIndex indexes TypeSection.
type TypeIndex uint32

// FunctionIndex indexes the function index space (imported functions
// followed by FunctionSection entries).
type FunctionIndex uint32

// TableIndex indexes the table index space (imported tables followed by
// TableSection entries).
type TableIndex uint32

// MemoryIndex indexes the memory index space (imported memories followed
// by MemorySection entries). WebAssembly 1.0 permits at most one memory.
type MemoryIndex uint32

// GlobalIndex indexes the global index space (imported globals followed by
// GlobalSection entries).
type GlobalIndex uint32

// LocalIndex indexes a function's local variable space (parameters
// followed by declared locals).
type LocalIndex uint32

// LabelIndex indexes enclosing structured control instructions, counting
// outward from the innermost (branch depth).
type LabelIndex uint32

// DataIndex indexes DataSection entries.
type DataIndex uint32
