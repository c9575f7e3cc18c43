package wasm

// Expression is an ordered sequence of instructions, terminated in the
// binary encoding by a dedicated end opcode that is consumed but never
// stored. Used for function bodies, global initializers, and element/data
// offsets.
type Expression []Instruction
