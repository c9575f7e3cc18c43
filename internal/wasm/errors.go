package wasm

import "errors"

// The sentinel errors below name the taxonomy from the decoder's design:
// every decode failure is exactly one of these, optionally wrapped with
// positional context (which field, which section) via fmt.Errorf("%w").
// errors.Is recovers the sentinel through any amount of wrapping.
var (
	// ErrUnexpectedEOF means the stream ended mid-datum - a truncation, as
	// opposed to a clean end of input between top-level constructs.
	ErrUnexpectedEOF = errors.New("unexpected EOF")

	// ErrExpectedIndex means a LEB-encoded index was required but its
	// encoding was malformed (e.g. overlong). A stream that runs out
	// mid-index reports ErrUnexpectedEOF instead.
	ErrExpectedIndex = errors.New("expected index")

	// ErrExpectedKindTag means a discriminating tag byte was required.
	ErrExpectedKindTag = errors.New("expected kind tag")

	// ErrExpectedSize means a section or code entry size prefix was
	// required.
	ErrExpectedSize = errors.New("expected size")

	// ErrExpectedValueOrTerminator means that, inside an expression,
	// neither a legal instruction nor a terminator (end/else) was seen.
	ErrExpectedValueOrTerminator = errors.New("expected instruction or terminator")

	// ErrInvalidInput is the catch-all for structural violations: overlong
	// LEB128, bad section ordering, an unknown opcode, malformed UTF-8, an
	// encoding whose feature is disabled. Leftover bytes in a bounded view
	// are ErrInvalidSize, and unknown element flag or kind bytes are
	// ErrInvalidTag.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidModuleMagic means the 4-byte magic number didn't match
	// \0asm.
	ErrInvalidModuleMagic = errors.New("invalid magic number")

	// ErrInvalidModuleVersion means the 4-byte version word didn't match
	// the supported version.
	ErrInvalidModuleVersion = errors.New("invalid version header")

	// ErrInvalidSize means a declared size prefix disagreed with the
	// number of bytes actually consumed from that bounded region.
	ErrInvalidSize = errors.New("invalid size")

	// ErrInvalidTag means an unrecognized discriminating tag byte.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidType means an unrecognized value-type byte.
	ErrInvalidType = errors.New("invalid type")

	// ErrHugeAllocationRequested means a vector's declared length exceeds
	// the sanity bound checked against the remaining stream size.
	ErrHugeAllocationRequested = errors.New("huge allocation requested")

	// ErrNotImplemented means the encoding was recognized but this
	// decoder intentionally does not support it (certain Element-section
	// tag variants - see decodeElement).
	ErrNotImplemented = errors.New("not implemented")
)
