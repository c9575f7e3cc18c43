package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/tetratelabs/wazero-coredecode/internal/leb128"
	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// maxVectorSizeFactor bounds a vector's declared element count against
// however many bytes are still known to be available, so a corrupt or
// adversarial count can't force a huge up-front allocation before
// decoding discovers the stream doesn't actually contain that many
// elements. Every element this format has is at least one byte, so a
// factor of 1 would already be sound; 1024 leaves a wide margin above
// that. When no remaining count is known (0), decodeVectorSize applies
// no bound at all.
const maxVectorSizeFactor = 1024

// wrapLEBErr classifies a LEB128 decode failure: a truncated stream stays
// ErrUnexpectedEOF, so callers can tell "the stream ended" from "the
// stream contained something unexpected"; anything else becomes kind.
func wrapLEBErr(err, kind error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return wasm.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %s", kind, err)
}

// decodeVectorSize reads the unsigned LEB128 vector length prefix and
// sanity-checks it. remaining is the number of bytes known to still be
// available (0 means unknown, e.g. decoding isn't inside a sized bound).
func decodeVectorSize(r io.Reader, remaining uint64) (uint32, error) {
	n, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, fmt.Errorf("vector size: %w", wrapLEBErr(err, wasm.ErrInvalidInput))
	}
	if remaining != 0 && uint64(n) > remaining*maxVectorSizeFactor {
		return 0, fmt.Errorf("%w: vector size %d", wasm.ErrHugeAllocationRequested, n)
	}
	return n, nil
}

func decodeUint32(r io.Reader) (uint32, error) {
	v, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, wrapLEBErr(err, wasm.ErrInvalidInput)
	}
	return v, nil
}

func decodeIndex(r io.Reader) (uint32, error) {
	v, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, wrapLEBErr(err, wasm.ErrExpectedIndex)
	}
	return v, nil
}

// decodeFixedUint32LE reads a little-endian 4-byte unsigned integer, the
// bit pattern underlying f32.const.
func decodeFixedUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func decodeFixedUint64LE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func decodeFloat32(r io.Reader) (float32, error) {
	bits, err := decodeFixedUint32LE(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func decodeFloat64(r io.Reader) (float64, error) {
	bits, err := decodeFixedUint64LE(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// decodeUTF8 reads a length-prefixed UTF-8 string: an unsigned LEB128
// byte count followed by that many bytes, validated as UTF-8. remaining
// is the number of bytes known to still be available (0 means unknown),
// checked before allocating so a corrupt length prefix can't force a
// huge allocation. contextMsg names the field being decoded, folded into
// any error so a caller can tell a bad module name from a bad export
// name.
func decodeUTF8(r io.Reader, remaining uint64, contextMsg string) (string, uint32, error) {
	size, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", contextMsg, wrapLEBErr(err, wasm.ErrInvalidInput))
	}
	if remaining != 0 && uint64(size) > remaining {
		return "", 0, fmt.Errorf("%w: %s size %d", wasm.ErrHugeAllocationRequested, contextMsg, size)
	}

	if size == 0 {
		return "", 1, nil
	}

	buf := make([]byte, size)
	if err := readFull(r, buf); err != nil {
		return "", 0, fmt.Errorf("%s: %w", contextMsg, err)
	}

	if !utf8.Valid(buf) {
		return "", 0, fmt.Errorf("%w: %s: invalid UTF-8", wasm.ErrInvalidInput, contextMsg)
	}

	return string(buf), size + 1, nil
}
