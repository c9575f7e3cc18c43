// Package binary decodes the WebAssembly 1.0 core binary format into the
// tree of types defined in internal/wasm.
package binary

import (
	"errors"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero-coredecode/internal/wasm"
)

// Magic is the 4-byte magic number every module starts with.
var Magic = []byte{0x00, 0x61, 0x73, 0x6d} // "\0asm"

// version is the only module version this decoder accepts.
var version = []byte{0x01, 0x00, 0x00, 0x00}

// boundedReader wraps an io.Reader so a section or code entry can be
// decoded against its declared size: Remaining shrinks as bytes are read,
// and a read past Remaining reports an error rather than spilling into
// whatever follows in the underlying stream.
type boundedReader struct {
	r         io.Reader
	Remaining uint64
}

func newBoundedReader(r io.Reader, size uint64) *boundedReader {
	return &boundedReader{r: r, Remaining: size}
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.Remaining == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > b.Remaining {
		p = p[:b.Remaining]
	}
	n, err := b.r.Read(p)
	b.Remaining -= uint64(n)
	return n, err
}

// requireExhausted reports ErrInvalidSize if the bounded region still has
// unread bytes: every section and code entry must consume exactly its
// declared size, never more, never less.
func (b *boundedReader) requireExhausted() error {
	if b.Remaining != 0 {
		return fmt.Errorf("%w: %d bytes left after decoding", wasm.ErrInvalidSize, b.Remaining)
	}
	return nil
}

// pushbackReader lets blocktype decoding peek one byte, decide it wasn't a
// value-type tag after all, and hand that byte back to whatever decodes
// the LEB128 type-index form instead.
type pushbackReader struct {
	r   io.Reader
	buf []byte
}

func newPushbackReader(r io.Reader) *pushbackReader {
	return &pushbackReader{r: r}
}

func (p *pushbackReader) Read(out []byte) (int, error) {
	if len(p.buf) > 0 {
		n := copy(out, p.buf)
		p.buf = p.buf[n:]
		return n, nil
	}
	return p.r.Read(out)
}

func (p *pushbackReader) unreadByte(b byte) {
	p.buf = append([]byte{b}, p.buf...)
}

// remaining reports how many bytes are still available in the bounded
// region the pushback reader reads from, or 0 if it isn't wrapping one
// (e.g. a plain io.Reader handed to a decoder directly in a test).
func (p *pushbackReader) remaining() uint64 {
	if br, ok := p.r.(*boundedReader); ok {
		return br.Remaining
	}
	return 0
}

// readByte reads exactly one byte, translating io.EOF/io.ErrUnexpectedEOF
// into ErrUnexpectedEOF uniformly so callers don't each need to know which
// flavor of EOF a given io.Reader produces.
func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return b[0], nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return wrapEOF(err)
	}
	return nil
}

func wrapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return wasm.ErrUnexpectedEOF
	}
	return err
}
