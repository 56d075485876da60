// Package bytereader implements a bounds-checked, read-only view over a byte
// buffer with fixed-width reads at arbitrary offsets.
package bytereader

import (
	"encoding/binary"
	"errors"
	"strconv"
)

// ErrOutOfBounds is matched by every error returned for an access that would
// reach past either end of the buffer.
var ErrOutOfBounds = errors.New("bytereader: out of bounds")

// BoundsError describes an out of range access.
type BoundsError struct {
	Off int // Requested offset.
	N   int // Requested width in bytes.
	Len int // Length of the underlying buffer.
}

func (e *BoundsError) Error() string {
	return "bytereader: read of " + strconv.Itoa(e.N) + " bytes at offset " +
		strconv.Itoa(e.Off) + " exceeds buffer length " + strconv.Itoa(e.Len)
}

// Is reports whether target is ErrOutOfBounds.
func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// Reader is a view over a fixed buffer. The zero value is an empty reader.
// Reader never modifies nor retains anything beyond the slice it was made with.
type Reader struct {
	buf []byte
}

// New returns a Reader over b.
func New(b []byte) Reader {
	return Reader{buf: b}
}

// Len returns the length of the underlying buffer.
func (r Reader) Len() int { return len(r.buf) }

// check returns an error if [off, off+n) is not fully contained in the buffer.
func (r Reader) check(off, n int) error {
	// off+n is never computed directly so huge values cannot wrap.
	if off < 0 || n < 0 || off > len(r.buf) || n > len(r.buf)-off {
		return &BoundsError{Off: off, N: n, Len: len(r.buf)}
	}
	return nil
}

// Uint8 reads a single byte at off.
func (r Reader) Uint8(off int) (uint8, error) {
	if err := r.check(off, 1); err != nil {
		return 0, err
	}
	return r.buf[off], nil
}

// Uint16 reads a 16 bit unsigned integer at off using order.
func (r Reader) Uint16(off int, order binary.ByteOrder) (uint16, error) {
	if err := r.check(off, 2); err != nil {
		return 0, err
	}
	return order.Uint16(r.buf[off:]), nil
}

// Uint32 reads a 32 bit unsigned integer at off using order.
func (r Reader) Uint32(off int, order binary.ByteOrder) (uint32, error) {
	if err := r.check(off, 4); err != nil {
		return 0, err
	}
	return order.Uint32(r.buf[off:]), nil
}

// Bytes returns the n bytes starting at off. The returned slice aliases the
// underlying buffer and has its capacity capped so appending to it cannot
// write into the buffer.
func (r Reader) Bytes(off, n int) ([]byte, error) {
	if err := r.check(off, n); err != nil {
		return nil, err
	}
	return r.buf[off : off+n : off+n], nil
}

// Slice returns a Reader over the n bytes starting at off. Offsets passed to
// the returned Reader are relative to off.
func (r Reader) Slice(off, n int) (Reader, error) {
	b, err := r.Bytes(off, n)
	if err != nil {
		return Reader{}, err
	}
	return Reader{buf: b}, nil
}
