// Package rational implements the unsigned rational field type found in
// TIFF directories.
package rational

import (
	"encoding/binary"
	"errors"
	"strconv"
)

var errShortBuf = errors.New("buffer too short")

// Size is the encoded size of a rational in bytes.
const Size = 8

// U64 is an unsigned rational made of two 32 bit halves. The denominator may
// be zero; such values are rendered but have no float representation.
type U64 struct {
	Num uint32
	Den uint32
}

// DecodeU64 decodes the numerator and denominator stored back to back at the
// start of b.
func DecodeU64(order binary.ByteOrder, b []byte) (U64, error) {
	if len(b) < Size {
		return U64{}, errShortBuf
	}
	return U64{Num: order.Uint32(b), Den: order.Uint32(b[4:])}, nil
}

// Fraction returns the numerator and denominator.
func (u U64) Fraction() (numerator, denominator uint32) {
	return u.Num, u.Den
}

// Float returns the value as a float64. ok is false for a zero denominator.
func (u U64) Float() (f float64, ok bool) {
	if u.Den == 0 {
		return 0, false
	}
	return float64(u.Num) / float64(u.Den), true
}

// String renders the rational as "num/den", or as "num" alone when the
// denominator is exactly 1.
func (u U64) String() string {
	num := strconv.FormatUint(uint64(u.Num), 10)
	if u.Den == 1 {
		return num
	}
	return num + "/" + strconv.FormatUint(uint64(u.Den), 10)
}
