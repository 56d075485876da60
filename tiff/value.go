package tiff

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/bytereader"
	"github.com/soypat/exifmeta/rational"
)

// DecodeEntry resolves e through the registry and renders its value.
// It returns either the decoded tag or the reason the entry is skipped.
func DecodeEntry(r bytereader.Reader, order binary.ByteOrder, e Entry) (exifmeta.Tag, error) {
	name, ok := e.Tag.Name()
	if !ok {
		return exifmeta.Tag{}, ErrUnregisteredTag
	}
	length, ok := ValueByteLength(e.Type, e.Count)
	if !ok {
		return exifmeta.Tag{}, ErrUnsupportedType
	}
	var value string
	var err error
	switch e.Type {
	case exifmeta.TypeString:
		value, err = decodeASCII(r, e, length)
	case exifmeta.TypeUint16:
		var b []byte
		b, err = e.firstValue(r, length, 2)
		if err == nil {
			value = strconv.FormatUint(uint64(order.Uint16(b)), 10)
		}
	case exifmeta.TypeUint32:
		var b []byte
		b, err = e.firstValue(r, length, 4)
		if err == nil {
			value = strconv.FormatUint(uint64(order.Uint32(b)), 10)
		}
	case exifmeta.TypeURational64:
		if e.Count == 0 {
			return exifmeta.Tag{}, ErrEmptyValue
		}
		// Rationals never fit in the value field.
		var b []byte
		b, err = r.Bytes(offset(e.ValueOrOffset), rational.Size)
		if err == nil {
			var u rational.U64
			u, err = rational.DecodeU64(order, b)
			value = u.String()
		}
	default:
		return exifmeta.Tag{}, ErrUnsupportedType
	}
	if err != nil {
		return exifmeta.Tag{}, err
	}
	return exifmeta.Tag{ID: e.Tag, Type: e.Type, Name: name, Value: value}, nil
}

// firstValue returns the sz bytes of the entry's first value, taken from the
// value field when the whole value fits in it and from the offset otherwise.
func (e *Entry) firstValue(r bytereader.Reader, length uint64, sz int) ([]byte, error) {
	switch {
	case length == 0:
		return nil, ErrEmptyValue
	case length <= 4:
		return e.Field[:sz], nil
	}
	return r.Bytes(offset(e.ValueOrOffset), sz)
}

// decodeASCII reads a null terminated string of e.Count bytes. Reading stops
// at the first null byte or after Count-1 characters, the last byte being
// reserved for the terminator.
func decodeASCII(r bytereader.Reader, e Entry, length uint64) (string, error) {
	if e.Count == 0 {
		return "", nil
	}
	limit := length - 1
	var src []byte
	if length <= 4 {
		src = e.Field[:limit]
	} else {
		off := offset(e.ValueOrOffset)
		avail := r.Len() - off
		if avail < 0 {
			avail = 0
		}
		n := limit
		if uint64(avail) < n {
			n = uint64(avail)
		}
		var err error
		src, err = r.Bytes(off, int(n))
		if err != nil {
			return "", err
		}
		if bytes.IndexByte(src, 0) < 0 && uint64(len(src)) < limit {
			// Neither terminated nor complete: the string runs off the buffer.
			return "", &bytereader.BoundsError{Off: off, N: int(min(limit, math.MaxInt32)), Len: r.Len()}
		}
	}
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src), nil
}

// offset converts a header relative offset read from the file to an int.
// Offsets that do not fit are mapped to -1 so the bounds check rejects them.
func offset(v uint32) int {
	if uint64(v) > math.MaxInt {
		return -1
	}
	return int(v)
}
