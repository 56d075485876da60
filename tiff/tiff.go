// Package tiff decodes the TIFF structure embedded in an EXIF block: the
// byte order header, the image file directory (IFD) entries and their
// typed values.
//
// All offsets are relative to the first byte of the TIFF header.
package tiff

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/bytereader"
)

const (
	headerSize = 8
	entrySize  = 12 // size of tag field.

	orderLittle = 0x4949 // "II"
	orderBig    = 0x4d4d // "MM"
)

var (
	// ErrByteOrder is returned when the header does not start with "II" or "MM".
	ErrByteOrder = errors.New("tiff: invalid byte order marker")
	// ErrUnsupportedType marks an entry whose field type is not decoded.
	ErrUnsupportedType = errors.New("tiff: unsupported field type")
	// ErrUnregisteredTag marks an entry whose tag has no registry name.
	ErrUnregisteredTag = errors.New("tiff: unregistered tag")
	// ErrEmptyValue marks a numeric entry with a zero count.
	ErrEmptyValue = errors.New("tiff: entry has no value")
)

// Header is the TIFF header found at the start of the EXIF payload.
type Header struct {
	Order    binary.ByteOrder
	FirstIFD uint32
}

// ParseHeader reads the byte order marker and the offset of the first IFD.
// The 42 magic number following the marker is not checked.
func ParseHeader(r bytereader.Reader) (Header, error) {
	bom, err := r.Uint16(0, binary.BigEndian)
	if err != nil {
		return Header{}, err
	}
	var order binary.ByteOrder
	switch bom {
	case orderLittle:
		order = binary.LittleEndian
	case orderBig:
		order = binary.BigEndian
	default:
		return Header{}, ErrByteOrder
	}
	// read offset to first IFD.
	offset, err := r.Uint32(4, order)
	if err != nil {
		return Header{}, err
	}
	return Header{Order: order, FirstIFD: offset}, nil
}

// Entry is a raw 12 byte directory entry.
type Entry struct {
	Tag   exifmeta.ID
	Type  exifmeta.Type
	Count uint32
	// ValueOrOffset is the value field read as an integer in the file's byte order.
	ValueOrOffset uint32
	// Field holds the value field as stored, for values of 4 bytes or less.
	Field [4]byte
}

// ReadEntry reads the directory entry starting at off.
func ReadEntry(r bytereader.Reader, off int, order binary.ByteOrder) (e Entry, err error) {
	buf, err := r.Bytes(off, entrySize)
	if err != nil {
		return e, err
	}
	e.Tag = exifmeta.ID(order.Uint16(buf[0:]))
	e.Type = exifmeta.Type(order.Uint16(buf[2:]))
	e.Count = order.Uint32(buf[4:])
	e.ValueOrOffset = order.Uint32(buf[8:])
	copy(e.Field[:], buf[8:12])
	return e, nil
}

// ValueByteLength returns the number of bytes an entry of type tp holding
// count values occupies. ok is false if tp is not a valid field type.
// Values of 4 bytes or less are stored in the entry's value field, longer
// ones at the offset held in the value field.
func ValueByteLength(tp exifmeta.Type, count uint32) (length uint64, ok bool) {
	sz := tp.Size()
	if sz == 0 {
		return 0, false
	}
	return uint64(count) * uint64(sz), true
}

// EntryError describes why a directory entry was skipped.
type EntryError struct {
	// IFD is the offset of the directory holding the entry.
	IFD uint32
	// Index is the position of the entry in the directory.
	Index int
	Entry Entry
	Err   error
}

func (e *EntryError) Error() string {
	return "tiff: IFD@" + strconv.FormatUint(uint64(e.IFD), 10) + " entry " + strconv.Itoa(e.Index) +
		" (" + e.Entry.Tag.String() + ", " + e.Entry.Type.String() + "): " + e.Err.Error()
}

func (e *EntryError) Unwrap() error { return e.Err }
