// Package exiftest builds synthetic TIFF blocks and JPEG files for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// Entry describes a directory entry to be written by TIFF.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	// Value is written in the value field when it fits in 4 bytes and
	// appended to the data area otherwise, with its offset in the value field.
	Value []byte
	// Field, when not nil, is written verbatim as the value field and Value
	// is still appended to the data area if it does not fit.
	Field []byte
	// Sub makes the entry a pointer to a directory holding these entries.
	Sub []Entry
}

// TIFF returns a TIFF block with the header, IFD0 at offset 8 holding
// entries, and the data area after the directory.
func TIFF(order binary.ByteOrder, entries ...Entry) []byte {
	b := &builder{order: order}
	if order == binary.LittleEndian {
		b.buf = append(b.buf, 'I', 'I')
	} else {
		b.buf = append(b.buf, 'M', 'M')
	}
	b.buf = append(b.buf, U16(order, 42)...)
	b.buf = append(b.buf, U32(order, 8)...)
	b.dir(entries)
	return b.buf
}

type builder struct {
	order binary.ByteOrder
	buf   []byte
}

func (b *builder) dir(entries []Entry) uint32 {
	start := len(b.buf)
	b.buf = append(b.buf, U16(b.order, uint16(len(entries)))...)
	b.buf = append(b.buf, make([]byte, 12*len(entries)+4)...)
	for i, e := range entries {
		var field [4]byte
		switch {
		case e.Sub != nil:
			b.order.PutUint32(field[:], b.dir(e.Sub))
		case len(e.Value) > 4:
			b.order.PutUint32(field[:], uint32(len(b.buf)))
			b.buf = append(b.buf, e.Value...)
			if len(b.buf)%2 != 0 {
				b.buf = append(b.buf, 0) // word alignment.
			}
		default:
			copy(field[:], e.Value)
		}
		if e.Field != nil {
			field = [4]byte{}
			copy(field[:], e.Field)
		}
		off := start + 2 + 12*i
		b.order.PutUint16(b.buf[off:], e.Tag)
		b.order.PutUint16(b.buf[off+2:], e.Type)
		b.order.PutUint32(b.buf[off+4:], e.Count)
		copy(b.buf[off+8:off+12], field[:])
	}
	return uint32(start)
}

// ASCII returns an ASCII entry holding s and its terminating null.
func ASCII(tag uint16, s string) Entry {
	v := append([]byte(s), 0)
	return Entry{Tag: tag, Type: 2, Count: uint32(len(v)), Value: v}
}

// Short returns a SHORT entry with a single value.
func Short(order binary.ByteOrder, tag, v uint16) Entry {
	return Entry{Tag: tag, Type: 3, Count: 1, Value: U16(order, v)}
}

// Long returns a LONG entry with a single value.
func Long(order binary.ByteOrder, tag uint16, v uint32) Entry {
	return Entry{Tag: tag, Type: 4, Count: 1, Value: U32(order, v)}
}

// Rational returns a RATIONAL entry with a single value.
func Rational(order binary.ByteOrder, tag uint16, num, den uint32) Entry {
	v := append(U32(order, num), U32(order, den)...)
	return Entry{Tag: tag, Type: 5, Count: 1, Value: v}
}

// U16 encodes v using order.
func U16(order binary.ByteOrder, v uint16) []byte {
	b := make([]byte, 2)
	order.PutUint16(b, v)
	return b
}

// U32 encodes v using order.
func U32(order binary.ByteOrder, v uint32) []byte {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	return b
}

// Segment is a JPEG marker segment. Payload excludes the length field.
type Segment struct {
	Marker  byte
	Payload []byte
}

// Exif wraps a TIFF block in an APP1 segment with the Exif signature.
func Exif(tiff []byte) Segment {
	return Segment{Marker: 0xe1, Payload: append([]byte("Exif\x00\x00"), tiff...)}
}

// JPEG returns SOI, the segments, a start of scan with some entropy coded
// bytes and EOI. The result is not decodable as an image.
func JPEG(segments ...Segment) []byte {
	buf := []byte{0xff, 0xd8}
	for _, seg := range segments {
		buf = AppendSegment(buf, seg)
	}
	buf = AppendSegment(buf, Segment{Marker: 0xda, Payload: []byte{1, 1, 0, 0, 0x3f, 0}})
	// Entropy coded data may hold marker-like bytes.
	buf = append(buf, 0x12, 0xff, 0x00, 0xff, 0xe1, 0x00, 0x10, 0x34)
	return append(buf, 0xff, 0xd9)
}

// AppendSegment appends the marker, length and payload of seg to buf.
func AppendSegment(buf []byte, seg Segment) []byte {
	buf = append(buf, 0xff, seg.Marker)
	buf = append(buf, U16(binary.BigEndian, uint16(len(seg.Payload)+2))...)
	return append(buf, seg.Payload...)
}

// EncodeJPEG encodes a decodable w by h gray JPEG and inserts segments right
// after its SOI marker.
func EncodeJPEG(w, h int, segments ...Segment) []byte {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, gray(w, h), nil)
	if err != nil {
		panic(err)
	}
	enc := buf.Bytes()
	out := append([]byte{}, enc[:2]...)
	for _, seg := range segments {
		out = AppendSegment(out, seg)
	}
	return append(out, enc[2:]...)
}

// EncodePNG encodes a decodable w by h gray PNG.
func EncodePNG(w, h int) []byte {
	var buf bytes.Buffer
	err := png.Encode(&buf, gray(w, h))
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func gray(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x + y)})
		}
	}
	return img
}
