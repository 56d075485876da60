// Package jpeg walks the marker segments of a JPEG file and locates the
// EXIF block carried by an APP1 segment.
package jpeg

import (
	"bytes"
	"encoding/binary"
	"errors"

	log "github.com/dsoprea/go-logging"

	"github.com/soypat/exifmeta/bytereader"
	"github.com/soypat/exifmeta/tiff"
)

// JPEG markers.
const (
	MarkerSOI  = 0xffd8 // Start of image.
	MarkerEOI  = 0xffd9 // End of image.
	MarkerSOS  = 0xffda // Start of scan.
	MarkerAPP1 = 0xffe1
)

var exifSignature = []byte("Exif\x00\x00")

var (
	// ErrNotJPEG is reported by Scanner.Err for buffers without a SOI marker.
	ErrNotJPEG = errors.New("jpeg: missing start of image marker")
	// ErrBadMarker is reported when a segment does not start with 0xff.
	ErrBadMarker = errors.New("jpeg: invalid marker")
	// ErrBadLength is reported for a segment length smaller than its own field.
	ErrBadLength = errors.New("jpeg: invalid segment length")
)

var jpegLogger = log.NewLogger("exifmeta.jpeg")

// Segment is a marker segment. Offset and Length delimit its payload, which
// excludes the marker and the length field.
type Segment struct {
	Marker uint16
	Offset int
	Length int
}

// IsJPEG reports whether b starts with the SOI marker.
func IsJPEG(b []byte) bool {
	return len(b) >= 2 && binary.BigEndian.Uint16(b) == MarkerSOI
}

// Scanner yields the marker segments of a JPEG one at a time, stopping at
// the start of scan since only entropy coded data follows it.
//
//	s := jpeg.NewScanner(b)
//	for s.Next() {
//		seg := s.Segment()
//	}
//	err := s.Err()
type Scanner struct {
	r    bytereader.Reader
	off  int
	seg  Segment
	err  error
	done bool
}

// NewScanner returns a Scanner over b.
func NewScanner(b []byte) *Scanner {
	s := &Scanner{r: bytereader.New(b), off: 2}
	if !IsJPEG(b) {
		s.stop(ErrNotJPEG)
	}
	return s
}

// Next advances to the next segment. It returns false at the start of scan,
// at the end of image, at the end of the buffer or on a malformed segment.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.off >= s.r.Len() {
		s.stop(nil)
		return false
	}
	marker, err := s.r.Uint16(s.off, binary.BigEndian)
	if err != nil {
		s.stop(err)
		return false
	}
	if marker>>8 != 0xff {
		s.stop(ErrBadMarker)
		return false
	}
	if marker == MarkerSOS || marker == MarkerEOI {
		s.stop(nil)
		return false
	}
	// The length field counts itself but not the marker.
	length, err := s.r.Uint16(s.off+2, binary.BigEndian)
	if err != nil {
		s.stop(err)
		return false
	}
	if length < 2 {
		s.stop(ErrBadLength)
		return false
	}
	payload := s.off + 4
	n := int(length) - 2
	if avail := s.r.Len() - payload; n > avail {
		n = avail // Truncated file, keep what there is.
	}
	s.seg = Segment{Marker: marker, Offset: payload, Length: n}
	s.off = payload + int(length) - 2
	return true
}

func (s *Scanner) stop(err error) {
	s.done = true
	s.err = err
}

// Segment returns the segment found by the last call to Next.
func (s *Scanner) Segment() Segment { return s.seg }

// Payload returns the payload bytes of the current segment.
func (s *Scanner) Payload() []byte {
	b, _ := s.r.Bytes(s.seg.Offset, s.seg.Length) // Bounds checked by Next.
	return b
}

// Err returns the reason the walk stopped early, nil for a normal end.
// Callers treat it as diagnostic: segments yielded before it are valid.
func (s *Scanner) Err() error { return s.err }

// Segments returns every segment before the start of scan.
func Segments(b []byte) ([]Segment, error) {
	var segs []Segment
	s := NewScanner(b)
	for s.Next() {
		segs = append(segs, s.Segment())
	}
	return segs, s.Err()
}

// FindExif returns the TIFF block held by the first APP1 segment carrying
// the "Exif\0\0" signature. APP1 segments used for other purposes, such as
// XMP, are skipped.
func FindExif(b []byte) (tiffBlock []byte, ok bool) {
	block, ok := exifBlock(b)
	if !ok {
		return nil, false
	}
	tiffBlock, _ = block.Bytes(0, block.Len())
	return tiffBlock, true
}

// exifBlock returns a Reader bounded to the TIFF block, so that offsets read
// from the block cannot reach into the segments following it.
func exifBlock(b []byte) (bytereader.Reader, bool) {
	s := NewScanner(b)
	for s.Next() {
		seg := s.Segment()
		if seg.Marker != MarkerAPP1 || !bytes.HasPrefix(s.Payload(), exifSignature) {
			continue
		}
		block, err := s.r.Slice(seg.Offset+len(exifSignature), seg.Length-len(exifSignature))
		return block, err == nil
	}
	if err := s.Err(); err != nil {
		jpegLogger.Debugf(nil, "segment walk stopped: %v", err)
	}
	return bytereader.Reader{}, false
}

// Decode extracts the EXIF tags of a JPEG. Buffers that are not JPEG or
// carry no EXIF segment yield an empty result and no error; an EXIF segment
// with an invalid TIFF header yields an empty result and the header error.
func Decode(b []byte, opts ...tiff.Option) (tiff.Result, error) {
	block, ok := exifBlock(b)
	if !ok {
		return tiff.Result{}, nil
	}
	return tiff.DecodeReader(block, opts...)
}
