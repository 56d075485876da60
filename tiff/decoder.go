package tiff

import (
	"encoding/binary"
	"errors"

	log "github.com/dsoprea/go-logging"
	"github.com/hashicorp/go-multierror"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/bytereader"
	"github.com/soypat/exifmeta/exifid"
)

var tiffLogger = log.NewLogger("exifmeta.tiff")

// Result is the outcome of decoding one TIFF block.
type Result struct {
	Order binary.ByteOrder
	// Tags holds the decoded registered tags in directory order.
	Tags []exifmeta.Tag
	// Skipped is nil or a *multierror.Error of *EntryError, one per entry
	// that could not be decoded. Unregistered tags are not reported.
	Skipped error
}

// Option configures Decode.
type Option func(*config)

type config struct {
	subIFDs bool
}

// WithSubIFDs makes Decode follow the ExifOffset pointer of IFD0 and append
// the tags of the Exif sub-IFD after those of IFD0.
func WithSubIFDs() Option {
	return func(c *config) { c.subIFDs = true }
}

// Decode decodes the first IFD of the TIFF block b. An invalid header or an
// unreadable IFD0 entry count returns an error and no tags. Failures on
// single entries never abort decoding; they are collected in Result.Skipped.
func Decode(b []byte, opts ...Option) (Result, error) {
	return DecodeReader(bytereader.New(b), opts...)
}

// DecodeReader is like Decode but reads the TIFF block from r, whose offset
// 0 is the first byte of the header.
func DecodeReader(r bytereader.Reader, opts ...Option) (Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	hdr, err := ParseHeader(r)
	if err != nil {
		tiffLogger.Debugf(nil, "bad TIFF header: %v", err)
		return Result{}, log.Wrap(err)
	}
	d := decoder{
		r:       r,
		order:   hdr.Order,
		visited: make(map[uint32]bool),
	}
	res := Result{Order: hdr.Order}
	ifd0, err := d.decodeDir(hdr.FirstIFD)
	if err != nil {
		tiffLogger.Debugf(nil, "reading IFD0 at %d: %v", hdr.FirstIFD, err)
		return Result{}, log.Wrap(err)
	}
	res.Tags = d.decodeEntries(ifd0)
	if cfg.subIFDs {
		for i, e := range ifd0.Entries {
			if e.Tag != exifid.ExifOffset {
				continue
			}
			sub, err := d.decodeDir(e.ValueOrOffset)
			if err != nil {
				d.skip(ifd0.Offset, ifd0.index[i], e, err)
				break
			}
			res.Tags = append(res.Tags, d.decodeEntries(sub)...)
			break
		}
	}
	res.Skipped = d.skipped.ErrorOrNil()
	return res, nil
}

// Directory is an IFD whose entries have been read but not decoded.
type Directory struct {
	Offset  uint32
	Entries []Entry
	// index of each entry in the directory, entries failing to read are absent.
	index []int
}

type decoder struct {
	r       bytereader.Reader
	order   binary.ByteOrder
	visited map[uint32]bool
	skipped *multierror.Error
}

var errRecursiveDir = errors.New("tiff: recursive directory")

func (d *decoder) decodeDir(off uint32) (dir Directory, err error) {
	if d.visited[off] {
		return dir, errRecursiveDir
	}
	d.visited[off] = true
	base := offset(off)
	nTags, err := d.r.Uint16(base, d.order)
	if err != nil {
		return dir, err
	}
	dir.Offset = off
	dir.Entries = make([]Entry, 0, nTags)
	// Entries follow the count field.
	totalOffset := base + 2
	for i := 0; i < int(nTags); i++ {
		e, err := ReadEntry(d.r, totalOffset, d.order)
		totalOffset += entrySize
		if err != nil {
			d.skip(off, i, e, err)
			continue
		}
		dir.Entries = append(dir.Entries, e)
		dir.index = append(dir.index, i)
	}
	return dir, nil
}

// decodeEntries folds the per-entry decode results of dir into a tag list.
func (d *decoder) decodeEntries(dir Directory) []exifmeta.Tag {
	tags := make([]exifmeta.Tag, 0, len(dir.Entries))
	for i, e := range dir.Entries {
		tag, err := DecodeEntry(d.r, d.order, e)
		switch {
		case err == nil:
			tags = append(tags, tag)
		case errors.Is(err, ErrUnregisteredTag):
			// Vendor and uncommon tags are dropped silently.
		default:
			d.skip(dir.Offset, dir.index[i], e, err)
		}
	}
	return tags
}

func (d *decoder) skip(ifd uint32, index int, e Entry, err error) {
	entryErr := &EntryError{IFD: ifd, Index: index, Entry: e, Err: err}
	tiffLogger.Debugf(nil, "skipping entry: %v", entryErr)
	d.skipped = multierror.Append(d.skipped, entryErr)
}
