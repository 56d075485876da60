// Package meta assembles the metadata of one image file: the attributes of
// the file, its pixel dimensions and the EXIF tags found in it.
package meta

import (
	"strconv"
	"time"

	log "github.com/dsoprea/go-logging"
	"github.com/go-errors/errors"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/jpeg"
	"github.com/soypat/exifmeta/tiff"
)

var metaLogger = log.NewLogger("exifmeta.meta")

// FileInfo holds the attributes of the selected file.
type FileInfo struct {
	Name     string
	Size     int64
	MIMEType string
	ModTime  time.Time
}

// Orientation of an image derived from its dimensions.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Square    Orientation = "square"
)

// Dimensions are natural pixel dimensions.
type Dimensions struct {
	Width, Height int
}

// AspectRatio returns the ratio reduced by the greatest common divisor, e.g.
// "16:9" for 1920x1080. It is empty if either side is not positive.
func (d Dimensions) AspectRatio() string {
	if d.Width <= 0 || d.Height <= 0 {
		return ""
	}
	g := gcd(d.Width, d.Height)
	return strconv.Itoa(d.Width/g) + ":" + strconv.Itoa(d.Height/g)
}

// Megapixels returns width times height in millions of pixels.
func (d Dimensions) Megapixels() float64 {
	if d.Width <= 0 || d.Height <= 0 {
		return 0
	}
	return float64(d.Width) * float64(d.Height) / 1e6
}

// Orientation returns the orientation, empty if either side is not positive.
func (d Dimensions) Orientation() Orientation {
	switch {
	case d.Width <= 0 || d.Height <= 0:
		return ""
	case d.Width > d.Height:
		return Landscape
	case d.Width < d.Height:
		return Portrait
	}
	return Square
}

// Metadata is the assembled result for one file. It is built once and must
// not be modified afterwards.
type Metadata struct {
	File        FileInfo
	Dimensions  Dimensions
	AspectRatio string
	Megapixels  float64
	Orientation Orientation
	// EXIF maps tag names to values in directory order. Never nil.
	EXIF *exifmeta.TagSet
}

// Assemble combines file attributes, dimensions and decoded tags. It is pure:
// the same inputs always produce the same Metadata.
func Assemble(info FileInfo, dims Dimensions, tags []exifmeta.Tag) Metadata {
	return Metadata{
		File:        info,
		Dimensions:  dims,
		AspectRatio: dims.AspectRatio(),
		Megapixels:  dims.Megapixels(),
		Orientation: dims.Orientation(),
		EXIF:        exifmeta.NewTagSet(tags),
	}
}

// Extract reads the EXIF tags of b, decodes its dimensions with dec and
// assembles the result. A nil dec uses ImageConfigDecoder.
//
// Missing or malformed EXIF data never fails Extract, it yields an empty tag
// set. The returned error is only set when the dimensions could not be
// decoded, in which case the Metadata still carries the file attributes and
// any tags found.
func Extract(b []byte, info FileInfo, dec DimensionDecoder, opts ...tiff.Option) (Metadata, error) {
	res, err := jpeg.Decode(b, opts...)
	switch {
	case err != nil:
		metaLogger.Debugf(nil, "%s: no EXIF metadata: %v", info.Name, err)
	case res.Skipped != nil:
		metaLogger.Debugf(nil, "%s: %v", info.Name, res.Skipped)
	}
	if dec == nil {
		dec = ImageConfigDecoder{}
	}
	dims, err := dec.DecodeDimensions(b)
	if err != nil {
		return Assemble(info, Dimensions{}, res.Tags), errors.Errorf("meta: decoding dimensions of %q: %w", info.Name, err)
	}
	return Assemble(info, dims, res.Tags), nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
