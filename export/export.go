// Package export formats assembled metadata for display and download.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/meta"
)

// Field is one labelled line of output.
type Field struct {
	Label string
	Value string
}

// Fields returns the file and image fields followed by every EXIF tag, in
// display order. Image fields are omitted when dimensions are unknown.
func Fields(m meta.Metadata) []Field {
	fields := []Field{
		{"File name", m.File.Name},
		{"File size", FormatBytes(m.File.Size)},
		{"MIME type", m.File.MIMEType},
		{"Last modified", formatTime(m.File.ModTime)},
	}
	if m.Dimensions.Width > 0 && m.Dimensions.Height > 0 {
		fields = append(fields,
			Field{"Width", strconv.Itoa(m.Dimensions.Width) + " px"},
			Field{"Height", strconv.Itoa(m.Dimensions.Height) + " px"},
			Field{"Aspect ratio", m.AspectRatio},
			Field{"Megapixels", strconv.FormatFloat(m.Megapixels, 'f', 2, 64) + " MP"},
			Field{"Orientation", string(m.Orientation)},
		)
	}
	for _, tag := range m.EXIF.Tags() {
		fields = append(fields, Field{tag.Name, tag.Value})
	}
	return fields
}

// WriteText writes one "Label: value" line per field, the format used for
// copying to the clipboard.
func WriteText(w io.Writer, m meta.Metadata) error {
	for _, f := range Fields(m) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Label, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable writes the fields as two aligned columns. A note is added when
// the file carries no EXIF metadata.
func WriteTable(w io.Writer, m meta.Metadata) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range Fields(m) {
		fmt.Fprintf(tw, "%s\t%s\n", f.Label, f.Value)
	}
	if m.EXIF.Len() == 0 {
		fmt.Fprintln(tw, "EXIF\tno EXIF metadata found")
	}
	return tw.Flush()
}

// Document is the downloadable JSON representation of Metadata.
type Document struct {
	File  FileSection      `json:"file"`
	Image *ImageSection    `json:"image,omitempty"`
	EXIF  *exifmeta.TagSet `json:"exif"`
}

type FileSection struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	SizeText     string `json:"sizeText"`
	MIMEType     string `json:"mimeType"`
	LastModified string `json:"lastModified,omitempty"`
}

type ImageSection struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio string  `json:"aspectRatio"`
	Megapixels  float64 `json:"megapixels"`
	Orientation string  `json:"orientation"`
}

// NewDocument builds the JSON document of m.
func NewDocument(m meta.Metadata) Document {
	doc := Document{
		File: FileSection{
			Name:         m.File.Name,
			Size:         m.File.Size,
			SizeText:     FormatBytes(m.File.Size),
			MIMEType:     m.File.MIMEType,
			LastModified: formatTime(m.File.ModTime),
		},
		EXIF: m.EXIF,
	}
	if doc.EXIF == nil {
		doc.EXIF = exifmeta.NewTagSet(nil)
	}
	if m.Dimensions.Width > 0 && m.Dimensions.Height > 0 {
		doc.Image = &ImageSection{
			Width:       m.Dimensions.Width,
			Height:      m.Dimensions.Height,
			AspectRatio: m.AspectRatio,
			Megapixels:  m.Megapixels,
			Orientation: string(m.Orientation),
		}
	}
	return doc
}

// WriteJSON writes the indented JSON document of m.
func WriteJSON(w io.Writer, m meta.Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(m))
}

// FormatBytes renders a byte count with a binary unit: "512 B", "1.50 KB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 4; m /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 2, 64) + " " + "KMGTP"[exp:exp+1] + "B"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
