package meta

import (
	"bytes"
	"image"

	// Register decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DimensionDecoder reports the natural pixel dimensions of an encoded image.
type DimensionDecoder interface {
	DecodeDimensions(b []byte) (Dimensions, error)
}

// DimensionDecoderFunc adapts a function to DimensionDecoder.
type DimensionDecoderFunc func(b []byte) (Dimensions, error)

func (f DimensionDecoderFunc) DecodeDimensions(b []byte) (Dimensions, error) { return f(b) }

// ImageConfigDecoder reads dimensions from image headers without decoding
// pixels. It understands JPEG, PNG, GIF, BMP, TIFF and WebP.
type ImageConfigDecoder struct{}

func (ImageConfigDecoder) DecodeDimensions(b []byte) (Dimensions, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
