// Package encode converts a finalized, gamma-corrected RGB image into
// bytes in one of a small set of output formats. This sits outside the
// rendering core: the core's own output is a float RGB buffer (§6); encode
// only serves the CLI's convenience conversion to a file the caller can
// view.
package encode

import (
	"fmt"
	"image"
)

// Encoder encodes an image into output file bytes.
type Encoder interface {
	// Encode encodes img to bytes in the target format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// FileExtension returns the appropriate file extension, including the
	// leading dot.
	FileExtension() string
}

// NewEncoder creates an encoder for the given format and quality. quality
// is only meaningful for lossy formats (jpeg, webp); it is ignored
// otherwise.
func NewEncoder(format string, quality int) (Encoder, error) {
	switch format {
	case "jpeg", "jpg":
		return &JPEGEncoder{Quality: quality}, nil
	case "png":
		return &PNGEncoder{}, nil
	case "webp":
		return newWebPEncoder(quality)
	default:
		return nil, fmt.Errorf("unsupported output format: %q (supported: jpeg, png, webp)", format)
	}
}
