package compositor

import (
	"image"

	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
)

// ChannelSettings describes one channel's rendering parameters: its color
// and intensity window, plus the sample width its tiles are declared to
// use (§3 Channel, §4.2).
type ChannelSettings struct {
	Bits       kernel.Bits
	Color      [3]float64 // r, g, b in [0,1]
	MinN, MaxN float64    // normalized window, MinN < MaxN, both in [0,1]
}

// Tile is one fully-decoded grayscale tile bitmap. Shape is the tile's
// actual dimensions, which MAY be smaller than the nominal tile shape at
// pyramid edges (§3 Tile). Exactly one of U8/U16/U32 is populated,
// selected by Bits.
type Tile struct {
	Bits  kernel.Bits
	Shape geometry.Shape
	U8    []uint8
	U16   []uint16
	U32   []uint32
}

// StreamItem is one borrowed tile bitmap ready to be composited for a
// specific channel at a specific grid reference.
type StreamItem struct {
	ChannelIndex int
	Grid         geometry.Grid
	Tile         Tile
}

// TileStream supplies StreamItems one at a time. Implementations are not
// required to be safe for concurrent use; Composite drives a stream from a
// single goroutine (§5).
type TileStream interface {
	// Next returns the next item, or ok == false when the stream is
	// exhausted. A non-nil error aborts the composite immediately.
	Next() (item StreamItem, ok bool, err error)
}

// SliceStream is a TileStream backed by a pre-populated slice, for callers
// that fetch and decode all tiles for a region up front (e.g. after a
// concurrent I/O-bound fetch pass) before handing them to the single-
// threaded compositor.
type SliceStream struct {
	items []StreamItem
	pos   int
}

// NewSliceStream wraps items as a TileStream.
func NewSliceStream(items []StreamItem) *SliceStream {
	return &SliceStream{items: items}
}

func (s *SliceStream) Next() (StreamItem, bool, error) {
	if s.pos >= len(s.items) {
		return StreamItem{}, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

// Image is a finalized, gamma-corrected RGB raster with float samples in
// [0,1] (§3 Output buffer, §6 Outputs).
type Image struct {
	Shape geometry.Shape
	Pix   []float64 // row-major, 3 floats per pixel
}

// NewImage allocates a zeroed image of the given shape.
func NewImage(shape geometry.Shape) *Image {
	return &Image{
		Shape: shape,
		Pix:   make([]float64, shape.H*shape.W*3),
	}
}

// At returns the r, g, b values at (y, x).
func (img *Image) At(y, x int64) (r, g, b float64) {
	i := (y*img.Shape.W + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// ToRGBA8 applies the downstream convenience conversion described in §6:
// round(clamp(rgb, 0, 1) * 255) for each channel.
func (img *Image) ToRGBA8() []byte {
	out := make([]byte, img.Shape.H*img.Shape.W*4)
	for p := int64(0); p < img.Shape.H*img.Shape.W; p++ {
		r := clamp01(img.Pix[p*3+0])
		g := clamp01(img.Pix[p*3+1])
		b := clamp01(img.Pix[p*3+2])
		out[p*4+0] = byte(r*255 + 0.5)
		out[p*4+1] = byte(g*255 + 0.5)
		out[p*4+2] = byte(b*255 + 0.5)
		out[p*4+3] = 255
	}
	return out
}

// ToImage converts the finalized image to a standard library image.Image
// via the same §6 convenience conversion as ToRGBA8, for handing off to an
// encoder.
func (img *Image) ToImage() image.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, int(img.Shape.W), int(img.Shape.H)))
	copy(rgba.Pix, img.ToRGBA8())
	return rgba
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
