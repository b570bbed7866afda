// Package tilesource decodes already-fetched tile bytes into the sample
// buffers the rendering core consumes. It is not a network or object-store
// client: callers are responsible for getting bytes from wherever tiles
// live; this package only turns those bytes into a compositor.Tile.
package tilesource

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
)

// ErrShortRead is returned when a raw tile's byte stream ends before the
// declared shape and bit depth account for.
var ErrShortRead = errors.New("tilesource: short read")

// ErrUnsupportedPNG is returned when a PNG tile is not 8- or 16-bit
// grayscale.
var ErrUnsupportedPNG = errors.New("tilesource: unsupported PNG color model")

// DecodeRaw reads a flat, row-major buffer of native-width samples with no
// header: shape.H*shape.W samples at bits.FullScale()'s width, big-endian
// for 16/32-bit widths.
func DecodeRaw(r io.Reader, bits kernel.Bits, shape geometry.Shape) (compositor.Tile, error) {
	if !bits.Valid() {
		return compositor.Tile{}, fmt.Errorf("tilesource: %w", kernel.ErrInvalidBits)
	}
	n := shape.H * shape.W
	if n < 0 {
		return compositor.Tile{}, fmt.Errorf("tilesource: negative tile shape %v", shape)
	}

	switch bits {
	case kernel.Bits8:
		buf := make([]uint8, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return compositor.Tile{}, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return compositor.Tile{Bits: bits, Shape: shape, U8: buf}, nil
	case kernel.Bits16:
		buf := make([]uint16, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return compositor.Tile{}, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return compositor.Tile{Bits: bits, Shape: shape, U16: buf}, nil
	case kernel.Bits32:
		buf := make([]uint32, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return compositor.Tile{}, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return compositor.Tile{Bits: bits, Shape: shape, U32: buf}, nil
	default:
		return compositor.Tile{}, fmt.Errorf("tilesource: %w", kernel.ErrInvalidBits)
	}
}

// DecodePNG16 decodes an 8- or 16-bit grayscale PNG into a Tile, preserving
// its native bit depth rather than upconverting everything to 16-bit the
// way image/png's generic Gray16 conversion would.
func DecodePNG16(r io.Reader) (compositor.Tile, error) {
	img, err := png.Decode(r)
	if err != nil {
		return compositor.Tile{}, fmt.Errorf("tilesource: decoding png: %w", err)
	}

	bounds := img.Bounds()
	shape := geometry.Shape{H: int64(bounds.Dy()), W: int64(bounds.Dx())}

	switch g := img.(type) {
	case *image.Gray:
		buf := make([]uint8, len(g.Pix))
		copy(buf, g.Pix)
		return compositor.Tile{Bits: kernel.Bits8, Shape: shape, U8: buf}, nil
	case *image.Gray16:
		buf := make([]uint16, shape.H*shape.W)
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				c := g.Gray16At(bounds.Min.X+x, bounds.Min.Y+y)
				buf[int64(y)*shape.W+int64(x)] = c.Y
			}
		}
		return compositor.Tile{Bits: kernel.Bits16, Shape: shape, U16: buf}, nil
	default:
		return compositor.Tile{}, ErrUnsupportedPNG
	}
}
