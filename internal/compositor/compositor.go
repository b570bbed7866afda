// Package compositor drives the per-channel kernels over the tiles
// streamed for one output region, accumulating an additive composition and
// finalizing it to a gamma-corrected float RGB image (§4.4, §4.6).
package compositor

import (
	"fmt"
	"math"

	"github.com/labsyspharm/minervarender/internal/bufpool"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
)

const defaultGamma = 2.2

// Composite accumulates the tiles yielded by stream into an RGB image
// covering regionShape, clamps, and applies gamma correction. It fails
// fast on invalid input and otherwise never retries or partially commits
// output (§7 Propagation policy).
func Composite(channels []ChannelSettings, tileShape geometry.Shape, regionOrigin geometry.Point, regionShape geometry.Shape, stream TileStream, outputGamma float64) (*Image, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	if regionShape.H <= 0 || regionShape.W <= 0 || tileShape.H <= 0 || tileShape.W <= 0 {
		return nil, ErrInvalidRegion
	}

	maxBits := kernel.Bits8
	for _, ch := range channels {
		if ch.Bits > maxBits {
			maxBits = ch.Bits
		}
	}

	var thresholds []channelThresholds
	for i, ch := range channels {
		if err := validateChannelSettings(ch); err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		thresholds = append(thresholds, newChannelThresholds(ch, maxBits))
	}

	if outputGamma == 0 {
		outputGamma = defaultGamma
	}

	accum := bufpool.GetAccum(int(regionShape.H * regionShape.W * 3))
	defer bufpool.PutAccum(accum)

	for {
		item, ok, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		ch := channels[item.ChannelIndex]
		if item.Tile.Bits != ch.Bits {
			return nil, fmt.Errorf("channel %d grid %v: declared %d-bit, tile is %d-bit: %w",
				item.ChannelIndex, item.Grid, ch.Bits, item.Tile.Bits, ErrTileWidthMismatch)
		}

		if err := compositeOne(accum, regionShape, tileShape, regionOrigin, item, ch, thresholds[item.ChannelIndex]); err != nil {
			return nil, err
		}
	}

	return finalize(accum, regionShape, maxBits, outputGamma), nil
}

// channelThresholds holds the integer window bounds derived once per
// channel from its normalized window (§4.2 rescale), plus the factor that
// rescales this channel's windowed value up to the composition's common
// full scale before it is accumulated (I1: each channel must contribute
// by its own fraction of full brightness, not its raw integer magnitude).
type channelThresholds struct {
	minI, maxI uint64
	scale      float64
}

func newChannelThresholds(ch ChannelSettings, maxBits kernel.Bits) channelThresholds {
	return channelThresholds{
		minI:  kernel.Threshold(ch.Bits, ch.MinN),
		maxI:  kernel.Threshold(ch.Bits, ch.MaxN),
		scale: float64(maxBits.FullScale()) / float64(ch.Bits.FullScale()),
	}
}

func validateChannelSettings(ch ChannelSettings) error {
	if !ch.Bits.Valid() {
		return fmt.Errorf("%w: unsupported bit width %d", ErrTileWidthMismatch, ch.Bits)
	}
	if ch.MinN < 0 || ch.MinN > 1 || ch.MaxN < 0 || ch.MaxN > 1 || ch.MaxN <= ch.MinN {
		return fmt.Errorf("%w: min=%v max=%v", ErrInvalidWindow, ch.MinN, ch.MaxN)
	}
	for _, c := range ch.Color {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: component %v", ErrInvalidColor, c)
		}
	}
	return nil
}

// compositeOne extracts the subtile needed for one work item, rescales it
// in place, and additively composites it into accum at the right position.
// Grid cells whose subtile is empty (e.g. an edge tile smaller than the
// nominal tile shape, clipped below the intersection) are skipped without
// writing (§4.4 edge-case policy).
func compositeOne(accum []uint64, regionShape, tileShape geometry.Shape, regionOrigin geometry.Point, item StreamItem, ch ChannelSettings, th channelThresholds) error {
	start, end := geometry.SelectSubregion(item.Grid, tileShape, regionOrigin, regionShape)
	position := geometry.SelectPosition(item.Grid, tileShape, regionOrigin)

	// Edge tiles may be smaller than the nominal tile shape; clip the
	// subregion (and correspondingly the output rectangle) to the tile's
	// real extent rather than treating this as an error.
	if end.Y > item.Tile.Shape.H {
		end.Y = item.Tile.Shape.H
	}
	if end.X > item.Tile.Shape.W {
		end.X = item.Tile.Shape.W
	}
	if start.Y >= end.Y || start.X >= end.X {
		return nil
	}

	stride := item.Tile.Shape.W
	rows := end.Y - start.Y
	cols := end.X - start.X

	for r := int64(0); r < rows; r++ {
		srcRowStart := (start.Y+r)*stride + start.X
		srcRowEnd := srcRowStart + cols

		dstY := position.Y + r
		dstRowStart := (dstY*regionShape.W + position.X) * 3
		dstRow := accum[dstRowStart : dstRowStart+cols*3]

		switch ch.Bits {
		case kernel.Bits8:
			row := item.Tile.U8[srcRowStart:srcRowEnd]
			kernel.RescaleU8(row, uint8(th.minI), uint8(th.maxI))
			kernel.CompositeU8(dstRow, row, ch.Color[0], ch.Color[1], ch.Color[2], th.scale)
		case kernel.Bits16:
			row := item.Tile.U16[srcRowStart:srcRowEnd]
			kernel.RescaleU16(row, uint16(th.minI), uint16(th.maxI))
			kernel.CompositeU16(dstRow, row, ch.Color[0], ch.Color[1], ch.Color[2], th.scale)
		case kernel.Bits32:
			row := item.Tile.U32[srcRowStart:srcRowEnd]
			kernel.RescaleU32(row, uint32(th.minI), uint32(th.maxI))
			kernel.CompositeU32(dstRow, row, ch.Color[0], ch.Color[1], ch.Color[2], th.scale)
		}
	}
	return nil
}

// finalize clamps the accumulator to the widest channel's full scale,
// normalizes to [0,1], and applies gamma correction elementwise (§4.6).
func finalize(accum []uint64, shape geometry.Shape, maxBits kernel.Bits, gamma float64) *Image {
	scale := float64(maxBits.FullScale())
	img := NewImage(shape)

	invGamma := 1 / gamma
	for i, v := range accum {
		f := float64(v) / scale
		if f > 1 {
			f = 1
		}
		if invGamma != 1 {
			f = math.Pow(f, invGamma)
		}
		img.Pix[i] = f
	}
	return img
}
