package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
)

// channelDescriptor is one entry of a descriptor file's "channels" array.
type channelDescriptor struct {
	Dir   string     `json:"dir"`   // directory holding this channel's tile files
	Bits  int        `json:"bits"`  // 8, 16, or 32
	Color [3]float64 `json:"color"` // RGB weights in [0,1]
	Min   float64    `json:"min"`   // normalized window lower bound in [0,1]
	Max   float64    `json:"max"`   // normalized window upper bound in [0,1]
	// Format names the tile file encoding within Dir: "raw" (native-width
	// flat buffer) or "png" (8/16-bit grayscale PNG).
	Format string `json:"format"`
}

// descriptor is the JSON document the CLI reads to describe a render
// request: the full pyramid shape, the requested region, the tile grid,
// and the channels to composite.
type descriptor struct {
	FullHeight        int64               `json:"fullHeight"`
	FullWidth         int64               `json:"fullWidth"`
	LevelCount        int                 `json:"levelCount"`
	TargetLongestSide int64               `json:"targetLongestSide"`
	PreferHigherRes   bool                `json:"preferHigherRes"`
	RegionY           int64               `json:"regionY"`
	RegionX           int64               `json:"regionX"`
	RegionHeight      int64               `json:"regionHeight"`
	RegionWidth       int64               `json:"regionWidth"`
	TileHeight        int64               `json:"tileHeight"`
	TileWidth         int64               `json:"tileWidth"`
	OutputWidth       int64               `json:"outputWidth"`  // 0 = no rescale
	OutputHeight      int64               `json:"outputHeight"` // 0 = no rescale
	Channels          []channelDescriptor `json:"channels"`
}

// loadDescriptor reads and validates a render descriptor from path.
func loadDescriptor(path string) (*descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	if len(d.Channels) == 0 {
		return nil, fmt.Errorf("descriptor: at least one channel is required")
	}
	for i, ch := range d.Channels {
		if _, err := kernel.ParseBits(ch.Bits); err != nil {
			return nil, fmt.Errorf("descriptor: channel %d: %w", i, err)
		}
		if ch.Format != "raw" && ch.Format != "png" {
			return nil, fmt.Errorf("descriptor: channel %d: unsupported format %q (want raw or png)", i, ch.Format)
		}
	}
	return &d, nil
}

func (d *descriptor) fullShape() geometry.Shape {
	return geometry.Shape{H: d.FullHeight, W: d.FullWidth}
}

func (d *descriptor) regionOrigin() geometry.Point {
	return geometry.Point{Y: d.RegionY, X: d.RegionX}
}

func (d *descriptor) regionShape() geometry.Shape {
	return geometry.Shape{H: d.RegionHeight, W: d.RegionWidth}
}

func (d *descriptor) tileShape() geometry.Shape {
	return geometry.Shape{H: d.TileHeight, W: d.TileWidth}
}

func (d *descriptor) channelSettings() []compositor.ChannelSettings {
	out := make([]compositor.ChannelSettings, len(d.Channels))
	for i, ch := range d.Channels {
		bits, _ := kernel.ParseBits(ch.Bits)
		out[i] = compositor.ChannelSettings{
			Bits:  bits,
			Color: ch.Color,
			MinN:  ch.Min,
			MaxN:  ch.Max,
		}
	}
	return out
}
