// Package workitem separates region-level decisions (which tiles are
// needed) from tile-level work (how to combine them). It owns none of the
// rendering math; it only enumerates the (channel, grid) pairs a region
// requires, in the deterministic order the accumulator depends on (§4.3).
package workitem

import "github.com/labsyspharm/minervarender/internal/geometry"

// Item is one (channel, tile) unit of work the compositor must process.
type Item struct {
	ChannelIndex int
	Grid         geometry.Grid
}

// Iterate returns the ordered work items for a region: row-major by
// (gy, gx), and within a cell, by channel index — the order that makes the
// output accumulator's bit pattern reproducible (I6).
func Iterate(tileShape geometry.Shape, regionOrigin geometry.Point, regionShape geometry.Shape, channelCount int) []Item {
	grids := geometry.SelectGrids(tileShape, regionOrigin, regionShape)

	items := make([]Item, 0, len(grids)*channelCount)
	for _, g := range grids {
		for ch := 0; ch < channelCount; ch++ {
			items = append(items, Item{ChannelIndex: ch, Grid: g})
		}
	}
	return items
}
