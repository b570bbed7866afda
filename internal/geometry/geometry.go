package geometry

import (
	"fmt"
	"math"
)

// ChooseLevel selects a pyramid level for a target output size.
//
// r = log2(max(fullShape) / targetLongestSide). When preferHigher is true
// the level is floor(r), otherwise ceil(r); either way the result is
// clamped to [0, levelCount-1].
func ChooseLevel(fullShape Shape, levelCount int, targetLongestSide int64, preferHigher bool) (int, error) {
	if levelCount < 1 {
		return 0, fmt.Errorf("geometry: level count must be >= 1, got %d", levelCount)
	}
	if targetLongestSide <= 0 {
		return 0, fmt.Errorf("geometry: target longest side must be > 0, got %d", targetLongestSide)
	}

	longest := fullShape.H
	if fullShape.W > longest {
		longest = fullShape.W
	}

	ratio := math.Log2(float64(longest) / float64(targetLongestSide))

	var level float64
	if preferHigher {
		level = math.Floor(ratio)
	} else {
		level = math.Ceil(ratio)
	}

	return clampLevel(int(level), levelCount), nil
}

func clampLevel(level, levelCount int) int {
	if level < 0 {
		return 0
	}
	if level > levelCount-1 {
		return levelCount - 1
	}
	return level
}

// ScaleToLevel maps a coordinate from full resolution into pyramid-level L
// coordinates: multiply by 2^-L and round to the nearest integer.
func ScaleToLevel(coords Point, level int) Point {
	factor := math.Pow(2, float64(-level))
	return Point{
		Y: int64(math.Round(float64(coords.Y) * factor)),
		X: int64(math.Round(float64(coords.X) * factor)),
	}
}

// ScaleShapeToLevel applies ScaleToLevel semantics to a Shape.
func ScaleShapeToLevel(shape Shape, level int) Shape {
	factor := math.Pow(2, float64(-level))
	return Shape{
		H: int64(math.Round(float64(shape.H) * factor)),
		W: int64(math.Round(float64(shape.W) * factor)),
	}
}

// FirstGrid returns the grid reference of the tile containing regionOrigin.
func FirstGrid(tileShape Shape, regionOrigin Point) Grid {
	return Grid{
		GY: floorDiv(regionOrigin.Y, tileShape.H),
		GX: floorDiv(regionOrigin.X, tileShape.W),
	}
}

// GridCount returns the number of grid cells spanned by a region, such
// that FirstGrid + count is the exclusive upper tile index.
func GridCount(tileShape Shape, regionOrigin Point, regionShape Shape) Shape {
	first := FirstGrid(tileShape, regionOrigin)
	end := regionOrigin.Add(regionShape)

	lastY := ceilDiv(end.Y, tileShape.H)
	lastX := ceilDiv(end.X, tileShape.W)

	return Shape{
		H: lastY - first.GY,
		W: lastX - first.GX,
	}
}

// SelectGrids returns the ordered (row-major by gy, then gx) list of grid
// references whose tiles cover the region.
func SelectGrids(tileShape Shape, regionOrigin Point, regionShape Shape) []Grid {
	first := FirstGrid(tileShape, regionOrigin)
	count := GridCount(tileShape, regionOrigin, regionShape)

	grids := make([]Grid, 0, count.H*count.W)
	for dy := int64(0); dy < count.H; dy++ {
		for dx := int64(0); dx < count.W; dx++ {
			grids = append(grids, Grid{GY: first.GY + dy, GX: first.GX + dx})
		}
	}
	return grids
}

// SelectSubregion returns the tile-local start/end pixel coordinates of the
// portion of the tile at grid that intersects the region.
func SelectSubregion(grid Grid, tileShape Shape, regionOrigin Point, regionShape Shape) (start, end Point) {
	tileStart := Point{Y: grid.GY * tileShape.H, X: grid.GX * tileShape.W}
	tileEnd := tileStart.Add(tileShape)
	regionEnd := regionOrigin.Add(regionShape)

	start = Max(regionOrigin, tileStart).Sub(tileStart)
	end = Min(tileEnd, regionEnd).Sub(tileStart)
	return start, end
}

// SelectPosition returns the position, relative to regionOrigin, at which
// the tile's contribution is placed in the output.
func SelectPosition(grid Grid, tileShape Shape, regionOrigin Point) Point {
	tileStart := Point{Y: grid.GY * tileShape.H, X: grid.GX * tileShape.W}
	return Max(regionOrigin, tileStart).Sub(regionOrigin)
}

// ValidateRegion reports whether origin/shape describe a region fully
// contained within imageShape, with strictly positive extent.
func ValidateRegion(origin Point, shape Shape, imageShape Shape) bool {
	if shape.H <= 0 || shape.W <= 0 {
		return false
	}
	if origin.Y < 0 || origin.X < 0 {
		return false
	}
	end := origin.Add(shape)
	return end.Y <= imageShape.H && end.X <= imageShape.W
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
