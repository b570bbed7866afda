// Package geometry implements the region/tile-grid arithmetic and pyramid
// level selection used to translate a caller's output request into the set
// of source tiles that must be composited.
//
// All coordinates are carried as int64 to avoid overflow at large pyramid
// extents (§4.1 edge policy).
package geometry

// Point is a y, x coordinate pair in some coordinate space (full
// resolution, a pyramid level, or output-local).
type Point struct {
	Y, X int64
}

// Shape is a height, width extent.
type Shape struct {
	H, W int64
}

// Grid identifies a tile by its row, column index within a channel's grid
// at one pyramid level.
type Grid struct {
	GY, GX int64
}

// Add returns the componentwise sum of a point and a shape treated as a
// displacement.
func (p Point) Add(s Shape) Point {
	return Point{Y: p.Y + s.H, X: p.X + s.W}
}

// Sub returns the componentwise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{Y: p.Y - q.Y, X: p.X - q.X}
}

// Max returns the componentwise maximum of two points.
func Max(a, b Point) Point {
	return Point{Y: maxI64(a.Y, b.Y), X: maxI64(a.X, b.X)}
}

// Min returns the componentwise minimum of two points.
func Min(a, b Point) Point {
	return Point{Y: minI64(a.Y, b.Y), X: minI64(a.X, b.X)}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
