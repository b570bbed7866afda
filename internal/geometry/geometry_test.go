package geometry

import "testing"

func TestChooseLevel(t *testing.T) {
	tests := []struct {
		name         string
		fullShape    Shape
		levelCount   int
		target       int64
		preferHigher bool
		want         int
		wantErr      bool
	}{
		// S6: choose_level(full=(6,6), level_count=2, target=4, prefer_higher=true) = 0
		{"S6 prefer higher", Shape{6, 6}, 2, 4, true, 0, false},
		// S6: same with prefer_higher=false returns 1
		{"S6 prefer lower", Shape{6, 6}, 2, 4, false, 1, false},
		// P4: longest side exactly equals target -> level 0 regardless of flag
		{"P4 exact match prefer higher", Shape{1024, 512}, 4, 1024, true, 0, false},
		{"P4 exact match prefer lower", Shape{1024, 512}, 4, 1024, false, 0, false},
		{"invalid level count", Shape{6, 6}, 0, 4, true, 0, true},
		{"invalid target", Shape{6, 6}, 2, 0, true, 0, true},
		{"clamp to max level", Shape{100000, 100000}, 3, 4, false, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChooseLevel(tt.fullShape, tt.levelCount, tt.target, tt.preferHigher)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ChooseLevel() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ChooseLevel() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ChooseLevel() = %d, want %d", got, tt.want)
			}
		})
	}
}

// P5: scale_to_level(scale_to_level(x, 0), 0) = x
func TestScaleToLevelRoundTrip(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}, {1023, 511}, {99999, 1}}
	for _, p := range pts {
		got := ScaleToLevel(ScaleToLevel(p, 0), 0)
		if got != p {
			t.Errorf("ScaleToLevel round trip at level 0: got %v, want %v", got, p)
		}
	}
}

func TestScaleToLevel(t *testing.T) {
	got := ScaleToLevel(Point{Y: 100, X: 200}, 2)
	want := Point{Y: 25, X: 50}
	if got != want {
		t.Errorf("ScaleToLevel(100,200,2) = %v, want %v", got, want)
	}
}

// P1: tile-count correctness.
func TestSelectGridsCount(t *testing.T) {
	tests := []struct {
		tileShape  Shape
		origin     Point
		shape      Shape
		wantGrids  int
	}{
		{Shape{256, 256}, Point{0, 0}, Shape{1024, 1024}, 16},
		{Shape{256, 256}, Point{1, 1}, Shape{1024, 1024}, 25},
		{Shape{1024, 1024}, Point{0, 0}, Shape{1080, 1920}, 4},
		{Shape{3, 1}, Point{0, 0}, Shape{3, 1}, 1},
	}
	for _, tt := range tests {
		grids := SelectGrids(tt.tileShape, tt.origin, tt.shape)
		if len(grids) != tt.wantGrids {
			t.Errorf("SelectGrids(%v,%v,%v) len = %d, want %d", tt.tileShape, tt.origin, tt.shape, len(grids), tt.wantGrids)
		}

		count := GridCount(tt.tileShape, tt.origin, tt.shape)
		if int(count.H*count.W) != tt.wantGrids {
			t.Errorf("GridCount(%v,%v,%v) = %v, product %d, want %d", tt.tileShape, tt.origin, tt.shape, count, count.H*count.W, tt.wantGrids)
		}
	}
}

// Row-major ordering: (gy, gx) increasing, gx innermost.
func TestSelectGridsOrder(t *testing.T) {
	grids := SelectGrids(Shape{256, 256}, Point{0, 0}, Shape{512, 768})
	want := []Grid{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	if len(grids) != len(want) {
		t.Fatalf("len(grids) = %d, want %d", len(grids), len(want))
	}
	for i, g := range grids {
		if g != want[i] {
			t.Errorf("grids[%d] = %v, want %v", i, g, want[i])
		}
	}
}

func TestSelectSubregionAndPosition(t *testing.T) {
	tileShape := Shape{H: 256, W: 256}
	origin := Point{Y: 100, X: 50}
	shape := Shape{H: 500, W: 500}

	for _, g := range SelectGrids(tileShape, origin, shape) {
		start, end := SelectSubregion(g, tileShape, origin, shape)
		if start.Y < 0 || start.Y >= end.Y || end.Y > tileShape.H {
			t.Errorf("grid %v: bad y subregion %v..%v", g, start.Y, end.Y)
		}
		if start.X < 0 || start.X >= end.X || end.X > tileShape.W {
			t.Errorf("grid %v: bad x subregion %v..%v", g, start.X, end.X)
		}

		pos := SelectPosition(g, tileShape, origin)
		if pos.Y < 0 || pos.Y >= shape.H || pos.X < 0 || pos.X >= shape.W {
			t.Errorf("grid %v: position %v out of output bounds %v", g, pos, shape)
		}
	}
}

// P2: coverage without overlap — each grid's output rectangle partitions
// the output exactly; sum of rectangle areas equals output area.
func TestSelectGridsPartitionOutput(t *testing.T) {
	tileShape := Shape{H: 256, W: 256}
	origin := Point{Y: 10, X: 20}
	shape := Shape{H: 1000, W: 700}

	covered := make(map[[2]int64]bool)
	var area int64
	for _, g := range SelectGrids(tileShape, origin, shape) {
		start, end := SelectSubregion(g, tileShape, origin, shape)
		pos := SelectPosition(g, tileShape, origin)
		h := end.Y - start.Y
		w := end.X - start.X
		area += h * w

		for y := pos.Y; y < pos.Y+h; y++ {
			for x := pos.X; x < pos.X+w; x++ {
				key := [2]int64{y, x}
				if covered[key] {
					t.Fatalf("pixel (%d,%d) covered by more than one grid", y, x)
				}
				covered[key] = true
			}
		}
	}
	if area != shape.H*shape.W {
		t.Errorf("total covered area = %d, want %d", area, shape.H*shape.W)
	}
}

// S5: region validation.
func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name       string
		origin     Point
		shape      Shape
		imageShape Shape
		want       bool
	}{
		{"negative origin", Point{0, -1}, Shape{2, 2}, Shape{6, 6}, false},
		{"valid", Point{1, 0}, Shape{2, 2}, Shape{6, 6}, true},
		{"exceeds bounds", Point{1, 0}, Shape{6, 6}, Shape{6, 6}, false},
		{"zero shape", Point{0, 0}, Shape{0, 2}, Shape{6, 6}, false},
	}
	for _, tt := range tests {
		if got := ValidateRegion(tt.origin, tt.shape, tt.imageShape); got != tt.want {
			t.Errorf("ValidateRegion(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
