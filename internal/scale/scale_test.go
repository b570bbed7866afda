package scale

import (
	"testing"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
)

func TestScaleInvalidFactors(t *testing.T) {
	img := compositor.NewImage(geometry.Shape{H: 4, W: 4})
	tests := []Factors{{0, 1}, {1, 0}, {-1, 1}, {1, -1}}
	for _, f := range tests {
		if _, err := Scale(img, f); err != ErrInvalidScale {
			t.Errorf("Scale(%v) error = %v, want ErrInvalidScale", f, err)
		}
	}
}

func TestScaleIdentity(t *testing.T) {
	img := compositor.NewImage(geometry.Shape{H: 2, W: 2})
	for i := range img.Pix {
		img.Pix[i] = float64(i) / float64(len(img.Pix))
	}

	out, err := Scale(img, Uniform(1))
	if err != nil {
		t.Fatalf("Scale() error: %v", err)
	}
	if out.Shape != img.Shape {
		t.Fatalf("Scale(1) shape = %v, want %v", out.Shape, img.Shape)
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Errorf("pixel %d = %v, want %v", i, out.Pix[i], img.Pix[i])
		}
	}
}

func TestScaleDownByHalf(t *testing.T) {
	img := compositor.NewImage(geometry.Shape{H: 4, W: 4})
	// Distinct per-pixel red value so we can trace which source pixel was sampled.
	for y := int64(0); y < 4; y++ {
		for x := int64(0); x < 4; x++ {
			i := (y*4 + x) * 3
			img.Pix[i] = float64(y*4 + x)
		}
	}

	out, err := Scale(img, Uniform(0.5))
	if err != nil {
		t.Fatalf("Scale() error: %v", err)
	}
	want := geometry.Shape{H: 2, W: 2}
	if out.Shape != want {
		t.Fatalf("Scale(0.5) shape = %v, want %v", out.Shape, want)
	}
	// round(linspace(0, 3, 2)) = [0, 3] on both axes: the four corners.
	wantRed := []float64{0, 3, 12, 15}
	for i, w := range wantRed {
		if got, _, _ := out.At(int64(i/2), int64(i%2)); got != w {
			t.Errorf("pixel (%d,%d) red = %v, want %v", i/2, i%2, got, w)
		}
	}
}

func TestScaleUpscale(t *testing.T) {
	img := compositor.NewImage(geometry.Shape{H: 2, W: 2})
	img.Pix[0] = 1 // (0,0) red = 1

	out, err := Scale(img, Uniform(2))
	if err != nil {
		t.Fatalf("Scale() error: %v", err)
	}
	want := geometry.Shape{H: 4, W: 4}
	if out.Shape != want {
		t.Fatalf("Scale(2) shape = %v, want %v", out.Shape, want)
	}
	topLeft, _, _ := out.At(0, 0)
	if topLeft != 1 {
		t.Errorf("upscaled top-left = %v, want 1", topLeft)
	}
}
