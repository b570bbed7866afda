// Package scale implements nearest-neighbor rescaling of a composed image
// (§4.5). It is the only resampling this module performs; interpolation
// beyond nearest neighbor is explicitly out of scope.
package scale

import (
	"errors"
	"math"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
)

// ErrInvalidScale is returned when a scale factor is non-positive.
var ErrInvalidScale = errors.New("scale: factors must be positive")

// Factors holds the height, width scale ratios applied to an image.
type Factors struct {
	FY, FX float64
}

// Uniform returns Factors with the same ratio on both axes.
func Uniform(f float64) Factors {
	return Factors{FY: f, FX: f}
}

// Scale resizes src by factors using nearest-neighbor sampling. The
// destination shape is (round(h*fy), round(w*fx)); each destination pixel
// samples from round(linspace(0, h-1, dh)) / round(linspace(0, w-1, dw))
// (§4.5).
func Scale(src *compositor.Image, factors Factors) (*compositor.Image, error) {
	if factors.FY <= 0 || factors.FX <= 0 {
		return nil, ErrInvalidScale
	}

	h, w := src.Shape.H, src.Shape.W
	dh := int64(math.Round(float64(h) * factors.FY))
	dw := int64(math.Round(float64(w) * factors.FX))
	if dh < 1 {
		dh = 1
	}
	if dw < 1 {
		dw = 1
	}

	yIndex := linspaceRound(h-1, dh)
	xIndex := linspaceRound(w-1, dw)

	dst := compositor.NewImage(geometry.Shape{H: dh, W: dw})
	for dy := int64(0); dy < dh; dy++ {
		sy := yIndex[dy]
		for dx := int64(0); dx < dw; dx++ {
			sx := xIndex[dx]
			r, g, b := src.At(sy, sx)
			di := (dy*dw + dx) * 3
			dst.Pix[di+0] = r
			dst.Pix[di+1] = g
			dst.Pix[di+2] = b
		}
	}
	return dst, nil
}

// linspaceRound returns round(linspace(0, limit, n)) as integer indices
// (§4.5). Halves round away from zero (math.Round), so an index that falls
// exactly on .5 rounds up, unlike np.round, which rounds it to even.
func linspaceRound(limit, n int64) []int64 {
	out := make([]int64, n)
	if n == 1 {
		out[0] = 0
		return out
	}
	step := float64(limit) / float64(n-1)
	for i := int64(0); i < n; i++ {
		out[i] = int64(math.Round(float64(i) * step))
	}
	return out
}
