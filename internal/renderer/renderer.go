// Package renderer is the composition root of the rendering core: it ties
// geometry, the work-item driver, and the compositor together behind a
// single Render entry point, and owns the module's typed error surface
// (§4.4, §7).
package renderer

import (
	"fmt"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/scale"
	"github.com/labsyspharm/minervarender/internal/workitem"
)

// Error kinds re-exported from the packages that raise them, forming the
// public failure taxonomy described in §7. Callers check these with
// errors.Is.
var (
	ErrInvalidRegion     = compositor.ErrInvalidRegion
	ErrNoChannels        = compositor.ErrNoChannels
	ErrTileWidthMismatch = compositor.ErrTileWidthMismatch
	ErrInvalidWindow     = compositor.ErrInvalidWindow
	ErrInvalidColor      = compositor.ErrInvalidColor
	ErrInvalidScale      = scale.ErrInvalidScale
)

// Request describes one composition call: the full-resolution image
// extent, the requested region, the channels to blend, and the pyramid
// parameters used to choose a level (§3 Region request).
type Request struct {
	FullShape         geometry.Shape
	LevelCount        int
	TargetLongestSide int64
	PreferHigherRes   bool
	RegionOrigin      geometry.Point // full-resolution coordinates
	RegionShape       geometry.Shape // full-resolution coordinates
	TileShape         geometry.Shape
	Channels          []compositor.ChannelSettings
	OutputGamma       float64
}

// Plan is the result of resolving a Request to a concrete pyramid level,
// the scaled region at that level, and the ordered work items a tile
// fetcher must supply before calling Render's companion Composite step.
type Plan struct {
	Level        int
	RegionOrigin geometry.Point // at Level
	RegionShape  geometry.Shape // at Level
	Items        []workitem.Item
}

// PlanRequest chooses a pyramid level for the request and enumerates the
// work items needed to cover the scaled region (§4.1, §4.3). It performs
// no tile I/O; callers fetch the tiles named by Plan.Items and pass them
// to Render via a compositor.TileStream.
func PlanRequest(req Request) (Plan, error) {
	if !geometry.ValidateRegion(req.RegionOrigin, req.RegionShape, req.FullShape) {
		return Plan{}, ErrInvalidRegion
	}

	level, err := geometry.ChooseLevel(req.FullShape, req.LevelCount, req.TargetLongestSide, req.PreferHigherRes)
	if err != nil {
		return Plan{}, fmt.Errorf("renderer: choosing level: %w", err)
	}

	origin := geometry.ScaleToLevel(req.RegionOrigin, level)
	shape := geometry.ScaleShapeToLevel(req.RegionShape, level)

	items := workitem.Iterate(req.TileShape, origin, shape, len(req.Channels))

	return Plan{
		Level:        level,
		RegionOrigin: origin,
		RegionShape:  shape,
		Items:        items,
	}, nil
}

// Render composites the tiles yielded by stream for a previously computed
// Plan into a finalized, gamma-corrected RGB image (§4.4, §4.6).
func Render(plan Plan, tileShape geometry.Shape, channels []compositor.ChannelSettings, stream compositor.TileStream, outputGamma float64) (*compositor.Image, error) {
	return compositor.Composite(channels, tileShape, plan.RegionOrigin, plan.RegionShape, stream, outputGamma)
}
