package compositor

import "errors"

// Sentinel errors forming the core failure taxonomy (§7). Each is checked
// with errors.Is by callers; internal/renderer re-exports these under its
// own names as the module's public error surface.
var (
	ErrInvalidRegion     = errors.New("compositor: invalid region")
	ErrNoChannels        = errors.New("compositor: no channels specified")
	ErrTileWidthMismatch = errors.New("compositor: tile bit width does not match declared channel width")
	ErrInvalidWindow     = errors.New("compositor: invalid intensity window")
	ErrInvalidColor      = errors.New("compositor: invalid channel color")
)
