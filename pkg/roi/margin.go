package roi

import "findroi/internal/models"

// DefaultMargin is the padding, in voxels, added on every side of the raw box.
const DefaultMargin uint = 50

// ClampMode selects which volume extent bounds each axis of the expanded box.
type ClampMode int

const (
	// ClampCrossAxis bounds max.x by sizeZ-1 and max.z by sizeX-1, with y
	// bounded by its own extent. Existing croppers depend on these numbers,
	// so it stays the default. On cubic volumes it is indistinguishable
	// from ClampOwnAxis.
	ClampCrossAxis ClampMode = iota

	// ClampOwnAxis bounds every axis by its own extent.
	ClampOwnAxis
)

// String implements fmt.Stringer.
func (m ClampMode) String() string {
	switch m {
	case ClampCrossAxis:
		return "cross-axis"
	case ClampOwnAxis:
		return "own-axis"
	default:
		return "unknown"
	}
}

// Expand pads box by margin on each side. The lower corner saturates at zero
// instead of wrapping, the upper corner is clamped to the last coordinate of
// the axis bound chosen by mode.
func Expand(box models.Box, size models.Coord, margin uint, mode ClampMode) models.Box {
	bound := clampBounds(size, mode)

	return models.Box{
		Min: models.Coord{
			X: saturatingSub(box.Min.X, margin),
			Y: saturatingSub(box.Min.Y, margin),
			Z: saturatingSub(box.Min.Z, margin),
		},
		Max: models.Coord{
			X: minUint(box.Max.X+margin, saturatingSub(bound.X, 1)),
			Y: minUint(box.Max.Y+margin, saturatingSub(bound.Y, 1)),
			Z: minUint(box.Max.Z+margin, saturatingSub(bound.Z, 1)),
		},
	}
}

func clampBounds(size models.Coord, mode ClampMode) models.Coord {
	if mode == ClampOwnAxis {
		return size
	}
	return models.Coord{X: size.Z, Y: size.Y, Z: size.X}
}

func saturatingSub(a, b uint) uint {
	if a < b {
		return 0
	}
	return a - b
}
