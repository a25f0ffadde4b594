package roi

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"findroi/internal/models"
)

// IntensityStats summarises the foreground voxels inside a box.
type IntensityStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// ForegroundStats collects the intensities above threshold inside box and
// summarises them. Box coordinates past the volume are ignored. The zero
// value is returned when the box holds no foreground.
func ForegroundStats(vol *models.Volume, box models.Box, threshold uint16) IntensityStats {
	if !box.Valid() {
		return IntensityStats{}
	}
	endX := minUint(box.Max.X+1, vol.SizeX)
	endY := minUint(box.Max.Y+1, vol.SizeY)
	endZ := minUint(box.Max.Z+1, vol.SizeZ)

	var values []float64
	for z := box.Min.Z; z < endZ; z++ {
		for y := box.Min.Y; y < endY; y++ {
			for x := box.Min.X; x < endX; x++ {
				if v := vol.At(x, y, z); v > threshold {
					values = append(values, float64(v))
				}
			}
		}
	}
	if len(values) == 0 {
		return IntensityStats{}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return IntensityStats{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// PhysicalExtent converts a voxel extent to millimetres using the voxel
// spacing. It returns false when the spacing is unknown.
func PhysicalExtent(extent models.Coord, spacing models.VoxelSize) (r3.Vec, bool) {
	if !spacing.Known() {
		return r3.Vec{}, false
	}
	return r3.Vec{
		X: float64(extent.X) * spacing.X,
		Y: float64(extent.Y) * spacing.Y,
		Z: float64(extent.Z) * spacing.Z,
	}, true
}

// PhysicalDiagonal is the length in mm of the box diagonal, the widest
// straight-line span a cropped sub-volume has to hold.
func PhysicalDiagonal(mm r3.Vec) float64 {
	return r3.Norm(mm)
}
