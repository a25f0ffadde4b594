// Package roi finds the region of interest of a 16-bit grayscale volume: the
// smallest axis-aligned box holding every voxel brighter than the background
// threshold, optionally padded by a margin and clamped to the volume.
package roi

import (
	"sync"

	"findroi/internal/models"
)

// BackgroundThreshold is the default background level. Voxels whose
// intensity is strictly greater than the threshold are foreground.
const BackgroundThreshold uint16 = 0

// emptyBox is the starting point of every reduction. Min sits one past the
// last valid coordinate and Max at the origin, so any foreground voxel
// replaces both and a volume without foreground keeps Min > Max.
func emptyBox(size models.Coord) models.Box {
	return models.Box{Min: size}
}

// Scan visits every voxel once, z outermost and x innermost, and returns the
// raw bounding box of the voxels whose intensity exceeds threshold.
//
// If there is no such voxel the result is left as initialised: Min equals the
// volume size and Max is (0,0,0). Callers that care can check Box.Valid.
func Scan(vol *models.Volume, threshold uint16) models.Box {
	return scanSlab(vol, threshold, 0, vol.SizeZ)
}

// ScanParallel computes the same box as Scan, splitting the z range into
// contiguous slabs reduced by up to workers goroutines. Min/max reductions
// are order independent so the result does not depend on the split.
func ScanParallel(vol *models.Volume, threshold uint16, workers int) models.Box {
	workers = Workers(vol, workers)
	if workers == 1 {
		return Scan(vol, threshold)
	}

	slabsPerWorker := (vol.SizeZ + uint(workers) - 1) / uint(workers)
	partial := make([]models.Box, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startZ := uint(w) * slabsPerWorker
		endZ := startZ + slabsPerWorker
		if endZ > vol.SizeZ {
			endZ = vol.SizeZ
		}
		if startZ >= endZ {
			partial[w] = emptyBox(vol.Size())
			continue
		}

		wg.Add(1)
		go func(w int, startZ, endZ uint) {
			defer wg.Done()
			partial[w] = scanSlab(vol, threshold, startZ, endZ)
		}(w, startZ, endZ)
	}
	wg.Wait()

	box := emptyBox(vol.Size())
	for _, p := range partial {
		box = merge(box, p)
	}
	return box
}

// Workers returns how many goroutines ScanParallel actually starts for vol:
// at least one and no more than one per z plane.
func Workers(vol *models.Volume, workers int) int {
	if workers < 1 || vol.SizeZ < 2 {
		return 1
	}
	if uint(workers) > vol.SizeZ {
		workers = int(vol.SizeZ)
	}
	// Rounding the slab size up can leave trailing workers without planes.
	perWorker := (vol.SizeZ + uint(workers) - 1) / uint(workers)
	return int((vol.SizeZ + perWorker - 1) / perWorker)
}

// scanSlab reduces the voxels with startZ <= z < endZ.
func scanSlab(vol *models.Volume, threshold uint16, startZ, endZ uint) models.Box {
	box := emptyBox(vol.Size())
	min, max := &box.Min, &box.Max

	p := vol.Index(0, 0, startZ)
	for z := startZ; z < endZ; z++ {
		for y := uint(0); y < vol.SizeY; y++ {
			for x := uint(0); x < vol.SizeX; x, p = x+1, p+1 {
				if vol.Data[p] <= threshold {
					continue
				}
				min.X = minUint(min.X, x)
				min.Y = minUint(min.Y, y)
				min.Z = minUint(min.Z, z)

				max.X = maxUint(max.X, x)
				max.Y = maxUint(max.Y, y)
				max.Z = maxUint(max.Z, z)
			}
		}
	}
	return box
}

func merge(a, b models.Box) models.Box {
	return models.Box{
		Min: models.Coord{
			X: minUint(a.Min.X, b.Min.X),
			Y: minUint(a.Min.Y, b.Min.Y),
			Z: minUint(a.Min.Z, b.Min.Z),
		},
		Max: models.Coord{
			X: maxUint(a.Max.X, b.Max.X),
			Y: maxUint(a.Max.Y, b.Max.Y),
			Z: maxUint(a.Max.Z, b.Max.Z),
		},
	}
}

func minUint(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}

func maxUint(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}
