package models

import "fmt"

// Coord is an unsigned coordinate triple. It is used both as a point inside
// a volume and as a size (the extent of a volume or of a box).
type Coord struct {
	X, Y, Z uint
}

// String renders the triple the way reports print it: "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Product returns X*Y*Z.
func (c Coord) Product() uint64 {
	return uint64(c.X) * uint64(c.Y) * uint64(c.Z)
}

// Box is an axis-aligned box with inclusive corners.
type Box struct {
	Min Coord
	Max Coord
}

// Valid reports whether Min <= Max on every axis. A scan that found no
// foreground voxel produces a box that is not valid.
func (b Box) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Extent returns Max - Min + 1 per axis. The arithmetic is unsigned and wraps
// for boxes that are not valid.
func (b Box) Extent() Coord {
	return Coord{
		X: b.Max.X - b.Min.X + 1,
		Y: b.Max.Y - b.Min.Y + 1,
		Z: b.Max.Z - b.Min.Z + 1,
	}
}

// VoxelSize is the physical size of one voxel in mm. A zero value means the
// spacing is unknown.
type VoxelSize struct {
	X, Y, Z float64
}

// Known reports whether all three spacings are positive.
func (s VoxelSize) Known() bool {
	return s.X > 0 && s.Y > 0 && s.Z > 0
}

// Volume is a single-channel 16-bit grayscale 3D image.
type Volume struct {
	// Data holds SizeX*SizeY*SizeZ voxels with z outermost and x innermost,
	// i.e. the voxel (x, y, z) lives at z*SizeX*SizeY + y*SizeX + x.
	Data []uint16

	SizeX, SizeY, SizeZ uint

	// Spacing is optional and only used for physical-size reporting.
	Spacing VoxelSize
}

// NewVolume allocates a zero-filled volume.
func NewVolume(sizeX, sizeY, sizeZ uint) *Volume {
	return &Volume{
		Data:  make([]uint16, uint64(sizeX)*uint64(sizeY)*uint64(sizeZ)),
		SizeX: sizeX,
		SizeY: sizeY,
		SizeZ: sizeZ,
	}
}

// Size returns the extents of the volume.
func (v *Volume) Size() Coord {
	return Coord{X: v.SizeX, Y: v.SizeY, Z: v.SizeZ}
}

// VoxelCount returns the total number of voxels.
func (v *Volume) VoxelCount() uint64 {
	return v.Size().Product()
}

// Index returns the linear offset of (x, y, z) in Data.
func (v *Volume) Index(x, y, z uint) int {
	return int(z)*int(v.SizeX)*int(v.SizeY) + int(y)*int(v.SizeX) + int(x)
}

// At returns the intensity at (x, y, z).
func (v *Volume) At(x, y, z uint) uint16 {
	return v.Data[v.Index(x, y, z)]
}

// Set stores an intensity at (x, y, z).
func (v *Volume) Set(x, y, z uint, value uint16) {
	v.Data[v.Index(x, y, z)] = value
}
