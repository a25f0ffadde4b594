package volume

import (
	"fmt"
	"math"
	"math/bits"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"findroi/internal/models"
)

// RawHeader describes a headerless uint16 volume stored next to it.
//
//	size: {x: 256, y: 256, z: 120}
//	data: brain.raw
//	byteOrder: big
//	offset: 0
//	voxelSize: {x: 0.5, y: 0.5, z: 1.0}
type RawHeader struct {
	Size struct {
		X uint `yaml:"x"`
		Y uint `yaml:"y"`
		Z uint `yaml:"z"`
	} `yaml:"size"`

	// Data is the voxel file, relative to the header's directory.
	Data string `yaml:"data"`

	ByteOrder string `yaml:"byteOrder,omitempty"`

	// Offset is the number of bytes to skip before the first voxel.
	Offset int64 `yaml:"offset,omitempty"`

	VoxelSize struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
		Z float64 `yaml:"z"`
	} `yaml:"voxelSize,omitempty"`
}

// ReadRawHeader parses a raw volume header.
func ReadRawHeader(path string) (*RawHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var h RawHeader
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if h.Data == "" {
		return nil, fmt.Errorf("%w: missing data file", ErrInvalidHeader)
	}
	if h.Offset < 0 {
		return nil, fmt.Errorf("%w: negative offset", ErrInvalidHeader)
	}
	return &h, nil
}

func loadRaw(path string, opts Options) (*models.Volume, error) {
	h, err := ReadRawHeader(path)
	if err != nil {
		return nil, err
	}

	order := opts.byteOrder()
	if h.ByteOrder != "" {
		if order, err = ParseByteOrder(h.ByteOrder); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
	}

	dataPath := h.Data
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, err
	}

	count, ok := voxelCount(h.Size.X, h.Size.Y, h.Size.Z)
	if !ok || count > (math.MaxInt64-uint64(h.Offset))/2 {
		return nil, fmt.Errorf("%w: size %dx%dx%d overflows", ErrInvalidHeader, h.Size.X, h.Size.Y, h.Size.Z)
	}
	need := uint64(h.Offset) + 2*count
	if uint64(len(raw)) < need {
		return nil, fmt.Errorf("%w: %s has %d bytes, need %d", ErrShortData, h.Data, len(raw), need)
	}

	vol := models.NewVolume(h.Size.X, h.Size.Y, h.Size.Z)

	buf := raw[h.Offset:]
	for i := range vol.Data {
		vol.Data[i] = order.Uint16(buf[2*i:])
	}
	vol.Spacing = models.VoxelSize{X: h.VoxelSize.X, Y: h.VoxelSize.Y, Z: h.VoxelSize.Z}
	return vol, nil
}

// voxelCount returns x*y*z and false if the product does not fit in 64 bits.
func voxelCount(x, y, z uint) (uint64, bool) {
	hi, xy := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 {
		return 0, false
	}
	hi, xyz := bits.Mul64(xy, uint64(z))
	return xyz, hi == 0
}
