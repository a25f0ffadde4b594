// Package volume decodes 16-bit grayscale volumes from disk.
//
// A path can name a directory of numbered 2D slices (PNG or JPEG), a single
// 2D image, a YAML header describing a raw uint16 volume, or, when built
// with the gocv tag, a multi-page TIFF. Every decoder produces voxels in
// z, y, x order with x varying fastest.
package volume

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"findroi/internal/models"
)

// Options tune decoding. The zero value is usable.
type Options struct {
	// ByteOrder is used for raw volumes whose header does not name one.
	// Nil means little endian.
	ByteOrder binary.ByteOrder

	// Spacing is attached to volumes whose source carries no voxel size.
	Spacing models.VoxelSize
}

type decodeFunc func(path string, opts Options) (*models.Volume, error)

var decoders = map[string]decodeFunc{}

func register(fn decodeFunc, exts ...string) {
	for _, ext := range exts {
		decoders[ext] = fn
	}
}

func init() {
	register(loadImageFile, ".png", ".jpg", ".jpeg")
	register(loadRaw, ".yaml", ".yml")
}

// Formats lists the file extensions this build can decode.
func Formats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load decodes the volume at path. Any failure is returned as a *LoadError.
func Load(path string, opts Options) (*models.Volume, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Op: "load", Path: path, Err: err}
	}

	var vol *models.Volume
	if info.IsDir() {
		vol, err = loadStack(path, opts)
	} else {
		ext := strings.ToLower(filepath.Ext(path))
		decode, ok := decoders[ext]
		if !ok {
			err = fmt.Errorf("%w %q (known: %s)", ErrUnsupportedFormat, ext, strings.Join(Formats(), ", "))
		} else {
			vol, err = decode(path, opts)
		}
	}
	if err != nil {
		return nil, &LoadError{Op: "load", Path: path, Err: err}
	}

	if !vol.Spacing.Known() {
		vol.Spacing = opts.Spacing
	}
	return vol, nil
}

func (o Options) byteOrder() binary.ByteOrder {
	if o.ByteOrder == nil {
		return binary.LittleEndian
	}
	return o.ByteOrder
}

// ParseByteOrder maps "little"/"big" (case-insensitive, empty = little) to a
// binary.ByteOrder.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(name) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}
