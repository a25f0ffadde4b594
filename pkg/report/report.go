// Package report renders a region-of-interest result either as a few lines
// of prose for people or as a single line of six integers for scripts.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"findroi/internal/models"
	"findroi/pkg/roi"
)

// Mode selects the report shape.
type Mode int

const (
	Human Mode = iota
	Machine
)

// Result is everything a report needs.
type Result struct {
	// Raw is the box found by the scan, before margin and clamping.
	Raw models.Box

	// Final is the expanded and clamped box.
	Final models.Box

	// Margin is the padding that turned Raw into Final.
	Margin uint

	// VolumeSize and Spacing describe the scanned volume.
	VolumeSize models.Coord
	Spacing    models.VoxelSize

	// Stats is optional and only printed in human mode.
	Stats *roi.IntensityStats
}

// Totals are the size figures of the human report.
type Totals struct {
	Extent           models.Coord
	ROIVoxels        uint64
	TotalVoxels      uint64
	ReductionPercent uint64
	ShrinkFactor     float32
}

// ComputeTotals derives the size figures from the final box.
func ComputeTotals(res Result) Totals {
	t := Totals{
		Extent:      res.Final.Extent(),
		TotalVoxels: res.VolumeSize.Product(),
	}
	t.ROIVoxels = t.Extent.Product()
	if t.TotalVoxels > 0 {
		t.ReductionPercent = 100 * t.ROIVoxels / t.TotalVoxels
	}
	t.ShrinkFactor = float32(t.TotalVoxels) / float32(t.ROIVoxels)
	return t
}

// Write renders res in the given mode.
func Write(w io.Writer, res Result, mode Mode) error {
	if mode == Machine {
		return WriteMachine(w, res)
	}
	return WriteHuman(w, res)
}

// WriteHuman prints the raw box, the final box and how much smaller the
// final box is than the whole volume.
func WriteHuman(w io.Writer, res Result) error {
	t := ComputeTotals(res)

	var b strings.Builder
	fmt.Fprintf(&b, "Discovered ROI: %v -> %v,\n", res.Raw.Min, res.Raw.Max)
	fmt.Fprintf(&b, "expanded by %d px margin to: %v -> %v,\n", res.Margin, res.Final.Min, res.Final.Max)
	fmt.Fprintf(&b, "which is %d pixels from %d pixels,\n", t.ROIVoxels, t.TotalVoxels)
	fmt.Fprintf(&b, "a reduction to %d%%, that is, %s times smaller\n",
		t.ReductionPercent, strconv.FormatFloat(float64(t.ShrinkFactor), 'g', 6, 32))

	if mm, ok := roi.PhysicalExtent(t.Extent, res.Spacing); ok {
		fmt.Fprintf(&b, "ROI physical size: %.2f x %.2f x %.2f mm, diagonal %.2f mm\n",
			mm.X, mm.Y, mm.Z, roi.PhysicalDiagonal(mm))
	}
	if s := res.Stats; s != nil {
		if s.Count == 0 {
			fmt.Fprintf(&b, "Foreground intensity: no foreground voxels\n")
		} else {
			fmt.Fprintf(&b, "Foreground intensity: %d voxels, mean %.2f, stddev %.2f, range [%.0f, %.0f]\n",
				s.Count, s.Mean, s.StdDev, s.Min, s.Max)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMachine prints "minX minY minZ extentX extentY extentZ" for the
// final box on one line.
func WriteMachine(w io.Writer, res Result) error {
	_, err := io.WriteString(w, FormatMachine(res.Final)+"\n")
	return err
}

// FormatMachine returns the machine line for box without a trailing newline.
func FormatMachine(box models.Box) string {
	ext := box.Extent()
	return fmt.Sprintf("%d %d %d %d %d %d",
		box.Min.X, box.Min.Y, box.Min.Z, ext.X, ext.Y, ext.Z)
}

// ErrMalformedLine is returned by ParseMachine for anything that is not six
// unsigned integers.
var ErrMalformedLine = errors.New("malformed machine report")

// ParseMachine reads a line produced by WriteMachine back into the lower
// corner and the extent of the box.
func ParseMachine(line string) (min, extent models.Coord, err error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return min, extent, fmt.Errorf("%w: expected 6 fields, got %d", ErrMalformedLine, len(fields))
	}

	values := make([]uint, 6)
	for i, f := range fields {
		v, perr := strconv.ParseUint(f, 10, strconv.IntSize)
		if perr != nil {
			return min, extent, fmt.Errorf("%w: field %d: %v", ErrMalformedLine, i+1, perr)
		}
		values[i] = uint(v)
	}

	min = models.Coord{X: values[0], Y: values[1], Z: values[2]}
	extent = models.Coord{X: values[3], Y: values[4], Z: values[5]}
	return min, extent, nil
}
