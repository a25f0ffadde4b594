//go:build gocv

package volume

import (
	"fmt"

	"gocv.io/x/gocv"

	"findroi/internal/models"
)

func init() {
	register(loadTIFF, ".tif", ".tiff")
}

// loadTIFF reads every page of a (possibly multi-page) TIFF as one z plane.
// IMReadAnyDepth keeps 16-bit samples and converts colour pages to gray.
func loadTIFF(path string, _ Options) (*models.Volume, error) {
	pages := gocv.IMReadMulti(path, gocv.IMReadAnyDepth)
	defer func() {
		for i := range pages {
			pages[i].Close()
		}
	}()
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no readable pages", ErrEmptyStack)
	}

	rows, cols := pages[0].Rows(), pages[0].Cols()
	vol := models.NewVolume(uint(cols), uint(rows), uint(len(pages)))

	for z, page := range pages {
		if page.Rows() != rows || page.Cols() != cols {
			return nil, fmt.Errorf("%w: page %d is %dx%d, expected %dx%d",
				ErrDimensionMismatch, z, page.Cols(), page.Rows(), cols, rows)
		}

		p := vol.Index(0, 0, uint(z))
		switch page.Type() {
		case gocv.MatTypeCV16UC1:
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x, p = x+1, p+1 {
					vol.Data[p] = page.GetUShortAt(y, x)
				}
			}
		case gocv.MatTypeCV8UC1:
			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x, p = x+1, p+1 {
					vol.Data[p] = uint16(page.GetUCharAt(y, x)) * 257
				}
			}
		default:
			return nil, fmt.Errorf("%w: page %d has mat type %v, expected 8 or 16 bit gray",
				ErrUnsupportedFormat, z, page.Type())
		}
	}
	return vol, nil
}
