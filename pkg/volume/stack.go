package volume

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"findroi/internal/models"
)

var sliceExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// loadStack reads every slice image in dir, ordered by the number in the
// file name, as consecutive z planes.
func loadStack(dir string, _ Options) (*models.Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sliceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrEmptyStack
	}

	sort.SliceStable(names, func(i, j int) bool {
		ni, nj := extractNumber(names[i]), extractNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})

	var vol *models.Volume
	for z, name := range names {
		img, err := decodeImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("slice %s: %w", name, err)
		}

		b := img.Bounds()
		if vol == nil {
			vol = models.NewVolume(uint(b.Dx()), uint(b.Dy()), uint(len(names)))
		} else if uint(b.Dx()) != vol.SizeX || uint(b.Dy()) != vol.SizeY {
			return nil, fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
				ErrDimensionMismatch, name, b.Dx(), b.Dy(), vol.SizeX, vol.SizeY)
		}
		copyPlane(vol, img, uint(z))
	}
	return vol, nil
}

// loadImageFile reads a single 2D image as a volume one plane deep.
func loadImageFile(path string, _ Options) (*models.Volume, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	vol := models.NewVolume(uint(b.Dx()), uint(b.Dy()), 1)
	copyPlane(vol, img, 0)
	return vol, nil
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// copyPlane stores img as plane z. 8-bit sources are widened the way
// color.Gray16Model does it (v*257).
func copyPlane(vol *models.Volume, img image.Image, z uint) {
	b := img.Bounds()
	p := vol.Index(0, 0, z)

	if g, ok := img.(*image.Gray16); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x, p = x+1, p+1 {
				vol.Data[p] = g.Gray16At(x, y).Y
			}
		}
		return
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x, p = x+1, p+1 {
			vol.Data[p] = color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
		}
	}
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err == nil {
			return num
		}
	}
	return 0
}
