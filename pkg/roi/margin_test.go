package roi

import (
	"testing"

	"findroi/internal/models"
)

func TestExpandSaturatesAtZero(t *testing.T) {
	size := models.Coord{X: 500, Y: 500, Z: 500}
	box := models.Box{
		Min: models.Coord{X: 0, Y: 49, Z: 50},
		Max: models.Coord{X: 100, Y: 100, Z: 100},
	}

	got := Expand(box, size, DefaultMargin, ClampCrossAxis)
	want := models.Coord{X: 0, Y: 0, Z: 0}
	if got.Min != want {
		t.Errorf("Expected min %v, got %v", want, got.Min)
	}

	box.Min = models.Coord{X: 51, Y: 200, Z: 3}
	got = Expand(box, size, DefaultMargin, ClampCrossAxis)
	want = models.Coord{X: 1, Y: 150, Z: 0}
	if got.Min != want {
		t.Errorf("Expected min %v, got %v", want, got.Min)
	}
}

func TestExpandCrossAxisClamp(t *testing.T) {
	size := models.Coord{X: 200, Y: 100, Z: 60}
	box := models.Box{
		Min: models.Coord{X: 10, Y: 10, Z: 10},
		Max: models.Coord{X: 150, Y: 80, Z: 50},
	}

	got := Expand(box, size, DefaultMargin, ClampCrossAxis)
	// max.x is bounded by sizeZ-1 and max.z by sizeX-1
	want := models.Coord{X: 59, Y: 99, Z: 100}
	if got.Max != want {
		t.Errorf("Expected cross-axis max %v, got %v", want, got.Max)
	}

	got = Expand(box, size, DefaultMargin, ClampOwnAxis)
	want = models.Coord{X: 199, Y: 99, Z: 59}
	if got.Max != want {
		t.Errorf("Expected own-axis max %v, got %v", want, got.Max)
	}
}

func TestExpandNeverExceedsBound(t *testing.T) {
	sizes := []models.Coord{
		{X: 1, Y: 1, Z: 1},
		{X: 40, Y: 70, Z: 300},
		{X: 300, Y: 20, Z: 55},
	}
	for _, size := range sizes {
		for _, mode := range []ClampMode{ClampCrossAxis, ClampOwnAxis} {
			bound := clampBounds(size, mode)
			for _, margin := range []uint{0, 1, 50, 1000} {
				box := models.Box{Max: models.Coord{X: size.X - 1, Y: size.Y - 1, Z: size.Z - 1}}
				got := Expand(box, size, margin, mode)
				if got.Max.X > bound.X-1 || got.Max.Y > bound.Y-1 || got.Max.Z > bound.Z-1 {
					t.Errorf("size %v mode %v margin %d: max %v exceeds bound %v",
						size, mode, margin, got.Max, bound)
				}
			}
		}
	}
}

func TestExpandZeroSizedAxis(t *testing.T) {
	size := models.Coord{X: 0, Y: 0, Z: 0}
	got := Expand(models.Box{Min: size}, size, DefaultMargin, ClampOwnAxis)
	if got.Max != (models.Coord{}) {
		t.Errorf("Expected max (0,0,0) for a zero-sized volume, got %v", got.Max)
	}
}

func TestEndToEndCube(t *testing.T) {
	vol := models.NewVolume(100, 100, 100)
	fillBox(vol, models.Coord{X: 20, Y: 30, Z: 10}, models.Coord{X: 80, Y: 70, Z: 90}, 1200)

	raw := Scan(vol, BackgroundThreshold)
	wantRaw := models.Box{
		Min: models.Coord{X: 20, Y: 30, Z: 10},
		Max: models.Coord{X: 80, Y: 70, Z: 90},
	}
	if raw != wantRaw {
		t.Fatalf("Expected raw %v -> %v, got %v -> %v", wantRaw.Min, wantRaw.Max, raw.Min, raw.Max)
	}

	for _, mode := range []ClampMode{ClampCrossAxis, ClampOwnAxis} {
		final := Expand(raw, vol.Size(), DefaultMargin, mode)
		if final.Min != (models.Coord{}) {
			t.Errorf("%v: Expected min (0,0,0), got %v", mode, final.Min)
		}
		if final.Max != (models.Coord{X: 99, Y: 99, Z: 99}) {
			t.Errorf("%v: Expected max (99,99,99), got %v", mode, final.Max)
		}
		if ext := final.Extent(); ext != (models.Coord{X: 100, Y: 100, Z: 100}) {
			t.Errorf("%v: Expected extent (100,100,100), got %v", mode, ext)
		}
	}
}

func TestExtentPositiveWithForeground(t *testing.T) {
	vol := models.NewVolume(64, 32, 16)
	vol.Set(60, 2, 15, 9)
	vol.Set(3, 30, 0, 9)

	raw := Scan(vol, BackgroundThreshold)
	final := Expand(raw, vol.Size(), 5, ClampOwnAxis)
	for _, b := range []models.Box{raw, final} {
		ext := b.Extent()
		if ext.X == 0 || ext.Y == 0 || ext.Z == 0 {
			t.Errorf("Expected positive extent, got %v", ext)
		}
		if ext.X != b.Max.X-b.Min.X+1 || ext.Y != b.Max.Y-b.Min.Y+1 || ext.Z != b.Max.Z-b.Min.Z+1 {
			t.Errorf("Extent %v inconsistent with box %v -> %v", ext, b.Min, b.Max)
		}
	}
}

func TestClampModeString(t *testing.T) {
	if ClampCrossAxis.String() != "cross-axis" || ClampOwnAxis.String() != "own-axis" {
		t.Errorf("Unexpected clamp mode names: %s, %s", ClampCrossAxis, ClampOwnAxis)
	}
}
