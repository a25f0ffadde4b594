package models

import "testing"

func TestCoordString(t *testing.T) {
	c := Coord{X: 1, Y: 22, Z: 333}
	if got := c.String(); got != "(1,22,333)" {
		t.Errorf("Expected (1,22,333), got %s", got)
	}
}

func TestBoxValidAndExtent(t *testing.T) {
	cases := []struct {
		name   string
		box    Box
		valid  bool
		extent Coord
	}{
		{"single voxel", Box{Min: Coord{3, 4, 5}, Max: Coord{3, 4, 5}}, true, Coord{1, 1, 1}},
		{"cube", Box{Min: Coord{0, 0, 0}, Max: Coord{9, 9, 9}}, true, Coord{10, 10, 10}},
		{"flat", Box{Min: Coord{2, 0, 7}, Max: Coord{5, 0, 7}}, true, Coord{4, 1, 1}},
	}
	for _, c := range cases {
		if got := c.box.Valid(); got != c.valid {
			t.Errorf("%s: Expected Valid()=%v, got %v", c.name, c.valid, got)
		}
		if got := c.box.Extent(); got != c.extent {
			t.Errorf("%s: Expected extent %v, got %v", c.name, c.extent, got)
		}
	}
}

func TestBoxInvalid(t *testing.T) {
	b := Box{Min: Coord{10, 10, 10}, Max: Coord{0, 0, 0}}
	if b.Valid() {
		t.Error("Expected box with min > max to be invalid")
	}

	// Unsigned wrap-around: 0 - 10 + 1
	want := ^uint(0) - 8
	if got := b.Extent().X; got != want {
		t.Errorf("Expected wrapped extent %d, got %d", want, got)
	}
}

func TestVolumeIndexing(t *testing.T) {
	v := NewVolume(4, 3, 2)
	if len(v.Data) != 24 {
		t.Fatalf("Expected 24 voxels, got %d", len(v.Data))
	}
	if v.VoxelCount() != 24 {
		t.Errorf("Expected VoxelCount 24, got %d", v.VoxelCount())
	}

	v.Set(3, 2, 1, 500)
	if got := v.Data[len(v.Data)-1]; got != 500 {
		t.Errorf("Expected last voxel to be 500, got %d", got)
	}
	if got := v.At(3, 2, 1); got != 500 {
		t.Errorf("Expected At(3,2,1)=500, got %d", got)
	}
	if got := v.Index(1, 1, 1); got != 12+4+1 {
		t.Errorf("Expected index 17, got %d", got)
	}
}

func TestVoxelSizeKnown(t *testing.T) {
	if (VoxelSize{}).Known() {
		t.Error("Expected zero spacing to be unknown")
	}
	if !(VoxelSize{X: 0.5, Y: 0.5, Z: 1.5}).Known() {
		t.Error("Expected positive spacing to be known")
	}
}
