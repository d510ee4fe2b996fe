package model

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/nerrad567/lumen-core/internal/geometry"
)

func TestComputeNormalizationBounds(t *testing.T) {
	points := []*Point{
		NewPoint(-1, 0, 2),
		NewPoint(3, 4, 2),
		NewPoint(1, -2, 2),
	}
	b := ComputeNormalizationBounds(points)

	if b.XMin != -1 || b.XMax != 3 || b.XRange != 4 {
		t.Errorf("X = [%v, %v] range %v, want [-1, 3] range 4", b.XMin, b.XMax, b.XRange)
	}
	if b.YMin != -2 || b.YMax != 4 {
		t.Errorf("Y = [%v, %v], want [-2, 4]", b.YMin, b.YMax)
	}
	if b.ZRange != 0 {
		t.Errorf("ZRange = %v, want 0 for a planar set", b.ZRange)
	}
	if b.Cx != 1 || b.Cy != 1 || b.Cz != 2 {
		t.Errorf("centre = (%v, %v, %v), want (1, 1, 2)", b.Cx, b.Cy, b.Cz)
	}
}

func TestComputeNormalizationBounds_Empty(t *testing.T) {
	b := ComputeNormalizationBounds(nil)
	if b.XRange != 0 || b.YRange != 0 || b.ZRange != 0 {
		t.Errorf("empty bounds have non-zero ranges: %v %v %v", b.XRange, b.YRange, b.ZRange)
	}
}

func TestComputeOrientedNormalizationBounds(t *testing.T) {
	// A diagonal strip in the XY plane; rotating the frame -45 degrees
	// about Z lays it along the corrected X axis.
	points := []*Point{
		NewPoint(0, 0, 0),
		NewPoint(1, 1, 0),
		NewPoint(2, 2, 0),
	}
	orient := geometry.RotationZ(-math32.Pi / 4)
	b := ComputeOrientedNormalizationBounds(points, orient)

	wantX := 2 * math32.Sqrt(2)
	if !approxEqual(b.XRange, wantX) {
		t.Errorf("XRange = %v, want %v", b.XRange, wantX)
	}
	if !approxEqual(b.YRange, 0) {
		t.Errorf("YRange = %v, want 0 in the corrected frame", b.YRange)
	}

	// Normalising against oriented bounds applies the same correction.
	points[1].Normalize(b, 1)
	if !approxEqual(points[1].Xn, 0.5) {
		t.Errorf("Xn = %v, want 0.5", points[1].Xn)
	}
}
