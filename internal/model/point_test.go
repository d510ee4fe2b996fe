package model

import (
	"testing"

	"github.com/chewxy/math32"
)

const coordTolerance = 1e-5

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) <= coordTolerance
}

func TestNewPoint_DerivedFields(t *testing.T) {
	tests := []struct {
		name          string
		x, y, z       float32
		wantR         float32
		wantRxy       float32
		wantRxz       float32
		wantTheta     float32
		wantAzimuth   float32
		wantElevation float32
	}{
		{
			name: "origin",
			x:    0, y: 0, z: 0,
			wantR: 0, wantRxy: 0, wantRxz: 0,
			wantTheta: 0, wantAzimuth: 0, wantElevation: 0,
		},
		{
			name: "unit x",
			x:    1, y: 0, z: 0,
			wantR: 1, wantRxy: 1, wantRxz: 1,
			wantTheta: 0, wantAzimuth: math32.Pi / 2, wantElevation: 0,
		},
		{
			name: "unit y",
			x:    0, y: 1, z: 0,
			wantR: 1, wantRxy: 1, wantRxz: 0,
			wantTheta: math32.Pi / 2, wantAzimuth: 0, wantElevation: math32.Pi / 2,
		},
		{
			name: "unit z",
			x:    0, y: 0, z: 1,
			wantR: 1, wantRxy: 0, wantRxz: 1,
			wantTheta: 0, wantAzimuth: 0, wantElevation: 0,
		},
		{
			name: "negative quadrant wraps theta",
			x:    1, y: -1, z: 0,
			wantR: math32.Sqrt2, wantRxy: math32.Sqrt2, wantRxz: 1,
			wantTheta:   7 * math32.Pi / 4,
			wantAzimuth: math32.Pi / 2, wantElevation: -math32.Pi / 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPoint(tt.x, tt.y, tt.z)

			if !approxEqual(p.R, tt.wantR) {
				t.Errorf("R = %v, want %v", p.R, tt.wantR)
			}
			if !approxEqual(p.Rxy, tt.wantRxy) {
				t.Errorf("Rxy = %v, want %v", p.Rxy, tt.wantRxy)
			}
			if !approxEqual(p.Rxz, tt.wantRxz) {
				t.Errorf("Rxz = %v, want %v", p.Rxz, tt.wantRxz)
			}
			if !approxEqual(p.Theta, tt.wantTheta) {
				t.Errorf("Theta = %v, want %v", p.Theta, tt.wantTheta)
			}
			if !approxEqual(p.Azimuth, tt.wantAzimuth) {
				t.Errorf("Azimuth = %v, want %v", p.Azimuth, tt.wantAzimuth)
			}
			if !approxEqual(p.Elevation, tt.wantElevation) {
				t.Errorf("Elevation = %v, want %v", p.Elevation, tt.wantElevation)
			}
		})
	}
}

func TestNewPoint_UnassignedIndex(t *testing.T) {
	p := NewPoint(1, 2, 3)
	if p.Index != -1 {
		t.Errorf("Index = %d, want -1", p.Index)
	}
}

func TestPoint_AnglesAlwaysNonNegative(t *testing.T) {
	coords := []struct{ x, y, z float32 }{
		{-1, -1, -1},
		{-2, 3, 1},
		{1, -5, -2},
		{0, -1, 0},
	}
	for _, c := range coords {
		p := NewPoint(c.x, c.y, c.z)
		if p.Theta < 0 || p.Theta >= twoPi {
			t.Errorf("Theta(%v,%v,%v) = %v, want [0, 2pi)", c.x, c.y, c.z, p.Theta)
		}
		if p.Azimuth < 0 || p.Azimuth >= twoPi {
			t.Errorf("Azimuth(%v,%v,%v) = %v, want [0, 2pi)", c.x, c.y, c.z, p.Azimuth)
		}
	}
}

func TestPoint_SetFromPreservesIndex(t *testing.T) {
	src := NewPoint(4, 5, 6)
	src.Index = 10

	dst := NewPoint(0, 0, 0)
	dst.Index = 3
	dst.SetFrom(src)

	if dst.Index != 3 {
		t.Errorf("Index = %d, want 3", dst.Index)
	}
	if dst.X != 4 || dst.Y != 5 || dst.Z != 6 {
		t.Errorf("coords = (%v,%v,%v), want (4,5,6)", dst.X, dst.Y, dst.Z)
	}
	if !approxEqual(dst.R, src.R) {
		t.Errorf("R = %v, want %v", dst.R, src.R)
	}
}

func TestPoint_CopyIsIndependent(t *testing.T) {
	p := NewPoint(1, 2, 3)
	p.Index = 7

	c := p.Copy()
	if c.Index != 7 {
		t.Errorf("copy Index = %d, want 7", c.Index)
	}

	c.Set(9, 9, 9)
	if p.X != 1 {
		t.Error("mutating the copy changed the original")
	}
}

func TestPoint_Normalize(t *testing.T) {
	points := []*Point{
		NewPoint(0, 0, 0),
		NewPoint(10, 0, 0),
		NewPoint(10, 20, 0),
	}
	b := ComputeNormalizationBounds(points)

	p := points[1]
	p.Normalize(b, 30)

	if !approxEqual(p.Xn, 1) {
		t.Errorf("Xn = %v, want 1", p.Xn)
	}
	if !approxEqual(p.Yn, 0) {
		t.Errorf("Yn = %v, want 0", p.Yn)
	}
	// Degenerate Z axis maps to the middle.
	if !approxEqual(p.Zn, 0.5) {
		t.Errorf("Zn = %v, want 0.5", p.Zn)
	}
	if !approxEqual(p.Rn, 10.0/30.0) {
		t.Errorf("Rn = %v, want %v", p.Rn, 10.0/30.0)
	}
	// Centre is (5, 10, 0); distance from (10, 0, 0) is sqrt(25+100).
	wantRc := math32.Sqrt(125)
	if !approxEqual(p.Rc, wantRc) {
		t.Errorf("Rc = %v, want %v", p.Rc, wantRc)
	}
}

func TestPoint_NormalizeZeroRMax(t *testing.T) {
	p := NewPoint(0, 0, 0)
	b := ComputeNormalizationBounds([]*Point{p})
	p.Normalize(b, 0)

	if p.Rn != 0 {
		t.Errorf("Rn = %v, want 0", p.Rn)
	}
	if p.Xn != 0.5 || p.Yn != 0.5 || p.Zn != 0.5 {
		t.Errorf("degenerate axes = (%v,%v,%v), want (0.5,0.5,0.5)", p.Xn, p.Yn, p.Zn)
	}
}
