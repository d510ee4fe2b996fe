package model

import (
	"github.com/nerrad567/lumen-core/internal/geometry"
)

// NormalizationBounds is an axis-aligned bounding box used to compute
// normalised coordinates for a point set relative to an arbitrary
// reference frame, independent of the Model that owns the points.
//
// An optional orientation-correction matrix may be supplied; when
// present, points are passed through it before being measured, so the
// box is axis-aligned in the corrected frame rather than world space.
type NormalizationBounds struct {
	XMin, XMax, XRange float32
	YMin, YMax, YRange float32
	ZMin, ZMax, ZRange float32

	// Cx, Cy, Cz is the geometric centre of the box.
	Cx, Cy, Cz float32

	orient *geometry.Mat4
}

// ComputeNormalizationBounds measures the bounding box of the given
// points in world space. An empty point set yields zero bounds.
func ComputeNormalizationBounds(points []*Point) *NormalizationBounds {
	return computeBounds(points, nil)
}

// ComputeOrientedNormalizationBounds measures the bounding box of the
// given points after applying the orientation-correction matrix. The
// same correction is applied when points are later normalised against
// these bounds.
func ComputeOrientedNormalizationBounds(points []*Point, orient geometry.Mat4) *NormalizationBounds {
	return computeBounds(points, &orient)
}

func computeBounds(points []*Point, orient *geometry.Mat4) *NormalizationBounds {
	b := &NormalizationBounds{orient: orient}
	if len(points) == 0 {
		return b
	}

	x, y, z := b.coords(points[0])
	b.XMin, b.XMax = x, x
	b.YMin, b.YMax = y, y
	b.ZMin, b.ZMax = z, z

	for _, p := range points[1:] {
		x, y, z = b.coords(p)
		b.XMin, b.XMax = minMax(b.XMin, b.XMax, x)
		b.YMin, b.YMax = minMax(b.YMin, b.YMax, y)
		b.ZMin, b.ZMax = minMax(b.ZMin, b.ZMax, z)
	}

	b.XRange = b.XMax - b.XMin
	b.YRange = b.YMax - b.YMin
	b.ZRange = b.ZMax - b.ZMin
	b.Cx = b.XMin + b.XRange/2
	b.Cy = b.YMin + b.YRange/2
	b.Cz = b.ZMin + b.ZRange/2
	return b
}

// coords returns the point's coordinates in the bounds' reference
// frame, applying the orientation correction when one is set.
func (b *NormalizationBounds) coords(p *Point) (float32, float32, float32) {
	if b.orient == nil {
		return p.X, p.Y, p.Z
	}
	return b.orient.Apply(p.X, p.Y, p.Z)
}

func minMax(min, max, v float32) (float32, float32) {
	if v < min {
		min = v
	}
	if v > max {
		max = v
	}
	return min, max
}
