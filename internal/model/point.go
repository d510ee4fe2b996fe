package model

import (
	"github.com/chewxy/math32"
)

const twoPi = 2 * math32.Pi

// Point is a single light-emitting sample in 3D space.
//
// Absolute coordinates (X, Y, Z) are authoritative; the polar fields
// (R, Rxy, Rxz, Theta, Azimuth, Elevation) are derived and recomputed
// by Set whenever the absolute coordinates change. The normalised
// fields (Xn..Rcn) are only populated by Normalize, relative to
// whichever bounds the owning Model supplies.
//
// Index is the point's position in the structure-wide colour buffer.
// A fresh point carries its position in the owning fixture's local
// buffer; the global value is assigned when the point is promoted into
// the top-level model.
//
// Points are mutable in place; Copy returns an independent point with
// the same index.
type Point struct {
	// Absolute position.
	X, Y, Z float32

	// Derived polar coordinates, maintained by Set.
	R         float32 // distance from origin
	Rxy       float32 // distance from origin in the XY plane
	Rxz       float32 // distance from origin in the XZ plane
	Theta     float32 // angle about the Z axis, [0, 2pi)
	Azimuth   float32 // angle about the Y axis, [0, 2pi)
	Elevation float32 // angle above the XZ plane

	// Normalised coordinates, populated by Normalize.
	Xn, Yn, Zn float32
	Rn         float32 // R relative to the model's maximum radius
	Rc         float32 // distance from the normalisation centre
	Rcn        float32 // Rc relative to the model's maximum, set by the owning Model

	// Index is the position in the global colour buffer.
	Index int
}

// NewPoint returns a point at (x, y, z) with derived fields computed.
// The index is unassigned until the point joins a fixture or model.
func NewPoint(x, y, z float32) *Point {
	p := &Point{Index: -1}
	p.Set(x, y, z)
	return p
}

// Set updates the absolute position and recomputes all derived
// (non-normalised) fields.
func (p *Point) Set(x, y, z float32) {
	p.X, p.Y, p.Z = x, y, z
	p.R = math32.Sqrt(x*x + y*y + z*z)
	p.Rxy = math32.Hypot(x, y)
	p.Rxz = math32.Hypot(x, z)
	p.Theta = wrapAngle(math32.Atan2(y, x))
	p.Azimuth = wrapAngle(math32.Atan2(x, z))
	p.Elevation = math32.Atan2(y, p.Rxz)
}

// SetFrom copies every coordinate field, derived and normalised, from
// src. The index is left untouched; a cloned point keeps its own place
// in the colour buffer.
func (p *Point) SetFrom(src *Point) {
	index := p.Index
	*p = *src
	p.Index = index
}

// Copy returns an independent point with identical fields, including
// the index.
func (p *Point) Copy() *Point {
	cpy := *p
	return &cpy
}

// Normalize computes the normalised coordinates of this point relative
// to the given bounds. rMax is the owning model's maximum radius from
// origin; a zero rMax yields Rn of 0.
//
// Rc is set to the distance from the bounds' centre. Rcn requires a
// second pass over the whole point set to find the maximum, so it is
// filled in afterwards by the owning Model.
func (p *Point) Normalize(b *NormalizationBounds, rMax float32) {
	x, y, z := b.coords(p)
	p.Xn = normCoord(x, b.XMin, b.XRange)
	p.Yn = normCoord(y, b.YMin, b.YRange)
	p.Zn = normCoord(z, b.ZMin, b.ZRange)
	if rMax == 0 {
		p.Rn = 0
	} else {
		p.Rn = p.R / rMax
	}
	dx, dy, dz := x-b.Cx, y-b.Cy, z-b.Cz
	p.Rc = math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// normCoord maps value into [0, 1] within [min, min+rng].
// A degenerate axis (zero range) maps every point to the middle.
func normCoord(value, min, rng float32) float32 {
	if rng == 0 {
		return 0.5
	}
	return (value - min) / rng
}

// wrapAngle maps an atan2 result into [0, 2pi).
func wrapAngle(theta float32) float32 {
	if theta < 0 {
		return theta + twoPi
	}
	return theta
}
