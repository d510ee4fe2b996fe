package geometry

import (
	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 row-major affine transform matrix.
//
// Points are treated as column vectors with an implicit w=1, so the
// transformed point is M * p. Multiplying A.Mul(B) yields a matrix that
// applies B first, then A.
type Mat4 struct {
	M [4][4]float32
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{M: [4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translation returns a matrix translating by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	m := Identity()
	m.M[0][3] = x
	m.M[1][3] = y
	m.M[2][3] = z
	return m
}

// RotationX returns a matrix rotating by theta radians about the X axis.
func RotationX(theta float32) Mat4 {
	sin, cos := math32.Sin(theta), math32.Cos(theta)
	m := Identity()
	m.M[1][1] = cos
	m.M[1][2] = -sin
	m.M[2][1] = sin
	m.M[2][2] = cos
	return m
}

// RotationY returns a matrix rotating by theta radians about the Y axis.
func RotationY(theta float32) Mat4 {
	sin, cos := math32.Sin(theta), math32.Cos(theta)
	m := Identity()
	m.M[0][0] = cos
	m.M[0][2] = sin
	m.M[2][0] = -sin
	m.M[2][2] = cos
	return m
}

// RotationZ returns a matrix rotating by theta radians about the Z axis.
func RotationZ(theta float32) Mat4 {
	sin, cos := math32.Sin(theta), math32.Cos(theta)
	m := Identity()
	m.M[0][0] = cos
	m.M[0][1] = -sin
	m.M[1][0] = sin
	m.M[1][1] = cos
	return m
}

// Mul returns the matrix product a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a.M[row][k] * b.M[k][col]
			}
			r.M[row][col] = sum
		}
	}
	return r
}

// Apply transforms the point (x, y, z) by this matrix.
func (a Mat4) Apply(x, y, z float32) (float32, float32, float32) {
	tx := a.M[0][0]*x + a.M[0][1]*y + a.M[0][2]*z + a.M[0][3]
	ty := a.M[1][0]*x + a.M[1][1]*y + a.M[1][2]*z + a.M[1][3]
	tz := a.M[2][0]*x + a.M[2][1]*y + a.M[2][2]*z + a.M[2][3]
	return tx, ty, tz
}
