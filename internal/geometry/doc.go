// Package geometry provides the small amount of 3D linear algebra the
// fixture pipeline needs: a 4x4 affine transform matrix and a
// push/pop transform stack.
//
// All values are float32, matching the point model. Angles are radians
// throughout; callers working in degrees convert before calling.
package geometry
