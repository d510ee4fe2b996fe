package geometry

// Transform is a matrix stack used to position fixture points.
//
// Operations multiply onto the top of the stack, so later calls act in
// the local frame established by earlier ones. Push saves the current
// matrix and Pop restores it, leaving sibling transforms unaffected.
//
// Not safe for concurrent use; each regeneration owns its own Transform.
type Transform struct {
	stack []Mat4
}

// NewTransform returns a Transform initialised to the identity matrix.
func NewTransform() *Transform {
	return NewTransformFrom(Identity())
}

// NewTransformFrom returns a Transform initialised to the given parent
// matrix.
func NewTransformFrom(parent Mat4) *Transform {
	return &Transform{stack: []Mat4{parent}}
}

// Matrix returns the current (top of stack) matrix.
func (t *Transform) Matrix() Mat4 {
	return t.stack[len(t.stack)-1]
}

// Push saves the current matrix. Every Push must be balanced by a Pop.
func (t *Transform) Push() {
	t.stack = append(t.stack, t.Matrix())
}

// Pop restores the most recently pushed matrix.
// Popping the root matrix is a caller bug.
func (t *Transform) Pop() {
	if len(t.stack) <= 1 {
		panic("geometry: transform stack underflow")
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// Translate multiplies a translation by (x, y, z) onto the current matrix.
func (t *Transform) Translate(x, y, z float32) {
	t.apply(Translation(x, y, z))
}

// RotateX multiplies a rotation of theta radians about X onto the
// current matrix.
func (t *Transform) RotateX(theta float32) {
	t.apply(RotationX(theta))
}

// RotateY multiplies a rotation of theta radians about Y onto the
// current matrix.
func (t *Transform) RotateY(theta float32) {
	t.apply(RotationY(theta))
}

// RotateZ multiplies a rotation of theta radians about Z onto the
// current matrix.
func (t *Transform) RotateZ(theta float32) {
	t.apply(RotationZ(theta))
}

// Apply transforms the point (x, y, z) by the current matrix.
func (t *Transform) Apply(x, y, z float32) (float32, float32, float32) {
	return t.Matrix().Apply(x, y, z)
}

func (t *Transform) apply(m Mat4) {
	t.stack[len(t.stack)-1] = t.Matrix().Mul(m)
}
