package geometry

import (
	"testing"

	"github.com/chewxy/math32"
)

const halfPi = math32.Pi / 2

func TestTransform_ComposesLocally(t *testing.T) {
	tx := NewTransform()
	tx.Translate(5, 0, 0)
	tx.RotateZ(halfPi)

	// Rotation acts in the already-translated frame: local +X becomes
	// world +Y around the moved origin.
	x, y, z := tx.Apply(1, 0, 0)
	if !approx(x, 5) || !approx(y, 1) || !approx(z, 0) {
		t.Errorf("Apply() = (%v, %v, %v), want (5, 1, 0)", x, y, z)
	}
}

func TestTransform_PushPopRestores(t *testing.T) {
	tx := NewTransform()
	tx.Translate(1, 0, 0)

	tx.Push()
	tx.Translate(0, 1, 0)
	if x, y, _ := tx.Apply(0, 0, 0); !approx(x, 1) || !approx(y, 1) {
		t.Errorf("nested Apply() = (%v, %v), want (1, 1)", x, y)
	}
	tx.Pop()

	x, y, _ := tx.Apply(0, 0, 0)
	if !approx(x, 1) || !approx(y, 0) {
		t.Errorf("restored Apply() = (%v, %v), want (1, 0)", x, y)
	}
}

func TestTransform_PopUnderflowPanics(t *testing.T) {
	tx := NewTransform()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for pop of the root matrix")
		}
	}()
	tx.Pop()
}

func TestNewTransformFrom_Parent(t *testing.T) {
	tx := NewTransformFrom(Translation(0, 0, 10))
	_, _, z := tx.Apply(0, 0, 0)
	if !approx(z, 10) {
		t.Errorf("Apply() z = %v, want 10", z)
	}
}
