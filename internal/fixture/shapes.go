package fixture

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/nerrad567/lumen-core/internal/geometry"
	"github.com/nerrad567/lumen-core/internal/model"
)

// Strip is a linear run of points spaced along the local X axis.
type Strip struct {
	Count   int
	Spacing float32
}

// Size returns the strip's point count.
func (s Strip) Size() int { return s.Count }

// Compute positions point i at (i*Spacing, 0, 0) in local space.
func (s Strip) Compute(tx *geometry.Transform, points []*model.Point) {
	for i, p := range points {
		x, y, z := tx.Apply(float32(i)*s.Spacing, 0, 0)
		p.Set(x, y, z)
	}
}

// Submodel builds a flat strip model.
func (s Strip) Submodel(points []*model.Point) *model.Model {
	return model.NewModel(points, "strip")
}

// Grid is a planar array of points in row-major order: point index is
// row*Columns + column, positioned at (column*ColumnSpacing,
// row*RowSpacing, 0) in local space.
type Grid struct {
	Rows          int
	Columns       int
	RowSpacing    float32
	ColumnSpacing float32
}

// Size returns Rows * Columns.
func (g Grid) Size() int { return g.Rows * g.Columns }

// Compute positions the grid's points row by row.
func (g Grid) Compute(tx *geometry.Transform, points []*model.Point) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			x, y, z := tx.Apply(float32(col)*g.ColumnSpacing, float32(row)*g.RowSpacing, 0)
			points[row*g.Columns+col].Set(x, y, z)
		}
	}
}

// Submodel builds a grid model whose children are the row and column
// slices, so selectors can address "row" and "column" within it. Rows
// and columns share the grid's points.
func (g Grid) Submodel(points []*model.Point) *model.Model {
	children := make([]*model.Model, 0, g.Rows+g.Columns)
	for row := 0; row < g.Rows; row++ {
		start := row * g.Columns
		children = append(children, model.NewModel(points[start:start+g.Columns], "row"))
	}
	for col := 0; col < g.Columns; col++ {
		colPoints := make([]*model.Point, g.Rows)
		for row := 0; row < g.Rows; row++ {
			colPoints[row] = points[row*g.Columns+col]
		}
		children = append(children, model.NewModel(colPoints, "column"))
	}
	return model.NewModelWithChildren(points, children, "grid")
}

// Arc is a circular sweep of points in the local XY plane, starting on
// the +X axis and sweeping Degrees anticlockwise at the given radius.
type Arc struct {
	Count   int
	Radius  float32
	Degrees float32
}

// Size returns the arc's point count.
func (a Arc) Size() int { return a.Count }

// Compute positions the arc's points. A single-point arc sits at angle
// zero; otherwise the first and last points land exactly on the sweep
// bounds.
func (a Arc) Compute(tx *geometry.Transform, points []*model.Point) {
	var step float32
	if a.Count > 1 {
		step = radians(a.Degrees) / float32(a.Count-1)
	}
	for i, p := range points {
		angle := float32(i) * step
		x, y, z := tx.Apply(a.Radius*math32.Cos(angle), a.Radius*math32.Sin(angle), 0)
		p.Set(x, y, z)
	}
}

// Submodel builds a flat arc model.
func (a Arc) Submodel(points []*model.Point) *model.Model {
	return model.NewModel(points, "arc")
}

func validateShape(s Shape) error {
	switch sh := s.(type) {
	case Strip:
		if sh.Count <= 0 {
			return fmt.Errorf("%w: strip count must be positive, got %d", ErrInvalidConfig, sh.Count)
		}
	case Grid:
		if sh.Rows <= 0 || sh.Columns <= 0 {
			return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidConfig, sh.Rows, sh.Columns)
		}
	case Arc:
		if sh.Count <= 0 {
			return fmt.Errorf("%w: arc count must be positive, got %d", ErrInvalidConfig, sh.Count)
		}
	}
	return nil
}
