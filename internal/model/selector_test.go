package model

import (
	"errors"
	"sort"
	"testing"
)

// buildStripRig returns a root model of six 4-point strips, reindexed
// so views can track points by buffer index.
func buildStripRig() *Model {
	strips := make([]*Model, 6)
	for i := range strips {
		points := make([]*Point, 4)
		for j := range points {
			points[j] = NewPoint(float32(i*10+j), 0, 0)
		}
		strips[i] = NewModel(points, "strip")
	}
	root := NewModelFromChildren(strips, "structure")
	root.ReindexPoints()
	return root
}

// buildGridRig returns a root with two grids of 2x3 points, each grid
// carrying "row" children.
func buildGridRig() *Model {
	grids := make([]*Model, 2)
	for g := range grids {
		var points []*Point
		rows := make([]*Model, 2)
		for r := 0; r < 2; r++ {
			rowPoints := make([]*Point, 3)
			for c := 0; c < 3; c++ {
				rowPoints[c] = NewPoint(float32(c), float32(r), float32(g))
			}
			points = append(points, rowPoints...)
			rows[r] = NewModel(rowPoints, "row")
		}
		grids[g] = NewModelWithChildren(points, rows, "grid")
	}
	root := NewModelFromChildren(grids, "structure")
	root.ReindexPoints()
	return root
}

// viewIndices returns the sorted source buffer indices of a view's
// points.
func viewIndices(v *View) []int {
	indices := make([]int, 0, v.Size())
	for _, p := range v.Points {
		indices = append(indices, p.Index)
	}
	sort.Ints(indices)
	return indices
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewView_TagSelectsAllMatches(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if v.Size() != 24 {
		t.Errorf("Size() = %d, want 24", v.Size())
	}
	if got := len(v.Sub("strip")); got != 6 {
		t.Errorf("Sub(strip) = %d models, want 6", got)
	}
}

func TestNewView_IndexAndSpan(t *testing.T) {
	root := buildStripRig()

	tests := []struct {
		name     string
		selector string
		want     []int
	}{
		{"single index", "strip[1]", []int{4, 5, 6, 7}},
		{"span", "strip[1-2]", []int{4, 5, 6, 7, 8, 9, 10, 11}},
		{"span clipped to available", "strip[5-99]", []int{20, 21, 22, 23}},
		{"start past end is empty", "strip[9-12]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewView(root, tt.selector, NormalizationRelative)
			if err != nil {
				t.Fatalf("NewView(%q) error = %v", tt.selector, err)
			}
			defer v.Dispose()
			if got := viewIndices(v); !equalInts(got, tt.want) {
				t.Errorf("indices = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewView_OddEquivalentToUnionOfSpans(t *testing.T) {
	root := buildStripRig()

	odd, err := NewView(root, "strip[odd]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(odd) error = %v", err)
	}
	spans, err := NewView(root, "strip[1-1],strip[3-3],strip[5-5]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(spans) error = %v", err)
	}

	if !equalInts(viewIndices(odd), viewIndices(spans)) {
		t.Errorf("odd = %v, union of spans = %v", viewIndices(odd), viewIndices(spans))
	}
}

func TestNewView_EvenRange(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[even]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	want := []int{0, 1, 2, 3, 8, 9, 10, 11, 16, 17, 18, 19}
	if got := viewIndices(v); !equalInts(got, want) {
		t.Errorf("indices = %v, want %v", got, want)
	}
}

func TestNewView_Idempotent(t *testing.T) {
	root := buildStripRig()

	first, err := NewView(root, "strip[even], strip[1]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	second, err := NewView(root, "strip[even], strip[1]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	if !equalInts(viewIndices(first), viewIndices(second)) {
		t.Errorf("first = %v, second = %v", viewIndices(first), viewIndices(second))
	}
}

func TestNewView_DirectChildOperator(t *testing.T) {
	root := buildGridRig()

	// Rows are grandchildren of the root, so a direct-child query from
	// the root finds nothing.
	v, err := NewView(root, ">row", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(>row) error = %v", err)
	}
	if v.Size() != 0 {
		t.Errorf(">row from root Size() = %d, want 0", v.Size())
	}

	v2, err := NewView(root, "grid >row", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(grid >row) error = %v", err)
	}
	if v2.Size() != 12 {
		t.Errorf("grid >row Size() = %d, want 12", v2.Size())
	}
}

func TestNewView_RangeAppliesPerParent(t *testing.T) {
	root := buildGridRig()

	// From the root, row[0] indexes the flat depth-first match list.
	flat, err := NewView(root, "row[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(row[0]) error = %v", err)
	}
	if flat.Size() != 3 {
		t.Errorf("row[0] Size() = %d, want 3", flat.Size())
	}

	// Stepping through grids first applies the range within each grid.
	perGrid, err := NewView(root, "grid row[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView(grid row[0]) error = %v", err)
	}
	if perGrid.Size() != 6 {
		t.Errorf("grid row[0] Size() = %d, want 6", perGrid.Size())
	}
}

func TestNewView_SameSpaceIntersection(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0-2] &strip[even]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	// Even strips are 0, 2 and 4; intersecting with strips 0-2 keeps
	// strips 0 and 2.
	want := []int{0, 1, 2, 3, 8, 9, 10, 11}
	if got := viewIndices(v); !equalInts(got, want) {
		t.Errorf("indices = %v, want %v", got, want)
	}
}

func TestNewView_AncestorAbsorbsDescendants(t *testing.T) {
	root := buildGridRig()

	// The grid is selected first; its rows are then covered and skipped.
	v, err := NewView(root, "grid[0], row", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	models := v.ChildModels()
	grids, rows := 0, 0
	for _, m := range models {
		switch m.Tags[0] {
		case "grid":
			grids++
		case "row":
			rows++
		}
	}
	if grids != 1 || rows != 2 {
		t.Errorf("selected %d grids and %d rows, want 1 grid (first) and 2 rows (second grid only)", grids, rows)
	}
}

func TestNewView_AncestorEvictsEarlierDescendants(t *testing.T) {
	root := buildGridRig()

	// Selecting rows first then a covering grid keeps the grid; its
	// rows are evicted so the selection stays an antichain.
	v, err := NewView(root, "row, grid", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	for _, m := range v.ChildModels() {
		if m.Tags[0] != "grid" {
			t.Errorf("selected %q, want only grids", m.Tags[0])
		}
	}
	if len(v.ChildModels()) != 2 {
		t.Errorf("selected %d models, want 2 grids", len(v.ChildModels()))
	}
}

func TestNewView_MultiGroupContainer(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]; strip[1-2]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if got := len(v.Children("view")); got != 2 {
		t.Fatalf("container has %d group views, want 2", got)
	}
	if v.Normalization() != NormalizationAbsolute {
		t.Errorf("container normalisation = %v, want absolute", v.Normalization())
	}
	if v.Size() != 12 {
		t.Errorf("container Size() = %d, want 12", v.Size())
	}

	groups := v.Children("view")
	if groups[0].Size() != 4 || groups[1].Size() != 8 {
		t.Errorf("group sizes = %d, %d, want 4, 8", groups[0].Size(), groups[1].Size())
	}
}

func TestNewView_GroupsDoNotOverlap(t *testing.T) {
	root := buildStripRig()

	// Strip 1 is claimed by the first group, so the second group's
	// range indexes the remaining strips: 0, 2 and 3.
	v, err := NewView(root, "strip[1]; strip[0-2]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	groups := v.Children("view")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	want := []int{0, 1, 2, 3, 8, 9, 10, 11, 12, 13, 14, 15}
	indices := make([]int, 0, groups[1].Size())
	for _, p := range groups[1].Points {
		indices = append(indices, p.Index)
	}
	sort.Ints(indices)
	if !equalInts(indices, want) {
		t.Errorf("second group indices = %v, want %v", indices, want)
	}
}

func TestNewView_MalformedSelector(t *testing.T) {
	root := buildStripRig()

	tests := []struct {
		name     string
		selector string
		wantSize int
	}{
		{"unterminated range", "strip[0], strip[1", 4},
		{"bad range body", "strip[x-y]", 0},
		{"descending span", "strip[3-1]", 0},
		{"dangling operator", "strip[0] >", 4},
		{"bad tag", "str!p", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewView(root, tt.selector, NormalizationRelative)
			if !errors.Is(err, ErrInvalidSelector) {
				t.Fatalf("NewView(%q) error = %v, want ErrInvalidSelector", tt.selector, err)
			}
			if v == nil {
				t.Fatal("view is nil, want usable view alongside the error")
			}
			if v.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", v.Size(), tt.wantSize)
			}
		})
	}
}

func TestNewView_EmptySelector(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if v.Size() != 0 {
		t.Errorf("Size() = %d, want 0", v.Size())
	}
	// An empty view is still a live view on the source.
	root.Update(true, true)
	v.Dispose()
}
