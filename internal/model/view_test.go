package model

import "testing"

func TestView_SyncsWithSourceUpdate(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	gen := v.Generation()

	// Move the first source point; the view's clone must follow.
	root.Points[0].Set(-5, 2, 0)
	root.Update(true, true)

	clone := v.Points[0]
	if clone.X != -5 || clone.Y != 2 {
		t.Errorf("clone = (%v, %v), want (-5, 2)", clone.X, clone.Y)
	}
	if v.XMin != -5 {
		t.Errorf("view XMin = %v, want -5", v.XMin)
	}
	if v.Generation() <= gen {
		t.Error("view generation did not advance with source update")
	}
}

func TestView_PointsAreClones(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	if v.Points[0] == root.Points[0] {
		t.Fatal("view shares point references with the source")
	}
	if v.Points[0].Index != root.Points[0].Index {
		t.Errorf("clone Index = %d, want %d", v.Points[0].Index, root.Points[0].Index)
	}

	// Mutating the clone must not leak back into the source.
	v.Points[0].Set(99, 0, 0)
	if root.Points[0].X == 99 {
		t.Error("mutating a clone changed the source point")
	}
}

func TestView_RelativeNormalization(t *testing.T) {
	root := buildStripRig()

	// Strip 1 spans X 10..13 in the source; a relative view spans the
	// full normalised range on its own.
	v, err := NewView(root, "strip[1]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if v.Points[0].Xn != 0 || v.Points[3].Xn != 1 {
		t.Errorf("relative Xn ends = %v, %v, want 0, 1", v.Points[0].Xn, v.Points[3].Xn)
	}
}

func TestView_AbsoluteNormalization(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[1]", NormalizationAbsolute)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	// Absolute views keep the coordinates the source normalised: strip 1
	// covers X 10..13 of the root's 0..53 span.
	for i, p := range v.Points {
		want := root.Points[4+i].Xn
		if p.Xn != want {
			t.Errorf("Points[%d].Xn = %v, want %v", i, p.Xn, want)
		}
	}

	// The mode survives source updates.
	root.Points[4].Set(10, 1, 0)
	root.Update(true, true)
	if v.Points[0].Xn != root.Points[4].Xn {
		t.Errorf("after update Xn = %v, want %v", v.Points[0].Xn, root.Points[4].Xn)
	}
}

func TestView_ListenerNotifiedAfterSource(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	var order []string
	root.AddListener(listenerFunc(func(*Model) { order = append(order, "source") }))
	v.AddListener(listenerFunc(func(*Model) { order = append(order, "view") }))

	root.Update(true, true)

	if len(order) != 2 || order[0] != "source" || order[1] != "view" {
		t.Errorf("notification order = %v, want [source view]", order)
	}
}

func TestView_Dispose(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if len(root.Views()) != 1 {
		t.Fatalf("Views() = %d, want 1", len(root.Views()))
	}

	v.Dispose()
	if len(root.Views()) != 0 {
		t.Error("view still registered after Dispose")
	}

	// A disposed view no longer tracks the source.
	root.Points[0].Set(42, 0, 0)
	root.Update(true, true)
	if v.Points[0].X == 42 {
		t.Error("disposed view received a coordinate push")
	}
}

func TestView_DisposeContainerDeregistersGroups(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]; strip[1]", NormalizationRelative)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	// Two group views plus the container all register with the source.
	if got := len(root.Views()); got != 3 {
		t.Fatalf("Views() = %d, want 3", got)
	}

	v.Dispose()
	if got := len(root.Views()); got != 0 {
		t.Fatalf("Views() = %d after Dispose, want 0", got)
	}

	// The source must no longer push coordinates into any group view.
	group := v.Children("view")[0]
	before := group.Points[0].X
	root.Points[0].Set(before+50, 0, 0)
	root.Update(true, true)
	if group.Points[0].X != before {
		t.Error("disposed group view received a coordinate push")
	}
}

func TestView_SourceAccessors(t *testing.T) {
	root := buildStripRig()

	v, err := NewView(root, "strip[0]", NormalizationAbsolute)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if v.Source() != root {
		t.Error("Source() is not the originating model")
	}
	if v.Normalization() != NormalizationAbsolute {
		t.Errorf("Normalization() = %v, want absolute", v.Normalization())
	}
}

func TestNormalization_String(t *testing.T) {
	if NormalizationRelative.String() != "relative" {
		t.Errorf("relative String() = %q", NormalizationRelative.String())
	}
	if NormalizationAbsolute.String() != "absolute" {
		t.Errorf("absolute String() = %q", NormalizationAbsolute.String())
	}
	if Normalization(9).String() != "unknown" {
		t.Errorf("unknown String() = %q", Normalization(9).String())
	}
}
