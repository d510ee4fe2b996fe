package model

// Normalization selects how a view computes normalised coordinates
// after its points have been synced from the source model.
type Normalization int

const (
	// NormalizationRelative renormalises the view's points within the
	// view's own bounds, so the subset spans the full [0, 1] range.
	NormalizationRelative Normalization = iota

	// NormalizationAbsolute keeps the normalised coordinates pushed
	// from the source model untouched.
	NormalizationAbsolute
)

// String returns the lowercase name of the normalisation mode.
func (n Normalization) String() string {
	switch n {
	case NormalizationRelative:
		return "relative"
	case NormalizationAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// View is a derived model built by evaluating a selector against a
// source model. Its points are clones of source points, never shared
// references, and are kept in sync by the source's Update: coordinate
// changes are pushed into the matching clones by buffer index, then
// the view refreshes its own aggregate geometry honouring its
// normalisation mode.
//
// A view registers itself with the source at construction and
// deregisters on Dispose. Views never re-evaluate their selector; they
// only receive coordinate pushes.
type View struct {
	Model

	source        *Model
	normalization Normalization

	// clones maps a source point's buffer index to its clone in this
	// view. Not every source point has a clone.
	clones map[int]*Point

	// groups holds the per-group views a multi-group container wraps.
	// They are embedded as model children for traversal, so disposal
	// has to reach them through this list to deregister each one.
	groups []*View
}

// Source returns the model this view was derived from.
func (v *View) Source() *Model {
	return v.source
}

// Normalization returns the view's normalisation mode.
func (v *View) Normalization() Normalization {
	return v.normalization
}

// pull copies coordinates from the source's points into this view's
// matching clones. Source points without a clone in this view are
// skipped.
func (v *View) pull(source *Model) {
	for _, p := range source.Points {
		if clone, ok := v.clones[p.Index]; ok {
			clone.SetFrom(p)
		}
	}
}

// Dispose deregisters the view from its source and disposes the
// underlying model. A container view disposes its group views first,
// deregistering each from the shared source.
func (v *View) Dispose() {
	for _, g := range v.groups {
		g.Dispose()
	}
	v.groups = nil
	if v.source != nil {
		v.source.unregisterView(v)
		v.source = nil
	}
	v.Model.Dispose()
}
