package model

import (
	"fmt"
	"regexp"
	"strings"
)

// tagPattern restricts tags to identifier-like strings so the selector
// grammar can tokenise them unambiguously.
const tagPattern = `^[a-zA-Z0-9_][a-zA-Z0-9_.\-]*$`

var tagRegex = regexp.MustCompile(tagPattern)

// Listener receives a notification after a model's geometry has been
// recomputed and its generation incremented.
type Listener interface {
	ModelUpdated(m *Model)
}

// Model is a tree of points and child models.
//
// A model's structure is immutable for its lifetime: topology, point
// membership and point identity never change after construction, and
// the tag indices are built once. Point coordinates, however, may be
// updated in place, with Update recomputing the aggregate geometry and
// bumping the generation counter.
//
// If built from explicit children, Points is the union (by reference)
// of all descendant points. If built from an explicit point list plus
// prebuilt children, the point list is authoritative and the children
// are informational.
type Model struct {
	// Points are the points owned by this model, in buffer order.
	Points []*Point

	// Tags classify this model for children/sub lookup.
	Tags []string

	// Meta is opaque string metadata attached at construction.
	Meta map[string]string

	parent   *Model
	children []*Model

	// Tag indices, built once at construction.
	childIndex map[string][]*Model // depth-1 only
	subIndex   map[string][]*Model // all depths

	// Aggregate geometry, recomputed by Update.
	XMin, XMax, XRange float32
	YMin, YMax, YRange float32
	ZMin, ZMax, ZRange float32
	Cx, Cy, Cz         float32 // centre of the bounding box
	Ax, Ay, Az         float32 // average point position
	RMin, RMax         float32 // radial bounds from origin
	RcMin, RcMax       float32 // radial bounds from centre

	generation int

	views     []*View
	listeners []Listener
}

// NewModel builds a model from an explicit point list with no children.
func NewModel(points []*Point, tags ...string) *Model {
	return newModel(points, nil, false, tags)
}

// NewModelWithChildren builds a model from an explicit point list plus
// prebuilt children. The point list is authoritative; the children are
// informational and their points are not re-derived.
func NewModelWithChildren(points []*Point, children []*Model, tags ...string) *Model {
	return newModel(points, children, false, tags)
}

// NewModelFromChildren builds a model whose points are the
// concatenation of the children's points, in child order.
func NewModelFromChildren(children []*Model, tags ...string) *Model {
	return newModel(nil, children, true, tags)
}

func newModel(points []*Point, children []*Model, derivePoints bool, tags []string) *Model {
	m := &Model{}
	initModel(m, points, children, derivePoints, tags)
	return m
}

// initModel initialises a model in place, so View can construct its
// embedded Model without an extra allocation breaking parent pointers.
func initModel(m *Model, points []*Point, children []*Model, derivePoints bool, tags []string) {
	m.Tags = validateTags(tags)
	m.Meta = map[string]string{}
	m.children = append([]*Model(nil), children...)
	m.childIndex = map[string][]*Model{}
	m.subIndex = map[string][]*Model{}

	if derivePoints {
		for _, c := range m.children {
			m.Points = append(m.Points, c.Points...)
		}
	} else {
		m.Points = append([]*Point(nil), points...)
	}

	for _, c := range m.children {
		if c.parent != nil {
			panic("model: child already has a parent")
		}
		c.parent = m
		for _, tag := range c.Tags {
			m.childIndex[tag] = append(m.childIndex[tag], c)
		}
		c.indexInto(m.subIndex)
	}

	m.Update(true, false)
}

// indexInto records this model and all of its descendants in the given
// tag index.
func (m *Model) indexInto(index map[string][]*Model) {
	for _, tag := range m.Tags {
		index[tag] = append(index[tag], m)
	}
	for _, c := range m.children {
		c.indexInto(index)
	}
}

// validateTags rejects invalid tags and silently drops duplicates.
// Invalid tags are a caller bug, per the precondition policy.
func validateTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			panic("model: empty tag")
		}
		if !tagRegex.MatchString(tag) {
			panic(fmt.Sprintf("model: invalid tag %q, must match %s", tag, tagPattern))
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Parent returns the model's parent, or nil for a root model.
func (m *Model) Parent() *Model {
	return m.parent
}

// Children returns the direct children carrying the given tag, in
// construction order.
func (m *Model) Children(tag string) []*Model {
	return m.childIndex[tag]
}

// Sub returns the descendants at any depth carrying the given tag, in
// depth-first construction order.
func (m *Model) Sub(tag string) []*Model {
	return m.subIndex[tag]
}

// ChildModels returns the direct children in construction order.
func (m *Model) ChildModels() []*Model {
	return m.children
}

// Size returns the number of points owned by this model.
func (m *Model) Size() int {
	return len(m.Points)
}

// Generation returns the monotonic update counter.
func (m *Model) Generation() int {
	return m.generation
}

// Path returns the model's position in the tree as a slash-separated
// string of tag[i] segments, where i is this model's position among
// siblings sharing the same first tag (or among all siblings when
// untagged).
func (m *Model) Path() string {
	tag := "model"
	if len(m.Tags) > 0 {
		tag = m.Tags[0]
	}
	if m.parent == nil {
		return fmt.Sprintf("/%s[0]", tag)
	}

	i := 0
	for _, sibling := range m.parent.children {
		if sibling == m {
			break
		}
		if len(m.Tags) == 0 || (len(sibling.Tags) > 0 && sibling.Tags[0] == tag) {
			i++
		}
	}
	return fmt.Sprintf("%s/%s[%d]", m.parent.Path(), tag, i)
}

// Update recomputes the model's aggregate geometry after point
// coordinates have changed in place.
//
// When recurse is set, children are updated first; their points are
// never renormalised directly since normalisation is always relative
// to the root caller. When normalize is set, every point's normalised
// coordinates are recomputed against this model's bounds. Coordinate
// changes are then pushed into every registered view's cloned points,
// each view is refreshed honouring its own normalisation mode, the
// generation counter is incremented, and finally the listeners of this
// model and of its views are notified, in that order.
func (m *Model) Update(normalize, recurse bool) {
	m.update(normalize, recurse, true)
}

func (m *Model) update(normalize, recurse, notify bool) {
	if recurse {
		for _, c := range snapshot(m.children) {
			c.update(false, true, notify)
		}
	}

	m.recomputeGeometry()
	if normalize {
		m.normalizePoints()
	}

	// Views may be added or removed by listeners mid-dispatch, so the
	// list is snapshotted before iterating.
	views := snapshot(m.views)
	for _, v := range views {
		v.pull(m)
		v.Model.update(v.normalization == NormalizationRelative, true, false)
	}

	m.generation++

	if notify {
		m.notifyListeners()
		for _, v := range views {
			v.notifyListeners()
		}
	}
}

// recomputeGeometry rebuilds the aggregate fields from the current
// point coordinates.
func (m *Model) recomputeGeometry() {
	if len(m.Points) == 0 {
		m.XMin, m.XMax, m.XRange = 0, 0, 0
		m.YMin, m.YMax, m.YRange = 0, 0, 0
		m.ZMin, m.ZMax, m.ZRange = 0, 0, 0
		m.Cx, m.Cy, m.Cz = 0, 0, 0
		m.Ax, m.Ay, m.Az = 0, 0, 0
		m.RMin, m.RMax = 0, 0
		m.RcMin, m.RcMax = 0, 0
		return
	}

	b := ComputeNormalizationBounds(m.Points)
	m.XMin, m.XMax, m.XRange = b.XMin, b.XMax, b.XRange
	m.YMin, m.YMax, m.YRange = b.YMin, b.YMax, b.YRange
	m.ZMin, m.ZMax, m.ZRange = b.ZMin, b.ZMax, b.ZRange
	m.Cx, m.Cy, m.Cz = b.Cx, b.Cy, b.Cz

	var sx, sy, sz float64
	m.RMin, m.RMax = m.Points[0].R, m.Points[0].R
	for _, p := range m.Points {
		sx += float64(p.X)
		sy += float64(p.Y)
		sz += float64(p.Z)
		if p.R < m.RMin {
			m.RMin = p.R
		}
		if p.R > m.RMax {
			m.RMax = p.R
		}
	}
	n := float64(len(m.Points))
	m.Ax = float32(sx / n)
	m.Ay = float32(sy / n)
	m.Az = float32(sz / n)
}

// normalizePoints renormalises every point against this model's bounds,
// then makes the second pass required for Rcn: the centre-relative
// radius maximum is only known once every point's Rc is computed.
func (m *Model) normalizePoints() {
	if len(m.Points) == 0 {
		m.RcMin, m.RcMax = 0, 0
		return
	}

	b := &NormalizationBounds{
		XMin: m.XMin, XMax: m.XMax, XRange: m.XRange,
		YMin: m.YMin, YMax: m.YMax, YRange: m.YRange,
		ZMin: m.ZMin, ZMax: m.ZMax, ZRange: m.ZRange,
		Cx: m.Cx, Cy: m.Cy, Cz: m.Cz,
	}

	for _, p := range m.Points {
		p.Normalize(b, m.RMax)
	}

	m.RcMin, m.RcMax = m.Points[0].Rc, m.Points[0].Rc
	for _, p := range m.Points {
		if p.Rc < m.RcMin {
			m.RcMin = p.Rc
		}
		if p.Rc > m.RcMax {
			m.RcMax = p.Rc
		}
	}
	for _, p := range m.Points {
		if m.RcMax == 0 {
			p.Rcn = 0
		} else {
			p.Rcn = p.Rc / m.RcMax
		}
	}
}

// ReindexPoints assigns sequential indices 0..N-1 to this model's
// points. Only valid on the authoritative top-level model; reindexing
// a child would corrupt the global buffer layout.
func (m *Model) ReindexPoints() {
	if m.parent != nil {
		panic("model: reindex on non-root model")
	}
	for i, p := range m.Points {
		p.Index = i
	}
}

// AddListener registers a listener for update notifications.
func (m *Model) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// RemoveListener removes a previously registered listener.
func (m *Model) RemoveListener(l Listener) {
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// notifyListeners dispatches to a snapshot of the listener list, since
// a listener is permitted to add or remove listeners and views while
// being notified.
func (m *Model) notifyListeners() {
	for _, l := range snapshot(m.listeners) {
		l.ModelUpdated(m)
	}
}

// Views returns the views currently registered on this model.
func (m *Model) Views() []*View {
	return snapshot(m.views)
}

func (m *Model) registerView(v *View) {
	m.views = append(m.views, v)
}

func (m *Model) unregisterView(v *View) {
	for i, existing := range m.views {
		if existing == v {
			m.views = append(m.views[:i], m.views[i+1:]...)
			return
		}
	}
}

// Dispose releases the model: children are disposed recursively and
// listeners are dropped. Views of this model must be disposed by their
// owners; disposing a view unregisters it from its source.
func (m *Model) Dispose() {
	for _, c := range m.children {
		c.Dispose()
	}
	m.listeners = nil
}

func snapshot[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	return append([]T(nil), list...)
}
