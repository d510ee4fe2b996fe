package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The selector grammar, evaluated against a model tree:
//
//	selector = group (";" group)*
//	group    = clause ("," clause)*
//	clause   = segment (whitespace segment)*
//	segment  = [">" | "&"] tag [range]
//	range    = "[" n "]" | "[" n "-" m "]" | "[even]" | "[odd]"
//
// Clauses within a group union into one result set; each group yields
// one view. A clause's segments are walked left to right against an
// evolving candidate set, initially the root model. By default a tag
// is looked up among descendants at any depth; the ">" prefix restricts
// the following segment to direct children, and the "&" prefix
// re-queries the same search space as the previous segment and
// intersects the result with the current candidates. Both operators
// apply to exactly one following segment and are cleared after use;
// their compound behaviour over longer runs is deliberately the
// literal, non-composable reading.

// rangeKind describes a segment's index filter.
type rangeKind int

const (
	rangeAll rangeKind = iota
	rangeSpan
	rangeEven
	rangeOdd
)

// segment is one step of a clause.
type segment struct {
	tag         string
	directChild bool // ">" prefix: direct children only
	sameSpace   bool // "&" prefix: re-query the same search space and intersect
	kind        rangeKind
	start, end  int // inclusive, for rangeSpan

	// invalid marks a segment that failed to parse; it contributes no
	// candidates but the rest of the query still evaluates.
	invalid bool
}

type clause struct {
	segments []segment
}

type group struct {
	clauses []clause
}

type selector struct {
	groups []group
}

// parseSelector tokenises and parses a selector string. Malformed
// segments are recoverable: they are marked invalid, the error is
// accumulated, and parsing continues.
func parseSelector(s string) (selector, error) {
	var sel selector
	var errs []error

	for _, groupText := range strings.Split(s, ";") {
		var g group
		for _, clauseText := range strings.Split(groupText, ",") {
			cl, clauseErrs := parseClause(clauseText)
			errs = append(errs, clauseErrs...)
			if len(cl.segments) > 0 {
				g.clauses = append(g.clauses, cl)
			}
		}
		if len(g.clauses) > 0 {
			sel.groups = append(sel.groups, g)
		}
	}

	return sel, errors.Join(errs...)
}

func parseClause(text string) (clause, []error) {
	var cl clause
	var errs []error

	directChild := false
	sameSpace := false
	for _, token := range strings.Fields(text) {
		// Operators may stand alone or prefix the following tag.
		for len(token) > 0 && (token[0] == '>' || token[0] == '&') {
			switch token[0] {
			case '>':
				directChild = true
			case '&':
				sameSpace = true
			}
			token = token[1:]
		}
		if token == "" {
			continue
		}

		seg, err := parseSegment(token)
		if err != nil {
			errs = append(errs, err)
			seg.invalid = true
		}
		seg.directChild = directChild
		seg.sameSpace = sameSpace
		directChild = false
		sameSpace = false
		cl.segments = append(cl.segments, seg)
	}

	if directChild || sameSpace {
		errs = append(errs, fmt.Errorf("%w: dangling operator in clause %q", ErrInvalidSelector, strings.TrimSpace(text)))
	}

	return cl, errs
}

// parseSegment splits a token into tag and optional index range.
func parseSegment(token string) (segment, error) {
	seg := segment{kind: rangeAll}

	open := strings.IndexByte(token, '[')
	if open < 0 {
		seg.tag = token
		if !tagRegex.MatchString(seg.tag) {
			return seg, fmt.Errorf("%w: bad tag %q", ErrInvalidSelector, token)
		}
		return seg, nil
	}

	seg.tag = token[:open]
	if !tagRegex.MatchString(seg.tag) {
		return seg, fmt.Errorf("%w: bad tag %q", ErrInvalidSelector, token)
	}
	if !strings.HasSuffix(token, "]") {
		return seg, fmt.Errorf("%w: unterminated range in %q", ErrInvalidSelector, token)
	}

	body := token[open+1 : len(token)-1]
	switch body {
	case "even":
		seg.kind = rangeEven
		return seg, nil
	case "odd":
		seg.kind = rangeOdd
		return seg, nil
	}

	start, end, ok := parseSpan(body)
	if !ok {
		return seg, fmt.Errorf("%w: bad range %q in %q", ErrInvalidSelector, body, token)
	}
	seg.kind = rangeSpan
	seg.start, seg.end = start, end
	return seg, nil
}

// parseSpan parses "n" or "n-m" (inclusive, m >= n >= 0).
func parseSpan(body string) (int, int, bool) {
	if dash := strings.IndexByte(body, '-'); dash >= 0 {
		start, err1 := strconv.Atoi(body[:dash])
		end, err2 := strconv.Atoi(body[dash+1:])
		if err1 != nil || err2 != nil || start < 0 || end < start {
			return 0, 0, false
		}
		return start, end, true
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	return n, n, true
}

// groupSelection accumulates the submodels selected by one group, in
// selection order.
type groupSelection struct {
	models []*Model
}

func (g *groupSelection) remove(m *Model) {
	for i, existing := range g.models {
		if existing == m {
			g.models = append(g.models[:i], g.models[i+1:]...)
			return
		}
	}
}

// selectionSet is the global, order-sensitive conflict resolver across
// clauses and groups. It guarantees the final selection is an
// antichain: no selected model is an ancestor or descendant of another,
// with leftmost-selector precedence.
type selectionSet struct {
	groups []*groupSelection
	owner  map[*Model]*groupSelection
}

func newSelectionSet() *selectionSet {
	return &selectionSet{owner: map[*Model]*groupSelection{}}
}

func (s *selectionSet) newGroup() *groupSelection {
	g := &groupSelection{}
	s.groups = append(s.groups, g)
	return g
}

func (s *selectionSet) contains(m *Model) bool {
	_, ok := s.owner[m]
	return ok
}

// add records a candidate in the given group, resolving conflicts with
// everything selected so far: a candidate already registered or covered
// by a registered ancestor is skipped (first seen wins); a candidate
// that contains an already-registered model evicts it from whichever
// group holds it.
func (s *selectionSet) add(candidate *Model, g *groupSelection) {
	if s.contains(candidate) {
		return
	}

	// Iterate groups in order so eviction decisions are deterministic.
	for _, existing := range s.registered() {
		if isAncestor(existing, candidate) {
			return
		}
		if isAncestor(candidate, existing) {
			s.owner[existing].remove(existing)
			delete(s.owner, existing)
		}
	}

	g.models = append(g.models, candidate)
	s.owner[candidate] = g
}

func (s *selectionSet) registered() []*Model {
	var all []*Model
	for _, g := range s.groups {
		all = append(all, g.models...)
	}
	return all
}

// isAncestor reports whether a is a strict ancestor of b.
func isAncestor(a, b *Model) bool {
	for p := b.Parent(); p != nil; p = p.Parent() {
		if p == a {
			return true
		}
	}
	return false
}

// evaluateSelector runs every group's clauses against the root model,
// returning one selection per group.
func evaluateSelector(root *Model, sel selector) []*groupSelection {
	set := newSelectionSet()
	for _, g := range sel.groups {
		gs := set.newGroup()
		for _, cl := range g.clauses {
			for _, m := range evaluateClause(root, cl, set) {
				set.add(m, gs)
			}
		}
	}
	return set.groups
}

// evaluateClause walks the clause's segments left to right against an
// evolving candidate set, initially the root model.
func evaluateClause(root *Model, cl clause, set *selectionSet) []*Model {
	candidates := []*Model{root}
	space := []*Model{root}

	for _, seg := range cl.segments {
		if seg.invalid {
			candidates = nil
			continue
		}

		searchIn := candidates
		if seg.sameSpace {
			searchIn = space
		} else {
			space = candidates
		}

		var results []*Model
		seen := map[*Model]struct{}{}
		for _, m := range searchIn {
			matches := m.Sub(seg.tag)
			if seg.directChild {
				matches = m.Children(seg.tag)
			}

			// Skip anything already recorded as selected elsewhere, and
			// anything already matched via another parent in this
			// segment, before the range filter indexes the match list.
			kept := make([]*Model, 0, len(matches))
			for _, match := range matches {
				if set.contains(match) {
					continue
				}
				if _, dup := seen[match]; dup {
					continue
				}
				seen[match] = struct{}{}
				kept = append(kept, match)
			}

			results = append(results, applyRange(kept, seg)...)
		}

		if seg.sameSpace {
			results = intersect(results, candidates)
		}
		candidates = results
	}

	return candidates
}

// applyRange filters an ordered match list by the segment's index range.
// Out-of-bounds spans are clipped rather than failing.
func applyRange(matches []*Model, seg segment) []*Model {
	switch seg.kind {
	case rangeAll:
		return matches
	case rangeEven, rangeOdd:
		offset := 0
		if seg.kind == rangeOdd {
			offset = 1
		}
		out := make([]*Model, 0, (len(matches)+1)/2)
		for i := offset; i < len(matches); i += 2 {
			out = append(out, matches[i])
		}
		return out
	default:
		start, end := seg.start, seg.end
		if start >= len(matches) {
			return nil
		}
		if end >= len(matches) {
			end = len(matches) - 1
		}
		return matches[start : end+1]
	}
}

// intersect keeps the members of results that are also in prior,
// preserving the order of results.
func intersect(results, prior []*Model) []*Model {
	inPrior := make(map[*Model]struct{}, len(prior))
	for _, m := range prior {
		inPrior[m] = struct{}{}
	}
	out := make([]*Model, 0, len(results))
	for _, m := range results {
		if _, ok := inPrior[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// NewView evaluates a selector against the source model and returns
// the resulting view.
//
// Each group's selected submodels are cloned, points deep-copied with
// their indices preserved, into one view per group. Zero groups yield
// one empty view; one group yields that view directly; multiple groups
// are wrapped in a container view over the group views, forced to
// absolute normalisation so it does not re-normalise coordinates the
// group views already fixed.
//
// Malformed segments are recoverable: the returned view is always
// usable and the joined parse errors are returned alongside it.
func NewView(source *Model, sel string, mode Normalization) (*View, error) {
	parsed, err := parseSelector(sel)
	selections := evaluateSelector(source, parsed)

	switch len(selections) {
	case 0:
		return newGroupView(source, nil, mode), err
	case 1:
		return newGroupView(source, selections[0].models, mode), err
	}

	views := make([]*View, len(selections))
	children := make([]*Model, len(selections))
	for i, gs := range selections {
		views[i] = newGroupView(source, gs.models, mode)
		children[i] = &views[i].Model
	}

	container := &View{
		source:        source,
		normalization: NormalizationAbsolute,
		clones:        map[int]*Point{},
		groups:        views,
	}
	initModel(&container.Model, nil, children, true, []string{"view"})
	source.registerView(container)
	return container, err
}

// newGroupView clones the selected submodels into a fresh view and
// registers it with the source. The clone map is shared across the
// group's members so points shared between them are deduplicated.
func newGroupView(source *Model, selections []*Model, mode Normalization) *View {
	cloneMap := map[*Point]*Point{}
	children := make([]*Model, len(selections))
	for i, m := range selections {
		children[i] = cloneModel(m, cloneMap)
	}

	v := &View{
		source:        source,
		normalization: mode,
		clones:        make(map[int]*Point, len(cloneMap)),
	}
	for src, clone := range cloneMap {
		v.clones[src.Index] = clone
	}

	initModel(&v.Model, nil, children, true, []string{"view"})
	if mode == NormalizationAbsolute {
		// Keep the source-normalised coordinates rather than the
		// freshly computed view-relative ones.
		v.pull(source)
		v.Model.update(false, true, false)
	}
	source.registerView(v)
	return v
}

// cloneModel deep-copies a model subtree. Points are cloned with their
// indices preserved, reusing clones from the shared map so references
// shared across the subtree stay shared in the copy.
func cloneModel(src *Model, cloneMap map[*Point]*Point) *Model {
	points := make([]*Point, len(src.Points))
	for i, p := range src.Points {
		clone, ok := cloneMap[p]
		if !ok {
			clone = p.Copy()
			cloneMap[p] = clone
		}
		points[i] = clone
	}

	children := make([]*Model, len(src.ChildModels()))
	for i, c := range src.ChildModels() {
		children[i] = cloneModel(c, cloneMap)
	}

	m := NewModelWithChildren(points, children, src.Tags...)
	for k, v := range src.Meta {
		m.Meta[k] = v
	}
	return m
}
