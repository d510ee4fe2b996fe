package structure

import (
	"time"

	"github.com/nerrad567/lumen-core/internal/fixture"
	"github.com/nerrad567/lumen-core/internal/model"
)

// Logger defines the logging interface used by the Structure.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Announcer publishes structure lifecycle events to external systems.
// Implementations must not call back into the Structure.
type Announcer interface {
	AnnounceRegeneration(fixtures, points int, duration time.Duration)
	AnnounceFixtureAdded(id, label string, points int)
	AnnounceFixtureRemoved(id, label string)
}

// Telemetry records structure rebuild measurements.
type Telemetry interface {
	RecordRegeneration(fixtures, points int, duration time.Duration)
}

// Structure owns an ordered list of fixtures and the root model built
// from their promoted points.
//
// A Structure is not safe for concurrent use. Model listeners fire on
// the mutating goroutine; callers coordinate their own locking, the
// same way they do for Model itself.
type Structure struct {
	fixtures []*fixture.Fixture
	model    *model.Model

	// static, when set, replaces the generated model and freezes the
	// fixture list.
	static *model.Model

	// loading suppresses per-fixture regeneration during bulk load;
	// dirty records that a rebuild is owed at EndLoad.
	loading bool
	dirty   bool

	logger    Logger
	announcer Announcer
	telemetry Telemetry
}

// New creates an empty structure with a valid (empty) model.
func New() *Structure {
	s := &Structure{logger: noopLogger{}}
	s.regenerate()
	return s
}

// SetLogger sets the logger for the structure.
func (s *Structure) SetLogger(logger Logger) {
	s.logger = logger
}

// SetAnnouncer sets the optional event announcer.
func (s *Structure) SetAnnouncer(a Announcer) {
	s.announcer = a
}

// SetTelemetry sets the optional telemetry recorder.
func (s *Structure) SetTelemetry(t Telemetry) {
	s.telemetry = t
}

// Model returns the active root model: the static model when one is
// set, otherwise the generated model.
func (s *Structure) Model() *model.Model {
	if s.static != nil {
		return s.static
	}
	return s.model
}

// Fixtures returns a copy of the fixture list in ordinal order.
func (s *Structure) Fixtures() []*fixture.Fixture {
	out := make([]*fixture.Fixture, len(s.fixtures))
	copy(out, s.fixtures)
	return out
}

// FixtureByID returns the fixture with the given ID, or nil.
func (s *Structure) FixtureByID(id string) *fixture.Fixture {
	for _, f := range s.fixtures {
		if f.ID() == id {
			return f
		}
	}
	return nil
}

// Size returns the total point count across all fixtures.
func (s *Structure) Size() int {
	total := 0
	for _, f := range s.fixtures {
		total += f.Size()
	}
	return total
}

// AddFixture appends a fixture and rebuilds the model. Adding a
// fixture twice, or while a static model is set, is a programming
// error and panics.
func (s *Structure) AddFixture(f *fixture.Fixture) {
	s.mustBeDynamic()
	if s.indexOf(f) >= 0 {
		panic("structure: fixture already added")
	}

	s.fixtures = append(s.fixtures, f)
	f.SetListener(s)
	s.reassignOrdinals()
	s.rebuild()

	if s.announcer != nil {
		s.announcer.AnnounceFixtureAdded(f.ID(), f.Label(), f.Size())
	}
}

// RemoveFixture removes a fixture and rebuilds the model. Removing a
// fixture that is not present, or removing while a static model is
// set, is a programming error and panics.
func (s *Structure) RemoveFixture(f *fixture.Fixture) {
	s.mustBeDynamic()
	i := s.indexOf(f)
	if i < 0 {
		panic("structure: fixture not in structure")
	}

	s.fixtures = append(s.fixtures[:i], s.fixtures[i+1:]...)
	f.SetListener(nil)
	s.reassignOrdinals()
	s.rebuild()

	if s.announcer != nil {
		s.announcer.AnnounceFixtureRemoved(f.ID(), f.Label())
	}
}

// RemoveSelected removes every fixture marked selected and rebuilds
// the model once. Returns the number of fixtures removed.
func (s *Structure) RemoveSelected() int {
	s.mustBeDynamic()

	kept := s.fixtures[:0]
	var removed []*fixture.Fixture
	for _, f := range s.fixtures {
		if f.Selected() {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	if len(removed) == 0 {
		return 0
	}

	s.fixtures = kept
	for _, f := range removed {
		f.SetListener(nil)
	}
	s.reassignOrdinals()
	s.rebuild()

	if s.announcer != nil {
		for _, f := range removed {
			s.announcer.AnnounceFixtureRemoved(f.ID(), f.Label())
		}
	}
	return len(removed)
}

// MoveFixture moves a fixture to the given position in the list and
// rebuilds the model, reassigning global indices to match the new
// order. The position is clamped to the list bounds.
func (s *Structure) MoveFixture(f *fixture.Fixture, to int) {
	s.mustBeDynamic()
	from := s.indexOf(f)
	if from < 0 {
		panic("structure: fixture not in structure")
	}
	if to < 0 {
		to = 0
	}
	if to >= len(s.fixtures) {
		to = len(s.fixtures) - 1
	}
	if to == from {
		return
	}

	s.fixtures = append(s.fixtures[:from], s.fixtures[from+1:]...)
	s.fixtures = append(s.fixtures[:to], append([]*fixture.Fixture{f}, s.fixtures[to:]...)...)
	s.reassignOrdinals()
	s.rebuild()
}

// BeginLoad enters bulk-load mode: fixture additions and changes are
// batched and the model is rebuilt once at EndLoad.
func (s *Structure) BeginLoad() {
	s.loading = true
}

// EndLoad leaves bulk-load mode and rebuilds the model if anything
// changed during the batch.
func (s *Structure) EndLoad() {
	s.loading = false
	if s.dirty {
		s.regenerate()
	}
}

// SetStaticModel replaces the generated model with a pre-built one and
// freezes the fixture list until ClearStaticModel.
func (s *Structure) SetStaticModel(m *model.Model) {
	if m == nil {
		panic("structure: nil static model")
	}
	s.static = m
}

// ClearStaticModel restores the generated model and rebuilds it from
// the current fixture list.
func (s *Structure) ClearStaticModel() {
	if s.static == nil {
		return
	}
	s.static = nil
	s.rebuild()
}

// FixtureMetricsChanged implements fixture.Listener. A point-count
// change invalidates every fixture's global indices, so the whole
// model is rebuilt.
func (s *Structure) FixtureMetricsChanged(f *fixture.Fixture) {
	s.logger.Debug("fixture metrics changed", "fixture", f.ID(), "label", f.Label(), "points", f.Size())
	s.rebuild()
}

// FixtureGeometryChanged implements fixture.Listener. Only positions
// moved; the fixture pushes fresh coordinates into its promoted points
// and the model renormalises in place.
func (s *Structure) FixtureGeometryChanged(f *fixture.Fixture) {
	if s.loading {
		s.dirty = true
		return
	}
	if !f.PushGeometry() {
		// Not promoted yet; the pending rebuild will pick it up.
		s.rebuild()
		return
	}
	s.model.Update(true, true)
}

// rebuild regenerates now, or defers to EndLoad during bulk load.
func (s *Structure) rebuild() {
	if s.loading {
		s.dirty = true
		return
	}
	s.regenerate()
}

// regenerate promotes every fixture with contiguous global indices and
// builds a fresh root model from their submodels.
func (s *Structure) regenerate() {
	start := time.Now()

	base := 0
	children := make([]*model.Model, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		sub, err := f.Promote(base)
		if err != nil {
			s.logger.Warn("fixture output disabled", "fixture", f.ID(), "label", f.Label(), "error", err)
		}
		children = append(children, sub)
		base += f.Size()
	}

	if s.model != nil {
		s.model.Dispose()
	}
	s.model = model.NewModelFromChildren(children, "structure")
	s.dirty = false

	elapsed := time.Since(start)
	s.logger.Info("structure regenerated",
		"fixtures", len(s.fixtures),
		"points", base,
		"duration_ms", elapsed.Milliseconds(),
	)
	if s.telemetry != nil {
		s.telemetry.RecordRegeneration(len(s.fixtures), base, elapsed)
	}
	if s.announcer != nil {
		s.announcer.AnnounceRegeneration(len(s.fixtures), base, elapsed)
	}
}

func (s *Structure) mustBeDynamic() {
	if s.static != nil {
		panic("structure: fixture list is frozen while a static model is set")
	}
}

func (s *Structure) indexOf(f *fixture.Fixture) int {
	for i, existing := range s.fixtures {
		if existing == f {
			return i
		}
	}
	return -1
}

func (s *Structure) reassignOrdinals() {
	for i, f := range s.fixtures {
		f.SetOrdinal(i)
	}
}
