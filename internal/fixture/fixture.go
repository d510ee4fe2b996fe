package fixture

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"github.com/nerrad567/lumen-core/internal/geometry"
	"github.com/nerrad567/lumen-core/internal/model"
	"github.com/nerrad567/lumen-core/internal/output"
)

// Shape computes a fixture's point geometry. Implementations are plain
// value descriptors; replacing a fixture's shape is how metrics
// parameters change.
type Shape interface {
	// Size returns the number of points the shape produces.
	Size() int

	// Compute writes the shape's point coordinates against the current
	// transform matrix. len(points) equals Size().
	Compute(tx *geometry.Transform, points []*model.Point)

	// Submodel builds the tagged model for a promoted copy of the
	// shape's points.
	Submodel(points []*model.Point) *model.Model
}

// Listener is notified when a fixture regenerates. It is implemented
// by the owning structure.
type Listener interface {
	// FixtureMetricsChanged signals that the fixture's point count
	// changed: every fixture's global indices must be reassigned.
	FixtureMetricsChanged(f *Fixture)

	// FixtureGeometryChanged signals that only this fixture's point
	// positions changed; indices are untouched.
	FixtureGeometryChanged(f *Fixture)
}

// Fixture is a geometry+output unit: a fixed-size array of points
// positioned by a parent-relative transform stack, plus one active
// protocol encoder.
//
// The local point pool is owned exclusively by the fixture. At
// structure-rebuild time the points are deep-copied with final global
// indices assigned, so a model snapshot already handed to a consumer
// is never mutated by a later index reassignment.
type Fixture struct {
	id    string
	label string
	shape Shape

	// Geometry parameters. Rotations are degrees.
	x, y, z          float32
	yaw, pitch, roll float32
	parent           geometry.Mat4

	points   []*model.Point
	ordinal  int
	selected bool

	// Output state.
	protocol   output.Protocol
	host       string
	enabled    bool
	brightness float32
	universe   int // artnet and sacn
	channel    int // opc
	dataOffset int // ddp
	kinetPort  int // kinet
	encoder    output.Encoder

	// Promotion state, owned by the structure rebuild.
	indices     []int
	modelPoints []*model.Point

	listener Listener
}

// New creates a fixture for the given shape with a generated ID.
func New(label string, shape Shape) *Fixture {
	if shape == nil {
		panic("fixture: nil shape")
	}
	f := &Fixture{
		id:         uuid.New().String(),
		label:      label,
		shape:      shape,
		parent:     geometry.Identity(),
		enabled:    true,
		brightness: 1,
		protocol:   output.ProtocolNone,
	}
	f.regeneratePoints()
	return f
}

// NewStrip creates a strip fixture of count points spaced along X.
func NewStrip(label string, count int, spacing float32) *Fixture {
	return New(label, Strip{Count: count, Spacing: spacing})
}

// NewGrid creates a grid fixture of rows x columns points.
func NewGrid(label string, rows, columns int, rowSpacing, columnSpacing float32) *Fixture {
	return New(label, Grid{
		Rows: rows, Columns: columns,
		RowSpacing: rowSpacing, ColumnSpacing: columnSpacing,
	})
}

// NewArc creates an arc fixture of count points sweeping the given
// angle in degrees at the given radius.
func NewArc(label string, count int, radius, degrees float32) *Fixture {
	return New(label, Arc{Count: count, Radius: radius, Degrees: degrees})
}

// ID returns the fixture's unique identifier.
func (f *Fixture) ID() string { return f.id }

// Label returns the human-readable name.
func (f *Fixture) Label() string { return f.label }

// Shape returns the current shape descriptor.
func (f *Fixture) Shape() Shape { return f.shape }

// Size returns the number of points the fixture currently owns.
func (f *Fixture) Size() int { return len(f.points) }

// Points returns the fixture's local point pool. The pool is owned
// exclusively by the fixture; callers must not retain it across a
// metrics change.
func (f *Fixture) Points() []*model.Point { return f.points }

// Selected reports whether the fixture is marked for bulk operations.
func (f *Fixture) Selected() bool { return f.selected }

// SetSelected marks or unmarks the fixture for bulk operations.
func (f *Fixture) SetSelected(selected bool) { f.selected = selected }

// Ordinal returns the fixture's 0-based position in the owning
// structure's fixture list.
func (f *Fixture) Ordinal() int { return f.ordinal }

// SetOrdinal records the fixture's position. Called by the structure.
func (f *Fixture) SetOrdinal(ordinal int) { f.ordinal = ordinal }

// SetListener registers the regeneration listener. Called by the
// structure when the fixture is added.
func (f *Fixture) SetListener(l Listener) { f.listener = l }

// SetShape replaces the shape descriptor.
//
// A change in point count is a metrics change: the local point pool is
// reallocated and the owning structure reindexes every fixture. A
// same-size replacement only moves points and takes the cheap
// geometry path.
func (f *Fixture) SetShape(shape Shape) {
	if shape == nil {
		panic("fixture: nil shape")
	}
	sizeChanged := shape.Size() != f.shape.Size()
	f.shape = shape
	if sizeChanged {
		f.regeneratePoints()
		f.notifyMetricsChanged()
		return
	}
	f.regenerateGeometry()
	f.notifyGeometryChanged()
}

// SetPosition moves the fixture origin. Geometry class: point count
// and indices are unaffected.
func (f *Fixture) SetPosition(x, y, z float32) {
	f.x, f.y, f.z = x, y, z
	f.regenerateGeometry()
	f.notifyGeometryChanged()
}

// SetRotation sets the fixture's yaw, pitch and roll in degrees.
// Geometry class: point count and indices are unaffected.
func (f *Fixture) SetRotation(yaw, pitch, roll float32) {
	f.yaw, f.pitch, f.roll = yaw, pitch, roll
	f.regenerateGeometry()
	f.notifyGeometryChanged()
}

// SetParentTransform sets the externally supplied parent matrix the
// fixture's own transform stack starts from.
func (f *Fixture) SetParentTransform(parent geometry.Mat4) {
	f.parent = parent
	f.regenerateGeometry()
	f.notifyGeometryChanged()
}

// regeneratePoints discards and reallocates the local point pool at
// the shape's new size, then recomputes geometry.
func (f *Fixture) regeneratePoints() {
	size := f.shape.Size()
	if size < 0 {
		size = 0
	}
	f.points = make([]*model.Point, size)
	for i := range f.points {
		p := model.NewPoint(0, 0, 0)
		p.Index = i
		f.points[i] = p
	}
	f.indices = nil
	f.modelPoints = nil
	f.regenerateGeometry()
}

// regenerateGeometry recomputes point positions in place.
//
// The transform order is fixed and shapes rely on it: parent matrix,
// translate by (x, y, z), rotate yaw about Y, pitch about X, roll
// about Z, push, shape writes its points, pop.
func (f *Fixture) regenerateGeometry() {
	tx := geometry.NewTransformFrom(f.parent)
	tx.Translate(f.x, f.y, f.z)
	tx.RotateY(radians(f.yaw))
	tx.RotateX(radians(f.pitch))
	tx.RotateZ(radians(f.roll))
	tx.Push()
	f.shape.Compute(tx, f.points)
	tx.Pop()
}

func (f *Fixture) notifyMetricsChanged() {
	if f.listener != nil {
		f.listener.FixtureMetricsChanged(f)
	}
}

func (f *Fixture) notifyGeometryChanged() {
	if f.listener != nil {
		f.listener.FixtureGeometryChanged(f)
	}
}

// Promote deep-copies the local points with final global indices
// starting at base, rebuilds the output encoder against the new index
// buffer, and returns the fixture's tagged submodel.
//
// The returned error is the soft-fail host resolution case; the
// submodel is always valid.
func (f *Fixture) Promote(base int) (*model.Model, error) {
	promoted := make([]*model.Point, len(f.points))
	f.indices = make([]int, len(f.points))
	for i, p := range f.points {
		c := p.Copy()
		c.Index = base + i
		promoted[i] = c
		f.indices[i] = base + i
	}
	f.modelPoints = promoted

	sub := f.shape.Submodel(promoted)
	sub.Meta["fixture"] = f.id
	sub.Meta["label"] = f.label

	var err error
	if f.protocol != output.ProtocolNone {
		err = f.rebuildEncoder()
	}
	return sub, err
}

// PushGeometry copies the local point coordinates into the promoted
// model points, preserving their global indices. Returns false when
// the fixture has not been promoted yet.
func (f *Fixture) PushGeometry() bool {
	if len(f.modelPoints) != len(f.points) || f.modelPoints == nil {
		return false
	}
	for i, p := range f.points {
		f.modelPoints[i].SetFrom(p)
	}
	return true
}

// Protocol returns the active output protocol.
func (f *Fixture) Protocol() output.Protocol { return f.protocol }

// Encoder returns the live encoder, or nil when the protocol is none.
func (f *Fixture) Encoder() output.Encoder { return f.encoder }

// Host returns the configured output host.
func (f *Fixture) Host() string { return f.host }

// Enabled reports whether output is enabled.
func (f *Fixture) Enabled() bool { return f.enabled }

// Brightness returns the output brightness in [0, 1].
func (f *Fixture) Brightness() float32 { return f.brightness }

// SetProtocol switches the active output protocol.
//
// Switching to none removes the encoder; switching between protocols
// constructs a fresh encoder from the fixture's current global index
// buffer. Host resolution failure is the soft-fail case: the fixture's
// output is disabled, the error is returned, and everything else keeps
// operating.
func (f *Fixture) SetProtocol(p output.Protocol) error {
	if err := output.ValidateProtocol(p); err != nil {
		return err
	}
	if p == f.protocol {
		return nil
	}
	f.protocol = p
	f.encoder = nil
	if p == output.ProtocolNone {
		return nil
	}
	return f.rebuildEncoder()
}

// SetHost sets the output destination host, mutating the live encoder
// in place. On resolution failure the fixture's output is disabled and
// the error returned; other fixtures are unaffected.
func (f *Fixture) SetHost(host string) error {
	f.host = host
	if f.encoder == nil {
		return nil
	}
	if err := f.encoder.SetAddress(host); err != nil {
		f.enabled = false
		f.encoder.SetEnabled(false)
		return err
	}
	return nil
}

// SetEnabled toggles output, mutating the live encoder in place.
func (f *Fixture) SetEnabled(enabled bool) {
	f.enabled = enabled
	if f.encoder != nil {
		f.encoder.SetEnabled(enabled)
	}
}

// SetBrightness sets the output brightness, clamped to [0, 1],
// mutating the live encoder in place.
func (f *Fixture) SetBrightness(brightness float32) {
	f.brightness = clamp01(brightness)
	if f.encoder != nil {
		f.encoder.SetBrightness(f.brightness)
	}
}

// SetUniverse sets the Art-Net/sACN universe, mutating the live
// encoder in place.
func (f *Fixture) SetUniverse(universe int) {
	f.universe = universe
	switch enc := f.encoder.(type) {
	case *output.ArtNetEncoder:
		enc.SetUniverse(universe)
	case *output.SACNEncoder:
		enc.SetUniverse(universe)
	}
}

// SetChannel sets the OPC channel, mutating the live encoder in place.
func (f *Fixture) SetChannel(channel int) {
	f.channel = channel
	if enc, ok := f.encoder.(*output.OPCEncoder); ok {
		enc.SetChannel(channel)
	}
}

// SetDataOffset sets the DDP data offset, mutating the live encoder in
// place.
func (f *Fixture) SetDataOffset(offset int) {
	f.dataOffset = offset
	if enc, ok := f.encoder.(*output.DDPEncoder); ok {
		enc.SetDataOffset(offset)
	}
}

// SetKinetPort sets the KiNET power supply port, mutating the live
// encoder in place.
func (f *Fixture) SetKinetPort(port int) {
	f.kinetPort = port
	if enc, ok := f.encoder.(*output.KiNETEncoder); ok {
		enc.SetKinetPort(port)
	}
}

// rebuildEncoder constructs a fresh encoder against the current index
// buffer and re-applies the shared output state.
func (f *Fixture) rebuildEncoder() error {
	f.encoder = output.NewEncoder(f.protocol, f.currentIndices(), f.addressingField())
	f.encoder.SetBrightness(f.brightness)
	f.encoder.SetEnabled(f.enabled)
	if f.host == "" {
		return nil
	}
	if err := f.encoder.SetAddress(f.host); err != nil {
		f.enabled = false
		f.encoder.SetEnabled(false)
		return err
	}
	return nil
}

// currentIndices returns the fixture's global index buffer, falling
// back to the local point indices before the first promotion.
func (f *Fixture) currentIndices() []int {
	if f.indices != nil {
		return f.indices
	}
	indices := make([]int, len(f.points))
	for i, p := range f.points {
		indices[i] = p.Index
	}
	return indices
}

func (f *Fixture) addressingField() int {
	switch f.protocol {
	case output.ProtocolArtNet, output.ProtocolSACN:
		return f.universe
	case output.ProtocolOPC:
		return f.channel
	case output.ProtocolDDP:
		return f.dataOffset
	case output.ProtocolKiNET:
		return f.kinetPort
	default:
		return 0
	}
}

func radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
