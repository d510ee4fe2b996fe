package fixture

import (
	"errors"
	"fmt"

	"github.com/nerrad567/lumen-core/internal/infrastructure/config"
	"github.com/nerrad567/lumen-core/internal/output"
)

// FromConfig builds a fixture from a configuration entry: shape,
// placement, then output settings.
//
// A host that fails to resolve is not a construction failure; the
// fixture is returned with output disabled alongside the wrapped
// resolution error so the caller can log it and carry on.
func FromConfig(fc config.FixtureConfig) (*Fixture, error) {
	shape, err := shapeFromConfig(fc)
	if err != nil {
		return nil, err
	}

	f := New(fc.Label, shape)
	f.SetPosition(fc.X, fc.Y, fc.Z)
	f.SetRotation(fc.Yaw, fc.Pitch, fc.Roll)

	if err := applyOutputConfig(f, fc.Output); err != nil {
		if errors.Is(err, output.ErrUnresolvedHost) {
			return f, err
		}
		return nil, err
	}
	return f, nil
}

// shapeFromConfig maps a config entry's type field onto a shape value.
func shapeFromConfig(fc config.FixtureConfig) (Shape, error) {
	var shape Shape
	switch fc.Type {
	case "strip":
		shape = Strip{Count: fc.Count, Spacing: fc.Spacing}
	case "grid":
		shape = Grid{
			Rows: fc.Rows, Columns: fc.Columns,
			RowSpacing: fc.RowSpacing, ColumnSpacing: fc.ColumnSpacing,
		}
	case "arc":
		shape = Arc{Count: fc.Count, Radius: fc.Radius, Degrees: fc.Degrees}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, fc.Type)
	}
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	return shape, nil
}

// applyOutputConfig configures the fixture's encoder from the output
// section. Returns only the soft-fail host resolution error.
func applyOutputConfig(f *Fixture, oc config.OutputConfig) error {
	if oc.Protocol == "" || oc.Protocol == string(output.ProtocolNone) {
		return nil
	}

	p := output.Protocol(oc.Protocol)
	if err := output.ValidateProtocol(p); err != nil {
		return err
	}

	switch p {
	case output.ProtocolArtNet, output.ProtocolSACN:
		f.SetUniverse(oc.Universe)
	case output.ProtocolOPC:
		f.SetChannel(oc.Channel)
	case output.ProtocolDDP:
		f.SetDataOffset(oc.DataOffset)
	case output.ProtocolKiNET:
		f.SetKinetPort(oc.Port)
	}
	if oc.Brightness > 0 {
		f.SetBrightness(oc.Brightness)
	}
	if oc.Enabled != nil {
		f.SetEnabled(*oc.Enabled)
	}

	if err := f.SetProtocol(p); err != nil {
		return err
	}
	if oc.Host == "" {
		return nil
	}
	return f.SetHost(oc.Host)
}
