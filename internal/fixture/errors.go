package fixture

import "errors"

// Domain errors for the fixture package.
var (
	// ErrInvalidConfig is returned when a fixture definition cannot be
	// built from configuration.
	ErrInvalidConfig = errors.New("fixture: invalid config")

	// ErrUnknownShape is returned for an unrecognised shape type in a
	// fixture definition.
	ErrUnknownShape = errors.New("fixture: unknown shape type")
)
