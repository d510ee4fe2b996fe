package output

import "errors"

// Domain errors for the output package.
var (
	// ErrInvalidProtocol is returned when a protocol value is not recognised.
	ErrInvalidProtocol = errors.New("output: invalid protocol")

	// ErrUnresolvedHost is returned when a host cannot be resolved to a
	// network address. This is recoverable: the fixture disables its
	// output and the rest of the installation keeps running.
	ErrUnresolvedHost = errors.New("output: unresolved host")
)
