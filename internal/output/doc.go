// Package output builds and parameterises the protocol encoders that
// address a fixture's points to real hardware.
//
// An encoder is constructed from an index buffer (the fixture's global
// colour-buffer indices, in point order) and one protocol-specific
// addressing field. It exposes mutable enabled/brightness state, host
// resolution, and Frame, which renders the global colour buffer into a
// protocol packet. Socket transmission is the caller's concern.
package output
