package output

import (
	"fmt"
	"net"
	"strconv"
)

// Encoder renders the global colour buffer into protocol packets for
// one fixture.
//
// Encoders are built by NewEncoder from the fixture's current index
// buffer; a change in point count or index assignment requires a full
// rebuild, while enabled, brightness, host and the protocol addressing
// field mutate the existing encoder in place.
type Encoder interface {
	// Protocol returns the encoder's wire protocol.
	Protocol() Protocol

	// Enabled reports whether the encoder should be transmitted.
	Enabled() bool
	SetEnabled(enabled bool)

	// Brightness is a master scale factor in [0, 1] applied to every
	// channel at frame time.
	Brightness() float32
	SetBrightness(brightness float32)

	// SetAddress resolves host to the encoder's destination address.
	// Resolution failure is recoverable and leaves the previous
	// address, if any, untouched.
	SetAddress(host string) error

	// Addr returns the resolved destination, or nil if none is set.
	Addr() *net.UDPAddr

	// Indices returns the encoder's index buffer: one global
	// colour-buffer index per fixture point, in point order.
	Indices() []int

	// Frame renders the colour buffer (0xRRGGBB per global index) into
	// one protocol packet. Indices outside the buffer render black.
	Frame(colors []uint32) []byte
}

// NewEncoder constructs the encoder for a protocol from the fixture's
// index buffer and the protocol's addressing field (Art-Net/sACN
// universe, OPC channel, DDP data offset, KiNET port). Requesting an
// encoder for ProtocolNone or an unrecognised protocol is a caller bug.
func NewEncoder(p Protocol, indices []int, addressing int) Encoder {
	switch p {
	case ProtocolArtNet:
		return NewArtNet(indices, addressing)
	case ProtocolSACN:
		return NewSACN(indices, addressing)
	case ProtocolOPC:
		return NewOPC(indices, addressing)
	case ProtocolDDP:
		return NewDDP(indices, addressing)
	case ProtocolKiNET:
		return NewKiNET(indices, addressing)
	default:
		panic(fmt.Sprintf("output: no encoder for protocol %q", p))
	}
}

// encoderBase carries the state shared by every protocol encoder.
type encoderBase struct {
	protocol   Protocol
	indices    []int
	enabled    bool
	brightness float32
	addr       *net.UDPAddr
	port       int
}

func newEncoderBase(p Protocol, indices []int) encoderBase {
	return encoderBase{
		protocol:   p,
		indices:    append([]int(nil), indices...),
		enabled:    true,
		brightness: 1,
		port:       DefaultPort(p),
	}
}

func (e *encoderBase) Protocol() Protocol { return e.protocol }

func (e *encoderBase) Enabled() bool { return e.enabled }

func (e *encoderBase) SetEnabled(enabled bool) { e.enabled = enabled }

func (e *encoderBase) Brightness() float32 { return e.brightness }

func (e *encoderBase) SetBrightness(brightness float32) {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	e.brightness = brightness
}

func (e *encoderBase) SetAddress(host string) error {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(e.port)))
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnresolvedHost, host, err)
	}
	e.addr = addr
	return nil
}

func (e *encoderBase) Addr() *net.UDPAddr { return e.addr }

func (e *encoderBase) Indices() []int { return e.indices }

// appendRGB renders the encoder's points as brightness-scaled RGB
// triplets. Indices outside the colour buffer render black.
func (e *encoderBase) appendRGB(dst []byte, colors []uint32) []byte {
	for _, index := range e.indices {
		var c uint32
		if index >= 0 && index < len(colors) {
			c = colors[index]
		}
		dst = append(dst,
			e.scale(byte(c>>16)),
			e.scale(byte(c>>8)),
			e.scale(byte(c)),
		)
	}
	return dst
}

func (e *encoderBase) scale(v byte) byte {
	return byte(float32(v) * e.brightness)
}

// dataLength returns the RGB payload size in bytes.
func (e *encoderBase) dataLength() int {
	return 3 * len(e.indices)
}
