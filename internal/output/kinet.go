package output

// KiNET packet constants.
const (
	kinetMagic       = 0x4adc0104
	kinetVersion     = 0x0100
	kinetTypePortOut = 0x0108
	kinetHeaderSize  = 24
)

// KiNETEncoder renders KiNET v2 port-out packets for one physical
// power supply port.
type KiNETEncoder struct {
	encoderBase
	kinetPort int
}

// NewKiNET builds a KiNET encoder from an index buffer and a power
// supply port number.
func NewKiNET(indices []int, kinetPort int) *KiNETEncoder {
	return &KiNETEncoder{
		encoderBase: newEncoderBase(ProtocolKiNET, indices),
		kinetPort:   kinetPort,
	}
}

// KinetPort returns the target power supply port.
func (e *KiNETEncoder) KinetPort() int { return e.kinetPort }

// SetKinetPort retargets the encoder in place.
func (e *KiNETEncoder) SetKinetPort(port int) { e.kinetPort = port }

// Frame renders one port-out packet.
func (e *KiNETEncoder) Frame(colors []uint32) []byte {
	length := e.dataLength()
	pkt := make([]byte, 0, kinetHeaderSize+length)
	pkt = append(pkt,
		// Header fields are little-endian.
		byte(kinetMagic&0xff), byte(kinetMagic>>8&0xff), byte(kinetMagic>>16&0xff), byte(kinetMagic>>24),
		byte(kinetVersion&0xff), byte(kinetVersion>>8),
		byte(kinetTypePortOut&0xff), byte(kinetTypePortOut>>8),
		0, 0, 0, 0, // sequence disabled
		0, 0, 0, 0, // universe
		byte(e.kinetPort),
		0,    // padding
		0, 0, // flags
		byte(length), byte(length>>8),
		0, 0, // start code
	)
	return e.appendRGB(pkt, colors)
}
