package output

// sACN (E1.31) packet constants.
const (
	sacnRootPreamble  = 0x0010
	sacnRootPostamble = 0x0000
	sacnRootVector    = 0x00000004 // VECTOR_ROOT_E131_DATA
	sacnFramingVector = 0x00000002 // VECTOR_E131_DATA_PACKET
	sacnDMPVector     = 0x02       // VECTOR_DMP_SET_PROPERTY
	sacnHeaderSize    = 126
)

var sacnPacketID = []byte{
	'A', 'S', 'C', '-', 'E', '1', '.', '1', '7', 0, 0, 0,
}

// SACNEncoder renders E1.31 data packets for one universe.
type SACNEncoder struct {
	encoderBase
	universe int
}

// NewSACN builds a streaming-ACN encoder from an index buffer and a
// universe number.
func NewSACN(indices []int, universe int) *SACNEncoder {
	return &SACNEncoder{
		encoderBase: newEncoderBase(ProtocolSACN, indices),
		universe:    universe,
	}
}

// Universe returns the target universe number.
func (e *SACNEncoder) Universe() int { return e.universe }

// SetUniverse retargets the encoder in place.
func (e *SACNEncoder) SetUniverse(universe int) { e.universe = universe }

// Frame renders one E1.31 data packet: root layer, framing layer and
// DMP layer followed by a start code and the channel data.
func (e *SACNEncoder) Frame(colors []uint32) []byte {
	// Property values include the DMX start code.
	propCount := e.dataLength() + 1
	pkt := make([]byte, 0, sacnHeaderSize+propCount-1)

	// Root layer.
	rootLen := flagsAndLength(110 + propCount)
	pkt = append(pkt, byte(sacnRootPreamble>>8), byte(sacnRootPreamble))
	pkt = append(pkt, byte(sacnRootPostamble>>8), byte(sacnRootPostamble))
	pkt = append(pkt, sacnPacketID...)
	pkt = append(pkt, byte(rootLen>>8), byte(rootLen))
	pkt = append(pkt, 0, 0, 0, sacnRootVector)
	pkt = append(pkt, make([]byte, 16)...) // sender CID, zeroed

	// Framing layer.
	framingLen := flagsAndLength(88 + propCount)
	pkt = append(pkt, byte(framingLen>>8), byte(framingLen))
	pkt = append(pkt, 0, 0, 0, sacnFramingVector)
	pkt = append(pkt, make([]byte, 64)...) // source name, zeroed
	pkt = append(pkt,
		100,  // priority
		0, 0, // synchronisation address
		0, // sequence disabled
		0, // options
		byte(e.universe>>8), byte(e.universe),
	)

	// DMP layer.
	dmpLen := flagsAndLength(10 + propCount)
	pkt = append(pkt, byte(dmpLen>>8), byte(dmpLen))
	pkt = append(pkt,
		sacnDMPVector,
		0xa1, // address type and data type
		0, 0, // first property address
		0, 1, // address increment
		byte(propCount>>8), byte(propCount),
		0, // DMX start code
	)
	return e.appendRGB(pkt, colors)
}

// flagsAndLength packs an E1.31 PDU length with the 0x7 flags nibble.
func flagsAndLength(length int) int {
	return 0x7000 | (length & 0x0fff)
}
