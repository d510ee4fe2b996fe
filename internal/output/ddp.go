package output

// DDP packet constants.
const (
	ddpFlagsPush   = 0x41 // version 1, push flag
	ddpDataTypeRGB = 0x01
	ddpOutputID    = 0x01
	ddpHeaderSize  = 10
)

// DDPEncoder renders Distributed Display Protocol push packets.
type DDPEncoder struct {
	encoderBase
	dataOffset int
}

// NewDDP builds a DDP encoder from an index buffer and a byte offset
// into the remote display's data space.
func NewDDP(indices []int, dataOffset int) *DDPEncoder {
	return &DDPEncoder{
		encoderBase: newEncoderBase(ProtocolDDP, indices),
		dataOffset:  dataOffset,
	}
}

// DataOffset returns the destination data offset in bytes.
func (e *DDPEncoder) DataOffset() int { return e.dataOffset }

// SetDataOffset retargets the encoder in place.
func (e *DDPEncoder) SetDataOffset(offset int) { e.dataOffset = offset }

// Frame renders one push packet.
func (e *DDPEncoder) Frame(colors []uint32) []byte {
	length := e.dataLength()
	pkt := make([]byte, 0, ddpHeaderSize+length)
	pkt = append(pkt,
		ddpFlagsPush,
		0, // sequence disabled
		ddpDataTypeRGB,
		ddpOutputID,
		byte(e.dataOffset>>24), byte(e.dataOffset>>16), byte(e.dataOffset>>8), byte(e.dataOffset),
		byte(length>>8), byte(length),
	)
	return e.appendRGB(pkt, colors)
}
