package output

// OPC packet constants.
const (
	opcCommandSetPixels = 0
	opcHeaderSize       = 4
)

// OPCEncoder renders Open Pixel Control set-pixel messages for one
// channel.
type OPCEncoder struct {
	encoderBase
	channel int
}

// NewOPC builds an OPC encoder from an index buffer and a channel
// number.
func NewOPC(indices []int, channel int) *OPCEncoder {
	return &OPCEncoder{
		encoderBase: newEncoderBase(ProtocolOPC, indices),
		channel:     channel,
	}
}

// Channel returns the target OPC channel.
func (e *OPCEncoder) Channel() int { return e.channel }

// SetChannel retargets the encoder in place.
func (e *OPCEncoder) SetChannel(channel int) { e.channel = channel }

// Frame renders one set-pixels message.
func (e *OPCEncoder) Frame(colors []uint32) []byte {
	length := e.dataLength()
	pkt := make([]byte, 0, opcHeaderSize+length)
	pkt = append(pkt,
		byte(e.channel),
		opcCommandSetPixels,
		byte(length>>8), byte(length),
	)
	return e.appendRGB(pkt, colors)
}
