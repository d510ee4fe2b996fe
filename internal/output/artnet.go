package output

// ArtNet packet constants.
const (
	artNetOpDmx       = 0x5000
	artNetProtocolVer = 14
	artNetHeaderSize  = 18
)

var artNetID = []byte("Art-Net\x00")

// ArtNetEncoder renders ArtDmx packets for one universe.
type ArtNetEncoder struct {
	encoderBase
	universe int
}

// NewArtNet builds an Art-Net encoder from an index buffer and a
// universe number.
func NewArtNet(indices []int, universe int) *ArtNetEncoder {
	return &ArtNetEncoder{
		encoderBase: newEncoderBase(ProtocolArtNet, indices),
		universe:    universe,
	}
}

// Universe returns the target universe number.
func (e *ArtNetEncoder) Universe() int { return e.universe }

// SetUniverse retargets the encoder in place.
func (e *ArtNetEncoder) SetUniverse(universe int) { e.universe = universe }

// Frame renders one ArtDmx packet.
func (e *ArtNetEncoder) Frame(colors []uint32) []byte {
	length := e.dataLength()
	pkt := make([]byte, 0, artNetHeaderSize+length)
	pkt = append(pkt, artNetID...)
	pkt = append(pkt,
		byte(artNetOpDmx&0xff), byte(artNetOpDmx>>8), // opcode, little-endian
		0, artNetProtocolVer, // protocol version, big-endian
		0,                                     // sequence disabled
		0,                                     // physical port
		byte(e.universe), byte(e.universe>>8), // universe, little-endian
		byte(length>>8), byte(length), // data length, big-endian
	)
	return e.appendRGB(pkt, colors)
}
