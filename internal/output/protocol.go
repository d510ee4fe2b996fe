package output

import "fmt"

// Protocol identifies a fixture's wire protocol.
type Protocol string

// Protocol constants.
const (
	ProtocolNone   Protocol = "none"
	ProtocolArtNet Protocol = "artnet"
	ProtocolSACN   Protocol = "sacn"
	ProtocolOPC    Protocol = "opc"
	ProtocolDDP    Protocol = "ddp"
	ProtocolKiNET  Protocol = "kinet"
)

// AllProtocols returns all valid protocol values, including none.
func AllProtocols() []Protocol {
	return []Protocol{
		ProtocolNone, ProtocolArtNet, ProtocolSACN,
		ProtocolOPC, ProtocolDDP, ProtocolKiNET,
	}
}

var validProtocols map[Protocol]struct{}

func init() {
	validProtocols = make(map[Protocol]struct{}, len(AllProtocols()))
	for _, p := range AllProtocols() {
		validProtocols[p] = struct{}{}
	}
}

// ValidateProtocol checks that a protocol value is recognised.
func ValidateProtocol(p Protocol) error {
	if _, ok := validProtocols[p]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidProtocol, p)
	}
	return nil
}

// DefaultPort returns the conventional UDP port for a protocol.
func DefaultPort(p Protocol) int {
	switch p {
	case ProtocolArtNet:
		return 6454
	case ProtocolSACN:
		return 5568
	case ProtocolOPC:
		return 7890
	case ProtocolDDP:
		return 4048
	case ProtocolKiNET:
		return 6038
	default:
		return 0
	}
}
