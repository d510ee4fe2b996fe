package output

// FrameStats accumulates frame and byte counts per protocol between
// telemetry flushes. The output loop owns it; not safe for concurrent
// use.
type FrameStats struct {
	counts map[Protocol]frameCount
}

type frameCount struct {
	frames int
	bytes  int
}

// NewFrameStats returns an empty collector.
func NewFrameStats() *FrameStats {
	return &FrameStats{counts: make(map[Protocol]frameCount)}
}

// Record adds one sent frame of the given payload size.
func (s *FrameStats) Record(protocol Protocol, bytes int) {
	c := s.counts[protocol]
	c.frames++
	c.bytes += bytes
	s.counts[protocol] = c
}

// Flush reports the accumulated counts through fn, one call per
// protocol, and resets the collector. Protocols with no recorded
// frames produce no call.
func (s *FrameStats) Flush(fn func(protocol string, frames, bytes int)) {
	for p, c := range s.counts {
		fn(string(p), c.frames, c.bytes)
		delete(s.counts, p)
	}
}
