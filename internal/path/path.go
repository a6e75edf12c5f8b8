package path

import (
	"fmt"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
)

// Path is the ordered, non-empty sequence of motion segments for a
// moving entity, with a "current index" pointing at whichever segment
// contains the model's present time. Segments must be temporally
// contiguous: segment[i].EndTime() == segment[i+1].StartTime().
type Path struct {
	Segments     []Segment
	CurrentIndex int
}

// NewPath returns a Path containing a single starting segment.
func NewPath(first Segment) *Path {
	return &Path{Segments: []Segment{first}, CurrentIndex: 0}
}

// Append pushes a new segment, asserting contiguity with the prior end.
func (p *Path) Append(s Segment) error {
	if len(p.Segments) > 0 {
		last := p.Segments[len(p.Segments)-1]
		if !almostEqual(last.EndTime(), s.StartTime()) {
			return fmt.Errorf("path: segment discontinuity: prior end %g != new start %g", last.EndTime(), s.StartTime())
		}
	}
	p.Segments = append(p.Segments, s)
	return nil
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// CurrentSegment returns the segment at CurrentIndex.
func (p *Path) CurrentSegment() *Segment {
	if len(p.Segments) == 0 {
		return nil
	}
	return &p.Segments[p.CurrentIndex]
}

// EndSegment returns the last segment in the path.
func (p *Path) EndSegment() *Segment {
	if len(p.Segments) == 0 {
		return nil
	}
	return &p.Segments[len(p.Segments)-1]
}

// FutureSegmentAtTime returns the segment whose half-open interval
// contains t, searching from CurrentIndex forward.
func (p *Path) FutureSegmentAtTime(t float64) (*Segment, bool) {
	for i := p.CurrentIndex; i < len(p.Segments); i++ {
		if p.Segments[i].ContainsTime(t) {
			return &p.Segments[i], true
		}
	}
	if len(p.Segments) > 0 {
		last := len(p.Segments) - 1
		if t >= p.Segments[last].EndTime() {
			return &p.Segments[last], true
		}
	}
	return nil, false
}

// FutureSegmentStartingAtTime returns the segment that starts exactly
// at t, if any.
func (p *Path) FutureSegmentStartingAtTime(t float64) (*Segment, bool) {
	for i := p.CurrentIndex; i < len(p.Segments); i++ {
		if almostEqual(p.Segments[i].StartTime(), t) {
			return &p.Segments[i], true
		}
	}
	return nil, false
}

// RemoveSegmentsAfter drops all segments whose start is strictly after
// t. It does not truncate the straddling segment itself -- callers that
// need the straddling segment cut short (e.g. before appending a
// replacement burn at t) do that via the segment's own end-time field
// when they rebuild it, mirroring the reference implementation's
// two-step remove-then-append pattern used by StartBurn.
func (p *Path) RemoveSegmentsAfter(t float64) {
	i := 0
	for i < len(p.Segments) && p.Segments[i].StartTime() <= t {
		i++
	}
	p.Segments = p.Segments[:i]
	if p.CurrentIndex >= len(p.Segments) {
		p.CurrentIndex = len(p.Segments) - 1
	}
	if p.CurrentIndex < 0 {
		p.CurrentIndex = 0
	}
}

// Advance moves the path's current-segment cursor to absolute time
// `now`, spilling across segment boundaries as needed (looping, since a
// segment -- a turn in particular -- can have zero duration at the tail
// of a prediction) and refreshing the current Orbit segment's cached
// Current point so O(1) queries stay valid.
func (p *Path) Advance(now float64) {
	for p.CurrentIndex < len(p.Segments)-1 && now >= p.Segments[p.CurrentIndex].EndTime() {
		p.CurrentIndex++
	}
	seg := &p.Segments[p.CurrentIndex]
	if seg.Kind == KindOrbit {
		clamped := now
		if clamped > seg.Orbit.End {
			clamped = seg.Orbit.End
		}
		if clamped < seg.Orbit.Start.Time {
			clamped = seg.Orbit.Start.Time
		}
		seg.Orbit.Current = orbit.NewPoint(seg.Orbit.Conic, clamped)
	}
}
