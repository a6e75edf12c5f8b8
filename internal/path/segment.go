// Package path implements the piecewise-segment trajectory model: the
// Keplerian (Orbit), finite-burn (Burn), attitude-only (Turn) and
// homing (Guidance) segment types, and the Path container that holds an
// entity's ordered, temporally-contiguous sequence of them. Segments
// are a tagged union rather than an interface hierarchy -- the design
// note's explicit preference -- so hot operations (PositionAtTime,
// EndPoint) are a flat switch over one compact struct.
package path

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind is the tag of a Segment.
type Kind int

const (
	KindOrbit Kind = iota
	KindBurn
	KindTurn
	KindGuidance
)

func (k Kind) String() string {
	switch k {
	case KindOrbit:
		return "Orbit"
	case KindBurn:
		return "Burn"
	case KindTurn:
		return "Turn"
	case KindGuidance:
		return "Guidance"
	default:
		return "Unknown"
	}
}

// Segment is one piece of a Path. Exactly one of the typed fields is
// non-nil, selected by Kind.
type Segment struct {
	Kind     Kind
	Orbit    *OrbitSegment
	Burn     *BurnSegment
	Turn     *TurnSegment
	Guidance *GuidanceSegment
}

// NewOrbit wraps an OrbitSegment as a Segment.
func NewOrbit(s OrbitSegment) Segment { return Segment{Kind: KindOrbit, Orbit: &s} }

// NewBurn wraps a BurnSegment as a Segment.
func NewBurn(s BurnSegment) Segment { return Segment{Kind: KindBurn, Burn: &s} }

// NewTurn wraps a TurnSegment as a Segment.
func NewTurn(s TurnSegment) Segment { return Segment{Kind: KindTurn, Turn: &s} }

// NewGuidance wraps a GuidanceSegment as a Segment.
func NewGuidance(s GuidanceSegment) Segment { return Segment{Kind: KindGuidance, Guidance: &s} }

// StartTime returns the segment's absolute start time.
func (s Segment) StartTime() float64 {
	switch s.Kind {
	case KindOrbit:
		return s.Orbit.StartTime()
	case KindBurn:
		return s.Burn.StartTime
	case KindTurn:
		return s.Turn.StartTime
	case KindGuidance:
		if len(s.Guidance.Points) == 0 {
			return 0
		}
		return s.Guidance.Points[0].Time
	default:
		panic(fmt.Sprintf("path: unknown segment kind %v", s.Kind))
	}
}

// EndTime returns the segment's absolute end time.
func (s Segment) EndTime() float64 {
	switch s.Kind {
	case KindOrbit:
		return s.Orbit.EndTime()
	case KindBurn:
		return s.Burn.EndPoint().Time
	case KindTurn:
		return s.Turn.EndTime()
	case KindGuidance:
		return s.Guidance.EndPoint().Time
	default:
		panic(fmt.Sprintf("path: unknown segment kind %v", s.Kind))
	}
}

// Duration returns EndTime - StartTime.
func (s Segment) Duration() float64 {
	return s.EndTime() - s.StartTime()
}

// ContainsTime reports whether t lies in this segment's half-open
// interval [start, end).
func (s Segment) ContainsTime(t float64) bool {
	return t >= s.StartTime() && t < s.EndTime()
}

// PositionAtTime and VelocityAtTime sample the segment's parent-relative
// state at absolute time t.
func (s Segment) PositionAtTime(t float64) r2.Vec {
	switch s.Kind {
	case KindOrbit:
		return s.Orbit.PositionAtTime(t)
	case KindBurn:
		return s.Burn.PointAtTime(t).Position
	case KindTurn:
		return s.Turn.PositionAtTime(t)
	case KindGuidance:
		return guidancePositionAtTime(*s.Guidance, t)
	default:
		panic(fmt.Sprintf("path: unknown segment kind %v", s.Kind))
	}
}

func (s Segment) VelocityAtTime(t float64) r2.Vec {
	switch s.Kind {
	case KindOrbit:
		return s.Orbit.VelocityAtTime(t)
	case KindBurn:
		return s.Burn.PointAtTime(t).Velocity
	case KindTurn:
		return s.Turn.VelocityAtTime(t)
	case KindGuidance:
		_, v := guidanceStateAtTime(*s.Guidance, t)
		return v
	default:
		panic(fmt.Sprintf("path: unknown segment kind %v", s.Kind))
	}
}

func guidancePositionAtTime(s GuidanceSegment, t float64) r2.Vec {
	p, _ := guidanceStateAtTime(s, t)
	return p
}

func guidanceStateAtTime(s GuidanceSegment, t float64) (r2.Vec, r2.Vec) {
	pts := s.Points
	if len(pts) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	if t <= pts[0].Time {
		return pts[0].Position, pts[0].Velocity
	}
	last := pts[len(pts)-1]
	if t >= last.Time {
		return last.Position, last.Velocity
	}
	lo, hi := 0, len(pts)-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if pts[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	a, b := pts[lo], pts[hi]
	frac := (t - a.Time) / (b.Time - a.Time)
	pos := r2.Add(a.Position, r2.Scale(frac, r2.Sub(b.Position, a.Position)))
	vel := r2.Add(a.Velocity, r2.Scale(frac, r2.Sub(b.Velocity, a.Velocity)))
	return pos, vel
}

// Mass returns the current total mass of the vessel following this
// segment, where applicable (burns and guidance report their terminal
// point's mass; orbit segments report OrbitingMass; turn segments carry
// no mass and report 0).
func (s Segment) Mass() float64 {
	switch s.Kind {
	case KindBurn:
		return s.Burn.EndPoint().Mass()
	case KindGuidance:
		return s.Guidance.EndPoint().Mass()
	case KindTurn:
		return 0
	default:
		return s.Orbit.OrbitingMass
	}
}

// IsOrbit, IsBurn, IsTurn, IsGuidance are convenience predicates.
func (s Segment) IsOrbit() bool    { return s.Kind == KindOrbit }
func (s Segment) IsBurn() bool     { return s.Kind == KindBurn }
func (s Segment) IsTurn() bool     { return s.Kind == KindTurn }
func (s Segment) IsGuidance() bool { return s.Kind == KindGuidance }
