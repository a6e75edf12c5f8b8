package path

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
)

// OrbitSegment is an analytic Keplerian arc: a conic plus the absolute
// end time the following segment (if any) begins at.
type OrbitSegment struct {
	Parent       storage.Entity
	ParentMass   float64
	OrbitingMass float64
	Conic        orbit.Conic
	Start        orbit.Point
	Current      orbit.Point
	End          float64 // absolute end time
}

// NewOrbitSegment builds an orbit segment whose Start and Current point
// are both sampled at startTime.
func NewOrbitSegment(parent storage.Entity, parentMass, orbitingMass float64, conic orbit.Conic, startTime, endTime float64) OrbitSegment {
	p := orbit.NewPoint(conic, startTime)
	return OrbitSegment{
		Parent:       parent,
		ParentMass:   parentMass,
		OrbitingMass: orbitingMass,
		Conic:        conic,
		Start:        p,
		Current:      p,
		End:          endTime,
	}
}

func (s OrbitSegment) StartTime() float64 { return s.Start.Time }
func (s OrbitSegment) EndTime() float64   { return s.End }

func (s OrbitSegment) PositionAtTime(t float64) r2.Vec {
	p, _ := s.Conic.StateAtTime(t)
	return p
}

func (s OrbitSegment) VelocityAtTime(t float64) r2.Vec {
	_, v := s.Conic.StateAtTime(t)
	return v
}

// Advance moves Current forward by dt, returning the overshoot beyond
// End (zero or negative if it did not overshoot).
func (s *OrbitSegment) Advance(dt float64) float64 {
	target := s.Current.Time + dt
	overshoot := target - s.End
	if overshoot > 0 {
		target = s.End
	}
	s.Current = orbit.NewPoint(s.Conic, target)
	return overshoot
}

// IsFinished reports whether Current has reached End.
func (s OrbitSegment) IsFinished() bool {
	return s.Current.Time >= s.End
}
