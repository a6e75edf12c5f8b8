package orbit

import "gonum.org/v1/gonum/spatial/r2"

// Point is a cached state sample inside an orbit segment: true anomaly,
// absolute time, time-since-periapsis, and the resulting parent-relative
// position/velocity. It corresponds 1:1 to the reference
// implementation's OrbitPoint.
type Point struct {
	Theta              float64
	Time               float64
	TimeSincePeriapsis float64
	Position           r2.Vec
	Velocity           r2.Vec
}

// NewPoint samples the conic at absolute time t.
func NewPoint(c Conic, t float64) Point {
	theta := c.TrueAnomalyAtTime(t)
	pos, vel := c.StateAtTrueAnomaly(theta, c.Mu)
	return Point{
		Theta:              theta,
		Time:               t,
		TimeSincePeriapsis: c.TimeSincePeriapsisAtTrueAnomaly(theta),
		Position:           pos,
		Velocity:           vel,
	}
}

// Next advances this point by dt along conic c, wrapping
// TimeSincePeriapsis across a periapsis passage for elliptical orbits
// (hyperbolic time-since-periapsis is monotonic and never wraps).
func (p Point) Next(c Conic, dt float64) Point {
	return NewPoint(c, p.Time+dt)
}

// IsAfter reports whether p occurs strictly after o in absolute time.
func (p Point) IsAfter(o Point) bool {
	return p.Time > o.Time
}
