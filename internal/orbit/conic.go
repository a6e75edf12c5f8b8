package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Conic is the analytic model of a single patched-conic arc: classical
// elements plus the parent gravitational parameter needed to map between
// true anomaly and time. It corresponds to the reference implementation's
// Conic trait, collapsed into a concrete type since Go prefers a single
// struct with a Type field over Ellipse/Hyperbola implementations of a
// shared interface for data this small and this hot-path.
type Conic struct {
	Elements
	Mu float64
	// PeriapsisTime is the absolute simulation time of a periapsis
	// passage, the time origin TimeSincePeriapsis and MeanAnomaly are
	// measured from. For an inbound hyperbola it lies after the orbit's
	// start.
	PeriapsisTime float64
}

// NewConic builds a Conic from a parent-relative state and the parent's
// gravitational parameter.
func NewConic(r, v r2.Vec, mu float64, periapsisTime float64) Conic {
	return Conic{Elements: ComputeElements(r, v, mu), Mu: mu, PeriapsisTime: periapsisTime}
}

// NewConicFromStateAtTime builds a Conic the way a post-maneuver segment
// fit works: the state (r, v) is known at absolute time atTime rather
// than at periapsis, so the periapsis time is derived by converting the
// state's true anomaly to a time-since-periapsis and subtracting it back
// off atTime.
func NewConicFromStateAtTime(r, v r2.Vec, mu, atTime float64) Conic {
	el := ComputeElements(r, v, mu)
	theta := el.TrueAnomalyOfState(r)
	c := Conic{Elements: el, Mu: mu}
	c.PeriapsisTime = atTime - c.TimeSincePeriapsisAtTrueAnomaly(theta)
	return c
}

// MeanMotion returns n = sqrt(mu/|a|^3).
func (c Conic) MeanMotion() float64 {
	a := math.Abs(c.SemiMajorAxis)
	return math.Sqrt(c.Mu / (a * a * a))
}

// TimeSincePeriapsisAtTrueAnomaly converts a true anomaly to the elapsed
// time since periapsis passage. For an ellipse this is the time since the
// most recent passage, in [0, period); for a hyperbola it is negative on
// the inbound arm (theta < 0).
func (c Conic) TimeSincePeriapsisAtTrueAnomaly(theta float64) float64 {
	n := c.MeanMotion()
	if c.Type == Ellipse {
		E := EccentricFromTrueAnomaly(theta, c.Eccentricity)
		M := E - c.Eccentricity*math.Sin(E)
		if M < 0 {
			M += 2 * math.Pi
		}
		return M / n
	}
	H := HyperbolicFromTrueAnomaly(theta, c.Eccentricity)
	M := c.Eccentricity*math.Sinh(H) - H
	return M / n
}

// TrueAnomalyAtTimeSincePeriapsis is the inverse of
// TimeSincePeriapsisAtTrueAnomaly.
func (c Conic) TrueAnomalyAtTimeSincePeriapsis(dt float64) float64 {
	n := c.MeanMotion()
	M := n * dt
	if c.Type == Ellipse {
		E := SolveEccentricAnomaly(M, c.Eccentricity)
		return TrueAnomalyFromEccentric(E, c.Eccentricity)
	}
	H := SolveHyperbolicAnomaly(M, c.Eccentricity)
	return TrueAnomalyFromHyperbolic(H, c.Eccentricity)
}

// TrueAnomalyAtTime converts an absolute simulation time to a true
// anomaly, reducing through time-since-periapsis first.
func (c Conic) TrueAnomalyAtTime(t float64) float64 {
	dt := t - c.PeriapsisTime
	if c.Type == Ellipse {
		if period, ok := c.Period(c.Mu); ok && period > 0 {
			dt = math.Mod(dt, period)
			if dt < 0 {
				dt += period
			}
		}
	}
	return c.TrueAnomalyAtTimeSincePeriapsis(dt)
}

// StateAtTime returns the parent-relative position and velocity at
// absolute simulation time t.
func (c Conic) StateAtTime(t float64) (r2.Vec, r2.Vec) {
	theta := c.TrueAnomalyAtTime(t)
	return c.StateAtTrueAnomaly(theta, c.Mu)
}

// Apoapsis returns the apoapsis radius (elliptical orbits only).
func (c Conic) Apoapsis() (float64, bool) {
	if c.Type != Ellipse {
		return 0, false
	}
	return c.SemiMajorAxis * (1 + c.Eccentricity), true
}

// Periapsis returns the periapsis radius.
func (c Conic) Periapsis() float64 {
	return c.SemiMajorAxis * (1 - c.Eccentricity)
}
