package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Type distinguishes the two conic families this patched-conic core
// supports. Parabolic orbits (e == 1 exactly) are treated as the
// elliptical-vs-hyperbolic boundary and classified as ellipses; they are
// measure-zero in practice and the reference implementation does not
// special-case them either.
type Type int

const (
	Ellipse Type = iota
	Hyperbola
)

// Elements are the classical orbital elements derived from a
// parent-relative state vector, computed the way orbit.go's Elements()
// derives RV2COE for the teacher's 3-D case, specialized to the plane.
type Elements struct {
	SemiMajorAxis       float64
	Eccentricity        float64
	ArgumentOfPeriapsis float64
	Direction           Direction
	Type                Type
}

// ComputeElements derives classical elements from parent-relative
// position r, velocity v and parent gravitational parameter mu (mu =
// G*M).
func ComputeElements(r, v r2.Vec, mu float64) Elements {
	rNorm := math.Hypot(r.X, r.Y)
	v2 := v.X*v.X + v.Y*v.Y
	energy := v2/2 - mu/rNorm
	a := -mu / (2 * energy)

	rv := r.X*v.X + r.Y*v.Y
	eX := ((v2-mu/rNorm)*r.X - rv*v.X) / mu
	eY := ((v2-mu/rNorm)*r.Y - rv*v.Y) / mu
	e := math.Hypot(eX, eY)

	argP := math.Atan2(eY, eX)
	dir := DirectionFromState(r, v)

	t := Ellipse
	if e > 1 {
		t = Hyperbola
	}

	return Elements{
		SemiMajorAxis:       a,
		Eccentricity:        e,
		ArgumentOfPeriapsis: argP,
		Direction:           dir,
		Type:                t,
	}
}

// TrueAnomalyOfState returns the true anomaly of parent-relative state
// (r, v) given the elements already computed from that same state.
func (el Elements) TrueAnomalyOfState(r r2.Vec) float64 {
	angle := math.Atan2(r.Y, r.X) - el.ArgumentOfPeriapsis
	return angle * el.Direction.Sign()
}

// Period returns the orbital period (elliptical orbits only) via
// Kepler's third law: 2*pi*sqrt(a^3/mu).
func (el Elements) Period(mu float64) (float64, bool) {
	if el.Type != Ellipse {
		return 0, false
	}
	return 2 * math.Pi * math.Sqrt(el.SemiMajorAxis*el.SemiMajorAxis*el.SemiMajorAxis/mu), true
}

// SemiMinorAxis returns b for an ellipse (a*sqrt(1-e^2)) or the
// imaginary semi-axis magnitude for a hyperbola (|a|*sqrt(e^2-1)).
func (el Elements) SemiMinorAxis() float64 {
	if el.Type == Ellipse {
		return el.SemiMajorAxis * math.Sqrt(1-el.Eccentricity*el.Eccentricity)
	}
	return math.Abs(el.SemiMajorAxis) * math.Sqrt(el.Eccentricity*el.Eccentricity-1)
}

// RadiusAtTrueAnomaly returns the orbital radius at true anomaly theta.
func (el Elements) RadiusAtTrueAnomaly(theta float64) float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity*el.Eccentricity) / (1 + el.Eccentricity*math.Cos(theta))
}

// StateAtTrueAnomaly returns parent-relative position and velocity at
// true anomaly theta, for parent gravitational parameter mu.
func (el Elements) StateAtTrueAnomaly(theta, mu float64) (r2.Vec, r2.Vec) {
	a := el.SemiMajorAxis
	e := el.Eccentricity
	h := math.Sqrt(mu * a * (1 - e*e))
	rMag := el.RadiusAtTrueAnomaly(theta)
	vr := (mu / h) * e * math.Sin(theta)
	vt := (mu / h) * (1 + e*math.Cos(theta))

	inertialAngle := el.ArgumentOfPeriapsis + el.Direction.Sign()*theta
	s, c := math.Sincos(inertialAngle)
	rHat := r2.Vec{X: c, Y: s}
	thetaHatCCW := r2.Vec{X: -s, Y: c}

	pos := r2.Scale(rMag, rHat)
	vel := r2.Add(r2.Scale(vr, rHat), r2.Scale(el.Direction.Sign()*vt, thetaHatCCW))
	return pos, vel
}

// SphereOfInfluence returns a*(m/M)^(2/5), the radius within which this
// orbitable's own gravity dominates that of its grandparent, where m is
// this body's mass and M the grandparent's. Returns +Inf if there is no
// grandparent (root body).
func SphereOfInfluence(semiMajorAxis, bodyMass, grandparentMass float64) float64 {
	if grandparentMass <= 0 {
		return math.Inf(1)
	}
	return semiMajorAxis * math.Pow(bodyMass/grandparentMass, 2.0/5.0)
}
