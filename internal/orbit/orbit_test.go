package orbit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestComputeElementsCircularOrbit(t *testing.T) {
	mu := 3.986004418e5 // km^3/s^2, Earth-like
	r := r2.Vec{X: 7000, Y: 0}
	speed := math.Sqrt(mu / 7000)
	v := r2.Vec{X: 0, Y: speed}

	el := ComputeElements(r, v, mu)
	if !floats.EqualWithinAbs(el.Eccentricity, 0, 1e-6) {
		t.Fatalf("expected circular orbit, got e=%f", el.Eccentricity)
	}
	if !floats.EqualWithinAbs(el.SemiMajorAxis, 7000, 1e-3) {
		t.Fatalf("expected a=7000, got %f", el.SemiMajorAxis)
	}
	if el.Direction != AntiClockwise {
		t.Fatalf("expected anticlockwise direction")
	}
}

func TestOrbitRoundTripAfterOnePeriod(t *testing.T) {
	mu := 3.986004418e5
	r := r2.Vec{X: 8000, Y: 0}
	v := r2.Vec{X: 0, Y: 6.5}

	conic := NewConic(r, v, mu, 0)
	period, ok := conic.Period(mu)
	if !ok {
		t.Fatalf("expected elliptical orbit")
	}

	p0 := NewPoint(conic, 0)
	p1 := NewPoint(conic, period)

	if !floats.EqualWithinAbs(p0.Position.X, p1.Position.X, 1e-3*math.Abs(p0.Position.X)+1e-2) {
		t.Fatalf("position.X did not round-trip: %f vs %f", p0.Position.X, p1.Position.X)
	}
	if !floats.EqualWithinAbs(p0.Position.Y, p1.Position.Y, 1e-3*math.Abs(p0.Position.Y)+1e-2) {
		t.Fatalf("position.Y did not round-trip: %f vs %f", p0.Position.Y, p1.Position.Y)
	}
	if !floats.EqualWithinAbs(p0.Velocity.X, p1.Velocity.X, 1e-3*math.Abs(p0.Velocity.X)+1e-4) {
		t.Fatalf("velocity.X did not round-trip: %f vs %f", p0.Velocity.X, p1.Velocity.X)
	}
}

func TestSolveEccentricAnomalyMatchesKeplerEquation(t *testing.T) {
	e := 0.6
	M := 1.2
	E := SolveEccentricAnomaly(M, e)
	residual := E - e*math.Sin(E) - M
	if math.Abs(residual) > 1e-9 {
		t.Fatalf("Kepler equation residual too large: %g", residual)
	}
}

func TestSolveHyperbolicAnomalyMatchesKeplerEquation(t *testing.T) {
	e := 1.5
	M := 2.0
	H := SolveHyperbolicAnomaly(M, e)
	residual := e*math.Sinh(H) - H - M
	if math.Abs(residual) > 1e-9 {
		t.Fatalf("hyperbolic Kepler equation residual too large: %g", residual)
	}
}

func TestSphereOfInfluence(t *testing.T) {
	// Earth around Sun: a ~ 1.496e8 km, m ~ 5.972e24 kg, M(sun) ~ 1.989e30 kg.
	soi := SphereOfInfluence(1.496e8, 5.972e24, 1.989e30)
	if soi < 9e5 || soi > 1e6 {
		t.Fatalf("expected Earth SOI near 9.25e5 km, got %f", soi)
	}
}

func TestEnergyConservationAlongOrbit(t *testing.T) {
	mu := 3.986004418e5
	r := r2.Vec{X: 7500, Y: 0}
	v := r2.Vec{X: 1.0, Y: 7.0}
	conic := NewConic(r, v, mu, 0)

	energyAt := func(tt float64) float64 {
		p := NewPoint(conic, tt)
		rNorm := math.Hypot(p.Position.X, p.Position.Y)
		vNorm2 := p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y
		return vNorm2/2 - mu/rNorm
	}

	e0 := energyAt(0)
	period, _ := conic.Period(mu)
	for i := 1; i <= 8; i++ {
		e := energyAt(period * float64(i) / 8)
		if !floats.EqualWithinAbs(e, e0, 1e-6*math.Abs(e0)) {
			t.Fatalf("energy not conserved at sample %d: %g vs %g", i, e, e0)
		}
	}
}
