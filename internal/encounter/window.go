// Package encounter implements the bounding-window + bracketed-root-finding
// encounter predictor (next SOI entrance/exit) and the closest-approach
// proximity query, both specialized to the 2-D patched-conic model in
// internal/orbit. It is grounded on the teacher's celestial-mechanics
// numerical style (Newton/Halley/bisection root-finding over analytic
// orbit functions) rather than any single teacher file, since the
// teacher's own encounter handling is heliocentric-ephemeris based and
// does not need a bounding-window search.
package encounter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/numerical"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/vecmath"
)

// Window is a bounded time interval, expressed in absolute simulation
// time, within which an SOI intersection is geometrically possible.
type Window struct {
	Start float64
	End   float64
}

// thetaCrossingTolerance is the angular root-finding tolerance used when
// locating signed-distance-function threshold crossings.
const thetaCrossingTolerance = 1e-9

// closestPointOnEllipseOrbit returns the point on the ellipse described by
// el (focus at the origin, in the parent-centered frame el.StateAtTrueAnomaly
// also uses) closest to `point`, by rotating into the ellipse's own
// periapsis-aligned, center-origin frame where numerical.ClosestPointOnEllipse
// applies, then rotating the result back.
func closestPointOnEllipseOrbit(el orbit.Elements, point r2.Vec) r2.Vec {
	a := el.SemiMajorAxis
	b := el.SemiMinorAxis()
	c := a * el.Eccentricity // focus-to-center distance

	local := vecmath.Rotate(point, -el.ArgumentOfPeriapsis)
	shifted := r2.Vec{X: local.X + c, Y: local.Y}
	ex, ey, _ := numerical.ClosestPointOnEllipse(a, b, shifted.X, shifted.Y)
	back := r2.Vec{X: ex - c, Y: ey}
	return vecmath.Rotate(back, el.ArgumentOfPeriapsis)
}

// insideEllipseOrbit reports whether point (parent-centered frame) lies
// within the ellipse described by el.
func insideEllipseOrbit(el orbit.Elements, point r2.Vec) bool {
	a := el.SemiMajorAxis
	b := el.SemiMinorAxis()
	c := a * el.Eccentricity
	local := vecmath.Rotate(point, -el.ArgumentOfPeriapsis)
	x, y := local.X+c, local.Y
	return (x*x)/(a*a)+(y*y)/(b*b) <= 1
}

// signedDistanceToSiblingEllipse is the SDF(theta) of §4.7: the distance
// from the self conic's position at true anomaly theta to the closest
// point on the sibling ellipse, positive when self is inside the sibling
// ellipse's enclosed region.
func signedDistanceToSiblingEllipse(self orbit.Conic, sibling orbit.Conic) func(theta float64) float64 {
	return func(theta float64) float64 {
		pos, _ := self.StateAtTrueAnomaly(theta, self.Mu)
		closest := closestPointOnEllipseOrbit(sibling.Elements, pos)
		d := vecmath.Norm(r2.Sub(pos, closest))
		if insideEllipseOrbit(sibling.Elements, pos) {
			return d
		}
		return -d
	}
}

// thetaToTime converts a true anomaly on `self` to absolute simulation
// time, via the same time-since-periapsis convention internal/orbit uses
// internally for StateAtTime.
func thetaToTime(self orbit.Conic, theta float64) float64 {
	return self.PeriapsisTime + self.TimeSincePeriapsisAtTrueAnomaly(theta)
}

// crossingThetas finds the thetas in [lo, hi] at which unsigned changes
// sign, by coarse sampling followed by ITP refinement on each bracket.
// Coarse-sample-then-refine stands in for the reference algorithm's exact
// two-stationary-point case split: the latter requires classifying
// {never, one window, two windows} analytically, which is numerically
// fragile near tangency without the reference implementation's internal
// geometry tables, whereas sampling finely enough relative to the orbit's
// angular scale finds the same crossings robustly.
func crossingThetas(unsigned numerical.Function, lo, hi float64, samples int) []float64 {
	var roots []float64
	prevTheta := lo
	prevVal := unsigned(lo)
	step := (hi - lo) / float64(samples)
	for i := 1; i <= samples; i++ {
		theta := lo + step*float64(i)
		val := unsigned(theta)
		if (val > 0) != (prevVal > 0) {
			if root, ok := numerical.ITP(unsigned, prevTheta, theta, thetaCrossingTolerance); ok {
				roots = append(roots, root)
			}
		}
		prevTheta, prevVal = theta, val
	}
	return roots
}

// EllipseVsEllipseWindows builds the theta-domain windows (converted to
// time) in which self (an elliptical orbit) may be within siblingSOI of
// sibling's ellipse, periodic with self's orbital period.
func EllipseVsEllipseWindows(self orbit.Conic, sibling orbit.Conic, siblingSOI float64, samples int) []Window {
	sdf := signedDistanceToSiblingEllipse(self, sibling)
	unsigned := func(theta float64) float64 { return math.Abs(sdf(theta)) - siblingSOI }

	apoTheta, apoOK := numerical.HalleyToFindStationaryPoint(sdf, math.Pi, 1e-8)
	periTheta, periOK := numerical.HalleyToFindStationaryPoint(sdf, 0, 1e-8)
	if !apoOK {
		apoTheta = math.Pi
	}
	if !periOK {
		periTheta = 0
	}
	sApo, sPeri := sdf(apoTheta), sdf(periTheta)
	if math.Min(sApo, sPeri) > siblingSOI || math.Max(sApo, sPeri) < -siblingSOI {
		return nil // never intersects
	}

	crossings := crossingThetas(unsigned, 0, 2*math.Pi, samples)
	return pairCrossingsCircular(self, unsigned, crossings)
}

// pairCrossingsCircular pairs alternating theta crossings of a periodic
// unsigned function into [enter, exit] windows, wrapping across theta=0
// when the function starts inside the threshold.
func pairCrossingsCircular(self orbit.Conic, unsigned numerical.Function, crossings []float64) []Window {
	if len(crossings) == 0 {
		if unsigned(0) < 0 {
			// Inside the threshold for the whole orbit: one window
			// spanning a full period.
			period, ok := self.Period(self.Mu)
			if !ok {
				return nil
			}
			start := thetaToTime(self, 0)
			return []Window{{Start: start, End: start + period}}
		}
		return nil
	}

	var windows []Window
	inside := unsigned(0) < 0
	if inside {
		// The region wraps from the last crossing, through 2pi/0, to
		// the first crossing.
		n := len(crossings)
		start := thetaToTime(self, crossings[n-1])
		end := thetaToTime(self, crossings[0])
		period, _ := self.Period(self.Mu)
		windows = append(windows, Window{Start: start, End: end + period})
		crossings = crossings[:n-1]
	}
	for i := 0; i+1 < len(crossings); i += 2 {
		windows = append(windows, Window{
			Start: thetaToTime(self, crossings[i]),
			End:   thetaToTime(self, crossings[i+1]),
		})
	}
	return windows
}

// HyperbolaVsEllipseWindows is the non-periodic analogue: self's true
// anomaly is restricted to the finite arm (-thetaInf, thetaInf). The arm
// is coarse-sampled for threshold crossings, each refined with ITP, and
// consecutive crossings are paired into windows; no stationary point of
// the SDF is located, and a crossing left unpaired at the end of the arm
// produces no window.
func HyperbolaVsEllipseWindows(self orbit.Conic, sibling orbit.Conic, siblingSOI float64, samples int) []Window {
	thetaInf := math.Acos(-1 / self.Eccentricity)
	lo := -thetaInf + 1e-6
	hi := thetaInf - 1e-6

	sdf := signedDistanceToSiblingEllipse(self, sibling)
	unsigned := func(theta float64) float64 { return math.Abs(sdf(theta)) - siblingSOI }

	crossings := crossingThetas(unsigned, lo, hi, samples)
	var windows []Window
	for i := 0; i+1 < len(crossings); i += 2 {
		windows = append(windows, Window{
			Start: thetaToTime(self, crossings[i]),
			End:   thetaToTime(self, crossings[i+1]),
		})
	}
	return windows
}
