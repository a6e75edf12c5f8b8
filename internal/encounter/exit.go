package encounter

import (
	"math"

	"github.com/LordIdra/transfer-window-sub001/internal/numerical"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
)

// ExitTime locates the time at which self leaves its parent's sphere of
// influence (parentSOI), or false if it never does within the orbit's
// geometry. Elliptical orbits are checked by sign of (parentSOI - r(theta))
// between periapsis and apoapsis; hyperbolic orbits are marched forward
// with an expanding step until a sign change, then bisected.
func ExitTime(self orbit.Conic, parentSOI float64) (float64, bool) {
	if math.IsInf(parentSOI, 1) {
		return 0, false
	}
	if self.Type == orbit.Ellipse {
		return ellipticalExitTime(self, parentSOI)
	}
	return hyperbolicExitTime(self, parentSOI)
}

func ellipticalExitTime(self orbit.Conic, parentSOI float64) (float64, bool) {
	apo, ok := self.Apoapsis()
	if !ok || apo <= parentSOI {
		return 0, false
	}
	f := func(theta float64) float64 { return parentSOI - self.RadiusAtTrueAnomaly(theta) }
	theta, ok := numerical.Bisection(f, 0, math.Pi, 1e-9)
	if !ok {
		return 0, false
	}
	return thetaToTime(self, theta), true
}

func hyperbolicExitTime(self orbit.Conic, parentSOI float64) (float64, bool) {
	if self.Periapsis() >= parentSOI {
		// Already outside at periapsis: exit already happened, or the
		// orbit starts outside; caller's minimum-gap handling decides
		// whether to report it.
		return thetaToTime(self, 0), true
	}
	f := func(theta float64) float64 { return parentSOI - self.RadiusAtTrueAnomaly(theta) }
	thetaInf := math.Acos(-1 / self.Eccentricity)

	step := 1e-3
	lo := 0.0
	hi := step
	for hi < thetaInf {
		if f(hi) < 0 {
			break
		}
		lo = hi
		step *= 2
		hi += step
		if hi >= thetaInf {
			hi = thetaInf - 1e-9
			if f(hi) >= 0 {
				return 0, false
			}
			break
		}
	}
	theta, ok := numerical.Bisection(f, lo, hi, 1e-9)
	if !ok {
		return 0, false
	}
	return thetaToTime(self, theta), true
}
