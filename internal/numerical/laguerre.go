package numerical

import "math"

// laguerreOrder is the "n" parameter in Laguerre's method. It differs
// from the order used by the Kepler-equation solver in internal/orbit
// (Markley seed + Laguerre-Conway, n = 2 there); this solver is more
// general and uses a higher order.
const laguerreOrder = 5.0

// Laguerre finds a root of f starting from x0 via Laguerre's method,
// using f, f' and f''.
func Laguerre(f Function, x0, tolerance float64) (float64, bool) {
	x := x0
	n := laguerreOrder
	for i := 0; i < defaultMaxIterations; i++ {
		fx := f(x)
		if fx == 0 {
			return x, true
		}
		d1 := Differentiate1(f, x, derivativeStep)
		d2 := Differentiate2(f, x, derivativeStep)
		g := d1 / fx
		h := g*g - d2/fx
		disc := (n-1)*(n*h-g*g)
		if disc < 0 {
			disc = 0
		}
		sq := math.Sqrt(disc)
		denomPlus := g + sq
		denomMinus := g - sq
		var denom float64
		if absFloat(denomPlus) > absFloat(denomMinus) {
			denom = denomPlus
		} else {
			denom = denomMinus
		}
		if denom == 0 {
			return 0, false
		}
		step := n / denom
		x -= step
		if absFloat(step) < tolerance {
			return x, true
		}
	}
	return 0, false
}

// LaguerreToFindStationaryPoint finds a stationary point of f (root of
// f') starting from x0, applying Laguerre's method one derivative order
// up.
func LaguerreToFindStationaryPoint(f Function, x0, tolerance float64) (float64, bool) {
	d1f := func(x float64) float64 { return Differentiate1(f, x, derivativeStep) }
	return Laguerre(d1f, x0, tolerance)
}
