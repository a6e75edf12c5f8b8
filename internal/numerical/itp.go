package numerical

import "math"

// ITP implements the Interpolate-Truncate-Project bracketed root finder
// (Oliveira & Takahashi, 2020), used wherever the trajectory core needs a
// guaranteed-bracketed root (encounter windows, closest-approach
// refinement) rather than an open solver that can wander outside a
// physically meaningful interval. Requires f(a) and f(b) to have
// opposite signs (or one of them be exactly zero).
func ITP(f Function, a, b, tolerance float64) (float64, bool) {
	const (
		k1 = 0.2
		k2 = 2.0
		n0 = 1.0
	)
	fa := f(a)
	fb := f(b)
	if fa == 0 {
		return a, true
	}
	if fb == 0 {
		return b, true
	}
	if (fa > 0) == (fb > 0) {
		return 0, false
	}
	if fa > 0 {
		a, b = b, a
		fa, fb = fb, fa
	}
	// Now fa < 0 < fb.
	nHalf := math.Log2((b - a) / (2 * tolerance))
	if nHalf < 0 {
		nHalf = 0
	}
	nmax := math.Ceil(nHalf) + n0

	for j := 0.0; b-a > 2*tolerance; j++ {
		xHalf := (a + b) / 2
		xFalse := (b*fa - a*fb) / (fa - fb)
		delta := k1 * math.Pow(b-a, k2)
		var xITP float64
		if absFloat(xHalf-xFalse) <= delta {
			xITP = xFalse
		} else {
			sigma := Sign(xHalf - xFalse)
			xITP = xHalf - sigma*delta
		}
		rk := tolerance*math.Pow(2, nmax-j) - (b-a)/2
		var xT float64
		if absFloat(xITP-xHalf) <= rk {
			xT = xITP
		} else {
			xT = xHalf - Sign(xHalf-xFalse)*rk
		}
		yT := f(xT)
		switch {
		case yT > 0:
			b, fb = xT, yT
		case yT < 0:
			a, fa = xT, yT
		default:
			return xT, true
		}
		if j > float64(2*defaultMaxIterations)+nmax {
			break
		}
	}
	return (a + b) / 2, true
}

// Sign returns the sign of v as +1/-1, treating zero as positive.
func Sign(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v / absFloat(v)
}
