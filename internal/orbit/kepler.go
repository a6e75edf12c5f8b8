package orbit

import "math"

// KeplerTolerance is the convergence tolerance for eccentric/hyperbolic
// anomaly solving, per the configuration constants table.
const KeplerTolerance = 1e-10

const laguerreConwayOrder = 2.0

// SolveEccentricAnomaly solves Kepler's equation M = E - e*sin(E) for the
// eccentric anomaly E given mean anomaly M (radians) and eccentricity e
// (0 <= e < 1). The seed is Markley's (2022) closed-form approximation;
// refinement is Laguerre-Conway with n=2, iterating until |delta E| is
// below KeplerTolerance.
func SolveEccentricAnomaly(meanAnomaly, e float64) float64 {
	m := wrapToPi(meanAnomaly)
	sign := 1.0
	if m < 0 {
		sign = -1.0
		m = -m
	}

	e0 := m + 0.999999*4*e*m*(math.Pi-m)/(8*e*m+4*e*(e-math.Pi)+math.Pi*math.Pi)
	E := e0

	for i := 0; i < 50; i++ {
		f := E - e*math.Sin(E) - m
		fp := 1 - e*math.Cos(E)
		fpp := e * math.Sin(E)
		n := laguerreConwayOrder
		inner := (n-1)*(n-1)*fp*fp - n*(n-1)*f*fpp
		if inner < 0 {
			inner = 0
		}
		sq := math.Sqrt(inner)
		denomPlus := fp + sq
		denomMinus := fp - sq
		var denom float64
		if math.Abs(denomPlus) > math.Abs(denomMinus) {
			denom = denomPlus
		} else {
			denom = denomMinus
		}
		if denom == 0 {
			break
		}
		delta := n * f / denom
		E -= delta
		if math.Abs(delta) < KeplerTolerance {
			break
		}
	}
	return sign * E
}

// SolveHyperbolicAnomaly solves M = e*sinh(H) - H for the hyperbolic
// anomaly H given mean anomaly M and eccentricity e (e > 1), using the
// same Laguerre-Conway scheme with sinh/cosh in place of sin/cos.
func SolveHyperbolicAnomaly(meanAnomaly, e float64) float64 {
	H := meanAnomaly
	if math.Abs(H) < 1e-8 {
		H = meanAnomaly / (e - 1)
	}
	for i := 0; i < 50; i++ {
		f := e*math.Sinh(H) - H - meanAnomaly
		fp := e*math.Cosh(H) - 1
		fpp := e * math.Sinh(H)
		n := laguerreConwayOrder
		inner := (n-1)*(n-1)*fp*fp - n*(n-1)*f*fpp
		if inner < 0 {
			inner = 0
		}
		sq := math.Sqrt(inner)
		denomPlus := fp + sq
		denomMinus := fp - sq
		var denom float64
		if math.Abs(denomPlus) > math.Abs(denomMinus) {
			denom = denomPlus
		} else {
			denom = denomMinus
		}
		if denom == 0 {
			break
		}
		delta := n * f / denom
		H -= delta
		if math.Abs(delta) < KeplerTolerance {
			break
		}
	}
	return H
}

func wrapToPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// TrueAnomalyFromEccentric converts eccentric anomaly to true anomaly
// for an elliptical orbit of eccentricity e.
func TrueAnomalyFromEccentric(E, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
}

// EccentricFromTrueAnomaly inverts TrueAnomalyFromEccentric.
func EccentricFromTrueAnomaly(theta, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(theta/2), math.Sqrt(1+e)*math.Cos(theta/2))
}

// TrueAnomalyFromHyperbolic converts hyperbolic anomaly to true anomaly
// for a hyperbolic orbit of eccentricity e.
func TrueAnomalyFromHyperbolic(H, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(H/2), math.Sqrt(e-1)*math.Cosh(H/2))
}

// HyperbolicFromTrueAnomaly inverts TrueAnomalyFromHyperbolic.
func HyperbolicFromTrueAnomaly(theta, e float64) float64 {
	return 2 * math.Atanh(math.Sqrt(e-1)/math.Sqrt(e+1)*math.Tan(theta/2))
}
