package encounter

import (
	"math"

	"github.com/LordIdra/transfer-window-sub001/internal/numerical"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
)

// ClosestApproach implements §4.8: the earliest local minimum of the
// inter-body distance between two same-parent orbit arcs, at or after
// minTime, found by sampling the derivative of distance(t) at step
// min(overlap duration, periodA, periodB)/32 and refining the first
// negative-to-positive sign change with ITP. Deliberately burn-agnostic:
// callers pass only Orbit-segment conics, never Burn or Guidance state,
// since a maneuvering approach is not a stable rendezvous target.
//
// Call again with minTime = result + 1 (one second, matching the
// "next-two" gap used elsewhere) to find the following approach.
func ClosestApproach(a orbit.Conic, startA, endA float64, b orbit.Conic, startB, endB float64, minTime float64) (float64, bool) {
	lo := math.Max(math.Max(startA, startB), minTime)
	hi := math.Min(endA, endB)
	if lo >= hi {
		return 0, false
	}

	step := hi - lo
	if pa, ok := a.Period(a.Mu); ok && pa > 0 && pa < step {
		step = pa
	}
	if pb, ok := b.Period(b.Mu); ok && pb > 0 && pb < step {
		step = pb
	}
	step /= 32
	if step <= 0 {
		return 0, false
	}

	dist := func(t float64) float64 { return distanceAt(a, b, t) }
	h := step * 0.01
	if h <= 0 {
		h = 1e-3
	}
	deriv := func(t float64) float64 { return numerical.Differentiate1(dist, t, h) }

	prevT := lo
	prevD := deriv(lo)
	for t := lo + step; t <= hi; t += step {
		d := deriv(t)
		if prevD < 0 && d > 0 {
			if root, ok := numerical.ITP(deriv, prevT, t, 1e-6); ok {
				return root, true
			}
		}
		prevT, prevD = t, d
	}
	return 0, false
}
