package encounter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/numerical"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vecmath"
)

// Kind distinguishes the two encounter outcomes: entering a sibling's
// sphere of influence, or exiting the current parent's.
type Kind int

const (
	Entrance Kind = iota
	Exit
)

// Sibling is an orbitable sharing the predicted entity's parent.
type Sibling struct {
	Entity storage.Entity
	Orbit  orbit.Conic // the sibling's own orbit around the shared parent
	SOI    float64     // the sibling's sphere of influence radius
}

// Result is a predicted encounter.
type Result struct {
	Kind    Kind
	Time    float64
	Sibling storage.Entity // only meaningful when Kind == Entrance
}

// windowSamples is the coarse sampling resolution used to bracket
// signed-distance-function threshold crossings before ITP refinement.
const windowSamples = 128

func distanceAt(a, b orbit.Conic, t float64) float64 {
	pa, _ := a.StateAtTime(t)
	pb, _ := b.StateAtTime(t)
	return vecmath.Norm(r2.Sub(pa, pb))
}

// Predict returns the soonest encounter -- entrance into a sibling's SOI,
// or exit from the parent's -- within [now, horizon], respecting
// minGapSeconds after `now` to avoid immediately re-reporting an SOI just
// exited or entered.
func Predict(self orbit.Conic, parentSOI float64, siblings []Sibling, now, horizon, minGapSeconds float64) (Result, bool) {
	var best Result
	found := false
	consider := func(r Result) {
		if r.Time <= now+minGapSeconds || r.Time > horizon {
			return
		}
		if !found || r.Time < best.Time {
			best = r
			found = true
		}
	}

	period, periodic := self.Period(self.Mu)

	for _, sib := range siblings {
		var windows []Window
		if self.Type == orbit.Ellipse {
			windows = EllipseVsEllipseWindows(self, sib.Orbit, sib.SOI, windowSamples)
		} else {
			windows = HyperbolaVsEllipseWindows(self, sib.Orbit, sib.SOI, windowSamples)
		}
		for _, w := range windows {
			for w.Start < horizon {
				if t, ok := refineWindowEntrance(self, sib.Orbit, sib.SOI, w, now, horizon); ok {
					consider(Result{Kind: Entrance, Time: t, Sibling: sib.Entity})
					break
				}
				if !periodic || period <= 0 {
					break
				}
				w.Start += period
				w.End += period
			}
		}
	}

	if t, ok := ExitTime(self, parentSOI); ok {
		consider(Result{Kind: Exit, Time: t})
	}

	return best, found
}

// refineWindowEntrance implements the second half of §4.7: within the
// window clipped to [now, horizon], check for an interior minimum of the
// real inter-body distance (sign change of its derivative), and if that
// minimum dips under siblingSOI, locate the threshold crossing on the
// approach side via ITP.
func refineWindowEntrance(self, sibling orbit.Conic, siblingSOI float64, w Window, now, horizon float64) (float64, bool) {
	lo := math.Max(w.Start, now)
	hi := math.Min(w.End, horizon)
	if lo >= hi {
		return 0, false
	}

	h := (hi - lo) * 1e-4
	if h < 1e-3 {
		h = 1e-3
	}
	dist := func(t float64) float64 { return distanceAt(self, sibling, t) }
	deriv := func(t float64) float64 { return numerical.Differentiate1(dist, t, h) }

	if !(deriv(lo) < 0 && deriv(hi) > 0) {
		return 0, false
	}
	tMin, ok := numerical.ITP(deriv, lo, hi, 1e-6)
	if !ok {
		return 0, false
	}
	dMin := dist(tMin)
	if dMin >= siblingSOI {
		return 0, false
	}

	bracketLo := lo
	inBracket := func(x float64) bool { return (dist(x) - siblingSOI) > 0 }
	if !inBracket(bracketLo) {
		period, ok := self.Period(self.Mu)
		if ok && period > 0 {
			step := period / 32
			for i := 0; i < 32 && !inBracket(bracketLo); i++ {
				bracketLo -= step
			}
		}
	}
	if !inBracket(bracketLo) {
		return 0, false
	}

	entrance, ok := numerical.ITP(func(t float64) float64 { return dist(t) - siblingSOI }, bracketLo, tMin, 1e-6)
	if !ok {
		return 0, false
	}
	return entrance, true
}
