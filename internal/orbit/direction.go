package orbit

import "gonum.org/v1/gonum/spatial/r2"

// Direction is the sense of travel around the parent, determined by the
// sign of the transverse (cross-product) component of velocity at
// construction and preserved through every derived quantity so that an
// orbit integrated forward for one period returns to its start state.
type Direction int

const (
	AntiClockwise Direction = iota
	Clockwise
)

// DirectionFromState returns the orbital direction implied by position r
// and velocity v (2-D, parent-relative): positive cross product is
// anticlockwise.
func DirectionFromState(r, v r2.Vec) Direction {
	if r.X*v.Y-r.Y*v.X >= 0 {
		return AntiClockwise
	}
	return Clockwise
}

// Sign returns +1 for AntiClockwise, -1 for Clockwise -- the multiplier
// applied to transverse velocity and angular rate throughout this
// package.
func (d Direction) Sign() float64 {
	if d == AntiClockwise {
		return 1
	}
	return -1
}

func (d Direction) String() string {
	if d == AntiClockwise {
		return "anticlockwise"
	}
	return "clockwise"
}
