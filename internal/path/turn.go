package path

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vecmath"
)

// TurnSegment is an attitude-only maneuver: a bang-bang angular
// acceleration profile that rotates the vessel from StartRotation to
// EndRotation without perturbing its trajectory. Position and velocity
// during a turn are sampled from the orbit the vessel was already
// following (Conic), per the invariant that a turn cannot change where
// the vessel is, only which way it is pointed.
type TurnSegment struct {
	Parent              storage.Entity
	Conic               orbit.Conic // the unperturbed orbit underneath the turn
	StartRotation       float64
	EndRotation         float64
	AngularAcceleration float64 // magnitude, rad/s^2
	FuelFlowKgPerSecond float64
	StartTime           float64
	Duration            float64
	delta               float64 // signed shortest arc from start to end
}

// NewTurnSegment builds a turn with duration d = 2*sqrt(|delta|/alpha)
// for the triangular (ramp up / ramp down) angular velocity profile.
func NewTurnSegment(parent storage.Entity, conic orbit.Conic, startTime, startRotation, endRotation, angularAccel, fuelFlow float64) TurnSegment {
	delta := vecmath.ShortestArc(startRotation, endRotation)
	duration := 0.0
	if angularAccel > 0 {
		duration = 2 * math.Sqrt(math.Abs(delta)/angularAccel)
	}
	return TurnSegment{
		Parent:              parent,
		Conic:               conic,
		StartRotation:       startRotation,
		EndRotation:         endRotation,
		AngularAcceleration: angularAccel,
		FuelFlowKgPerSecond: fuelFlow,
		StartTime:           startTime,
		Duration:            duration,
		delta:               delta,
	}
}

// EndTime returns the absolute time this turn completes.
func (s TurnSegment) EndTime() float64 { return s.StartTime + s.Duration }

// RotationAtTime returns the rotation angle at absolute time t, via the
// triangular (ramp up to the midpoint, ramp down to zero) angular
// velocity profile.
func (s TurnSegment) RotationAtTime(t float64) float64 {
	if s.Duration <= 0 {
		return s.EndRotation
	}
	tau := t - s.StartTime
	if tau <= 0 {
		return s.StartRotation
	}
	if tau >= s.Duration {
		return s.EndRotation
	}
	half := s.Duration / 2
	sign := vecmath.Sign(s.delta)
	var angle float64
	if tau <= half {
		// Ramp up: theta = 1/2 * alpha * tau^2.
		angle = 0.5 * s.AngularAcceleration * tau * tau
	} else {
		// Ramp down, symmetric about the midpoint.
		tRemaining := s.Duration - tau
		halfDelta := math.Abs(s.delta) / 2
		angle = halfDelta + (halfDelta - 0.5*s.AngularAcceleration*tRemaining*tRemaining)
	}
	return s.StartRotation + sign*angle
}

// PositionAtTime and VelocityAtTime delegate to the underlying
// unperturbed orbit, per the turn-does-not-perturb-trajectory invariant.
func (s TurnSegment) PositionAtTime(t float64) r2.Vec {
	pos, _ := s.Conic.StateAtTime(t)
	return pos
}

func (s TurnSegment) VelocityAtTime(t float64) r2.Vec {
	_, vel := s.Conic.StateAtTime(t)
	return vel
}

// FuelConsumed returns the fuel (kg) burned by RCS over the whole turn.
func (s TurnSegment) FuelConsumed() float64 {
	return s.FuelFlowKgPerSecond * s.Duration
}
