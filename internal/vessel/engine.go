// Package vessel implements the vessel component -- engine, fuel tank,
// RCS, torpedo storage/launcher -- and its timeline of scheduled future
// events. It is grounded in the teacher's thrusters.go (EPThruster
// interface -> Engine here) and spacecraft.go (ChemProp/EPThrusters,
// Cargo -> FuelTank, TorpedoStorage), generalized from the teacher's
// heliocentric mission-design vessel to the newer "engine / fuel_tank /
// torpedo_*" vessel subsystem named by the reference implementation
// (open question 9a: the newer form supersedes the older "ship_slot").
package vessel

import "math"

// Engine is a thrust source: constant thrust force, specific impulse
// and propellant mass flow, the same three numbers the teacher's
// EPThruster.Thrust returns (thrust, isp), generalized to cover both
// chemical and electric propulsion -- this domain does not distinguish
// them the way the teacher's dual EPThruster/ChemProp split does.
type Engine struct {
	Name               string
	ThrustNewtons      float64
	SpecificImpulse    float64 // seconds
	FuelFlowKgPerSecond float64
}

// Force returns the thrust force in Newtons.
func (e Engine) Force() float64 { return e.ThrustNewtons }

// StandardGravity is g0, used by the rocket equation below.
const StandardGravity = 9.80665

// RocketEquationFunction models the variable-mass dynamics of a burning
// engine: dry mass, remaining fuel, and the Tsiolkovsky relationship
// between delta-v and propellant consumed. It is the Go counterpart of
// the reference implementation's RocketEquationFunction, grounded in the
// same role the teacher's Maneuver.Δv() and spacecraft.go's Mass() play
// for impulsive burns, generalized to finite continuous ones.
type RocketEquationFunction struct {
	DryMassKg                float64
	FuelMassKg                float64
	FuelConsumptionKgPerSecond float64
	SpecificImpulse           float64
}

// Mass returns the current total mass (dry + remaining fuel).
func (r RocketEquationFunction) Mass() float64 {
	return r.DryMassKg + r.FuelMassKg
}

// ExhaustVelocity returns Isp * g0.
func (r RocketEquationFunction) ExhaustVelocity() float64 {
	return r.SpecificImpulse * StandardGravity
}

// RemainingDv returns the maximum delta-v deliverable from current fuel
// via the Tsiolkovsky rocket equation: ve * ln(m0/mf).
func (r RocketEquationFunction) RemainingDv() float64 {
	if r.FuelMassKg <= 0 {
		return 0
	}
	m0 := r.Mass()
	mf := r.DryMassKg
	return r.ExhaustVelocity() * math.Log(m0/mf)
}

// RemainingTime returns how long the engine can keep firing at full
// flow before fuel is exhausted.
func (r RocketEquationFunction) RemainingTime() float64 {
	if r.FuelConsumptionKgPerSecond <= 0 {
		return math.Inf(1)
	}
	return r.FuelMassKg / r.FuelConsumptionKgPerSecond
}

// TimeToStepDv returns how long it takes to deliver dv of delta-v at
// full flow, and whether fuel is sufficient to deliver it at all.
func (r RocketEquationFunction) TimeToStepDv(dv float64) (float64, bool) {
	if dv > r.RemainingDv() {
		return 0, false
	}
	m0 := r.Mass()
	mf := m0 * math.Exp(-dv/r.ExhaustVelocity())
	fuelConsumed := m0 - mf
	if r.FuelConsumptionKgPerSecond <= 0 {
		return 0, false
	}
	return fuelConsumed / r.FuelConsumptionKgPerSecond, true
}

// StepByTime advances the rocket equation state by burning at full flow
// for duration seconds, returning the new state and the delta-v
// delivered. If fuel runs out partway through, the burn is clamped to
// RemainingTime().
func (r RocketEquationFunction) StepByTime(duration float64) (RocketEquationFunction, float64) {
	if duration > r.RemainingTime() {
		duration = r.RemainingTime()
	}
	m0 := r.Mass()
	fuelConsumed := r.FuelConsumptionKgPerSecond * duration
	next := r
	next.FuelMassKg -= fuelConsumed
	if next.FuelMassKg < 0 {
		next.FuelMassKg = 0
	}
	mf := next.Mass()
	dv := 0.0
	if mf > 0 && m0 > 0 {
		dv = r.ExhaustVelocity() * math.Log(m0/mf)
	}
	return next, dv
}

// StepByDv advances the rocket equation state by delivering dv of
// delta-v (clamped to RemainingDv), returning the new state and the
// time elapsed.
func (r RocketEquationFunction) StepByDv(dv float64) (RocketEquationFunction, float64) {
	if remaining := r.RemainingDv(); dv > remaining {
		dv = remaining
	}
	m0 := r.Mass()
	mf := m0 * math.Exp(-dv/r.ExhaustVelocity())
	next := r
	next.FuelMassKg = mf - r.DryMassKg
	if next.FuelMassKg < 0 {
		next.FuelMassKg = 0
	}
	t, _ := r.TimeToStepDv(dv)
	return next, t
}

// End returns true once fuel is fully depleted.
func (r RocketEquationFunction) End() bool {
	return r.FuelMassKg <= 0
}
