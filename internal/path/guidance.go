package path

import (
	"math"

	"github.com/ChristopherRabotin/ode"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vecmath"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// TargetStateFunc returns a target's parent-relative position and
// velocity at absolute time t. Guidance is built against a closure
// rather than a direct reference to the target's Path so this package
// never needs to know about other entities' components.
type TargetStateFunc func(t float64) (r2.Vec, r2.Vec)

// GuidancePoint is a cached sample inside a Guidance segment.
type GuidancePoint struct {
	MassWithoutFuel      float64
	FuelKg               float64
	Time                 float64
	Rotation             float64
	Position             r2.Vec
	Velocity             r2.Vec
	GuidanceAcceleration r2.Vec
}

func (p GuidancePoint) Mass() float64 { return p.MassWithoutFuel + p.FuelKg }

// GuidanceSegment is a proportional-navigation homing integration: the
// terminal point either falls within the intercept threshold
// (WillIntercept) or fuel runs out first.
type GuidanceSegment struct {
	Parent              storage.Entity
	Target              storage.Entity
	Mu                  float64
	Gain                float64 // proportional navigation constant, N
	LOSRateDelta         float64 // central-difference step, seconds
	InterceptThreshold   float64
	Engine              vessel.Engine
	Points              []GuidancePoint
	WillIntercept       bool
}

// NewGuidanceSegment integrates a homing trajectory from start using
// proportional navigation against targetState, stopping when the
// intercept threshold is reached or fuel is exhausted.
func NewGuidanceSegment(parent, target storage.Entity, mu, gain, losRateDelta, interceptThreshold float64, engine vessel.Engine, start GuidancePoint, targetState TargetStateFunc) GuidanceSegment {
	seg := GuidanceSegment{
		Parent:             parent,
		Target:             target,
		Mu:                 mu,
		Gain:               gain,
		LOSRateDelta:       losRateDelta,
		InterceptThreshold: interceptThreshold,
		Engine:             engine,
	}
	seg.Points, seg.WillIntercept = integrateGuidance(seg, start, targetState)
	return seg
}

// EndPoint returns the terminal point of the guidance integration.
func (s GuidanceSegment) EndPoint() GuidancePoint {
	return s.Points[len(s.Points)-1]
}

func losAngle(selfPos r2.Vec, targetPos r2.Vec) float64 {
	rel := r2.Sub(targetPos, selfPos)
	return vecmath.Angle(rel)
}

// guidanceIntegrator adapts a GuidanceSegment to ode.Integrable, in the
// same single-Solve()-call idiom as burnIntegrator (see burn.go):
// Solve() blocks for the whole homing trajectory, and both the
// intercept-threshold test and the fuel-exhaustion test are evaluated
// every internal step, inside SetState, rather than once by an outer
// caller before integration starts.
type guidanceIntegrator struct {
	mu            float64
	gain          float64
	losRateDelta  float64
	threshold     float64
	dryMass       float64
	flowRate      float64
	thrustNewtons float64
	targetState   TargetStateFunc
	state         [5]float64 // x,y,vx,vy,fuelKg
	lastAccel     r2.Vec
	stopped       bool
	intercepted   bool
	steps         int
	points        []GuidancePoint
}

func integrateGuidance(seg GuidanceSegment, start GuidancePoint, targetState TargetStateFunc) ([]GuidancePoint, bool) {
	integ := &guidanceIntegrator{
		mu:            seg.Mu,
		gain:          seg.Gain,
		losRateDelta:  seg.LOSRateDelta,
		threshold:     seg.InterceptThreshold,
		dryMass:       start.MassWithoutFuel,
		flowRate:      seg.Engine.FuelFlowKgPerSecond,
		thrustNewtons: seg.Engine.ThrustNewtons,
		targetState:   targetState,
		state:         [5]float64{start.Position.X, start.Position.Y, start.Velocity.X, start.Velocity.Y, start.FuelKg},
		points:        []GuidancePoint{start},
	}

	if integ.withinThreshold(start.Time) {
		return integ.points, true
	}

	ode.NewRK4(start.Time, BurnTimeStep, integ).Solve() // Blocking.
	return integ.points, integ.intercepted
}

func (g *guidanceIntegrator) withinThreshold(t float64) bool {
	selfPos := r2.Vec{X: g.state[0], Y: g.state[1]}
	tgtPos, _ := g.targetState(t)
	return math.Hypot(tgtPos.X-selfPos.X, tgtPos.Y-selfPos.Y) <= g.threshold
}

func (g *guidanceIntegrator) GetState() []float64 { return g.state[:] }

func (g *guidanceIntegrator) SetState(t float64, s []float64) {
	copy(g.state[:], s)
	if g.state[4] <= 0 {
		g.state[4] = 0
		g.stopped = true
	}
	if g.withinThreshold(t) {
		g.intercepted = true
		g.stopped = true
	}
	g.steps++
	if g.steps >= maxBurnSteps {
		g.stopped = true
	}
	g.points = append(g.points, GuidancePoint{
		MassWithoutFuel:      g.dryMass,
		FuelKg:               g.state[4],
		Time:                 t,
		Rotation:             vecmath.Angle(r2.Vec{X: g.state[2], Y: g.state[3]}),
		Position:             r2.Vec{X: g.state[0], Y: g.state[1]},
		Velocity:             r2.Vec{X: g.state[2], Y: g.state[3]},
		GuidanceAcceleration: g.lastAccel,
	})
}

// Func computes proportional-navigation acceleration: read target
// position at t +/- LOSRateDelta, central-difference the line-of-sight
// angle to get its rate, and command lateral acceleration proportional
// to gain * closing speed * LOS rate, per the documented (and
// deliberately not silently tightened) delta = 0.1s differentiation.
func (g *guidanceIntegrator) Func(t float64, f []float64) []float64 {
	x, y, vx, vy, fuel := f[0], f[1], f[2], f[3], f[4]
	selfPos := r2.Vec{X: x, Y: y}
	selfVel := r2.Vec{X: vx, Y: vy}

	r := math.Hypot(x, y)
	gx, gy := 0.0, 0.0
	if r > 0 {
		gx = -g.mu * x / (r * r * r)
		gy = -g.mu * y / (r * r * r)
	}

	tgtPosPlus, _ := g.targetState(t + g.losRateDelta)
	tgtPosMinus, _ := g.targetState(t - g.losRateDelta)
	losPlus := losAngle(selfPos, tgtPosPlus)
	losMinus := losAngle(selfPos, tgtPosMinus)
	losRate := vecmath.ShortestArc(losMinus, losPlus) / (2 * g.losRateDelta)

	tgtPos, tgtVel := g.targetState(t)
	rel := r2.Sub(tgtPos, selfPos)
	relVel := r2.Sub(tgtVel, selfVel)
	rng := math.Hypot(rel.X, rel.Y)
	closingSpeed := 0.0
	if rng > 0 {
		closingSpeed = -(rel.X*relVel.X + rel.Y*relVel.Y) / rng
	}

	losDir := vecmath.Unit(rel)
	perp := vecmath.Perpendicular(losDir)
	accelMag := g.gain * closingSpeed * losRate

	mass := g.dryMass + fuel
	ax, ay := 0.0, 0.0
	if fuel > 0 && mass > 0 {
		maxAccel := g.thrustNewtons / mass
		if math.Abs(accelMag) > maxAccel {
			accelMag = maxAccel * vecmath.Sign(accelMag)
		}
		ax = perp.X * accelMag
		ay = perp.Y * accelMag
		g.lastAccel = r2.Vec{X: ax, Y: ay}
	} else {
		g.lastAccel = r2.Vec{}
	}

	fuelDot := -g.flowRate
	if fuel <= 0 {
		fuelDot = 0
	}
	return []float64{vx, vy, gx + ax, gy + ay, fuelDot}
}

func (g *guidanceIntegrator) Stop(t float64) bool {
	return g.stopped
}
