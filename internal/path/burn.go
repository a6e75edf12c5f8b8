package path

import (
	"math"

	"github.com/ChristopherRabotin/ode"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vecmath"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// BurnTimeStep is the fixed integration step for finite-burn and
// guidance segments, small enough that the rocket-equation-driven mass
// loss and gravity-plus-thrust acceleration stay accurate over a whole
// burn without per-step error accumulating visibly.
const BurnTimeStep = 0.05

// BurnPoint is a cached sample inside a Burn segment: everything needed
// to resume integration or answer a query without re-deriving it.
type BurnPoint struct {
	MassWithoutFuel float64
	FuelKg          float64
	Time            float64
	Position        r2.Vec
	Velocity        r2.Vec
}

func (p BurnPoint) Mass() float64 { return p.MassWithoutFuel + p.FuelKg }

// BurnSegment is a finite, numerically-integrated continuous burn: the
// player-editable quantity is a 2-D delta-v vector expressed in the
// tangent frame fixed at the burn's start instant.
type BurnSegment struct {
	Parent    storage.Entity
	Mu        float64
	TangentX  r2.Vec // unit tangent at burn start
	TangentY  r2.Vec // perpendicular to TangentX, same frame
	DeltaV    r2.Vec // player-editable, in the tangent frame
	StartTime float64
	Engine    vessel.Engine
	Points    []BurnPoint
}

// NewBurnSegment integrates a burn from a starting state, parent mu,
// tangent frame and requested delta-v, producing the fixed-timestep
// point sequence that PointAtTime binary-searches.
func NewBurnSegment(parent storage.Entity, mu float64, start BurnPoint, tangent r2.Vec, deltaV r2.Vec, engine vessel.Engine) BurnSegment {
	tangentUnit := vecmath.Unit(tangent)
	perp := vecmath.Perpendicular(tangentUnit)
	seg := BurnSegment{
		Parent:    parent,
		Mu:        mu,
		TangentX:  tangentUnit,
		TangentY:  perp,
		DeltaV:    deltaV,
		StartTime: start.Time,
		Engine:    engine,
	}
	seg.Points = integrateBurn(seg, start)
	return seg
}

// worldDeltaV converts the tangent-frame delta-v into world coordinates.
func (s BurnSegment) worldDeltaV() r2.Vec {
	return r2.Add(r2.Scale(s.DeltaV.X, s.TangentX), r2.Scale(s.DeltaV.Y, s.TangentY))
}

// EndPoint returns the post-burn state the following Orbit segment is
// fit to.
func (s BurnSegment) EndPoint() BurnPoint {
	return s.Points[len(s.Points)-1]
}

// PointAtTime linearly interpolates between the fixed-timestep samples
// bracketing t.
func (s BurnSegment) PointAtTime(t float64) BurnPoint {
	if len(s.Points) == 0 {
		return BurnPoint{}
	}
	if t <= s.Points[0].Time {
		return s.Points[0]
	}
	last := s.Points[len(s.Points)-1]
	if t >= last.Time {
		return last
	}
	lo, hi := 0, len(s.Points)-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if s.Points[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	a, b := s.Points[lo], s.Points[hi]
	if b.Time == a.Time {
		return a
	}
	frac := (t - a.Time) / (b.Time - a.Time)
	return BurnPoint{
		MassWithoutFuel: a.MassWithoutFuel,
		FuelKg:          a.FuelKg + (b.FuelKg-a.FuelKg)*frac,
		Time:            t,
		Position:        r2.Add(a.Position, r2.Scale(frac, r2.Sub(b.Position, a.Position))),
		Velocity:        r2.Add(a.Velocity, r2.Scale(frac, r2.Sub(b.Velocity, a.Velocity))),
	}
}

// burnIntegrator adapts a BurnSegment to ode.Integrable: state is
// [x, y, vx, vy, fuelKg], acceleration is gravity plus thrust along the
// fixed world delta-v direction, and integration stops once either the
// requested delta-v has been delivered or fuel is exhausted. Following
// the teacher's Mission/OrbitEstimate idiom (estimate.go, mission.go),
// Solve() is called exactly once for the whole burn and blocks until
// Stop() trips; each internal RK4 step's SetState call is where the
// sample is recorded, not the call site.
type burnIntegrator struct {
	mu              float64
	thrustDirection r2.Vec
	dryMass         float64
	initialFuel     float64
	flowRate        float64
	thrustNewtons   float64
	exhaustVel      float64
	targetDv        float64
	state           [5]float64
	stopped         bool
	steps           int
	points          []BurnPoint
}

func integrateBurn(seg BurnSegment, start BurnPoint) []BurnPoint {
	wdv := seg.worldDeltaV()
	targetDv := math.Hypot(wdv.X, wdv.Y)
	dir := vecmath.Unit(wdv)

	if targetDv <= 0 {
		return []BurnPoint{start}
	}

	integ := &burnIntegrator{
		mu:              seg.Mu,
		thrustDirection: dir,
		dryMass:         start.MassWithoutFuel,
		initialFuel:     start.FuelKg,
		flowRate:        seg.Engine.FuelFlowKgPerSecond,
		thrustNewtons:   seg.Engine.ThrustNewtons,
		exhaustVel:      seg.Engine.SpecificImpulse * vessel.StandardGravity,
		targetDv:        targetDv,
		state:           [5]float64{start.Position.X, start.Position.Y, start.Velocity.X, start.Velocity.Y, start.FuelKg},
		points:          []BurnPoint{start},
	}

	ode.NewRK4(start.Time, BurnTimeStep, integ).Solve() // Blocking.
	return integ.points
}

// maxBurnSteps bounds integration length so a mis-specified engine
// (zero thrust, huge requested dv) cannot loop forever; the simulation
// tick must never hang per the "propagation never fails" error policy.
const maxBurnSteps = 200000

func (b *burnIntegrator) pointAt(t float64) BurnPoint {
	return BurnPoint{
		MassWithoutFuel: b.dryMass,
		FuelKg:          b.state[4],
		Time:            t,
		Position:        r2.Vec{X: b.state[0], Y: b.state[1]},
		Velocity:        r2.Vec{X: b.state[2], Y: b.state[3]},
	}
}

func (b *burnIntegrator) GetState() []float64 { return b.state[:] }

func (b *burnIntegrator) SetState(t float64, s []float64) {
	copy(b.state[:], s)
	if b.state[4] <= 0 {
		b.state[4] = 0
		b.stopped = true
	} else {
		mass := b.dryMass + b.state[4]
		dvSoFar := b.exhaustVel * math.Log((b.dryMass+b.initialFuel)/mass)
		if dvSoFar >= b.targetDv {
			b.stopped = true
		}
	}
	b.steps++
	if b.steps >= maxBurnSteps {
		b.stopped = true
	}
	b.points = append(b.points, b.pointAt(t))
}

func (b *burnIntegrator) Func(t float64, f []float64) []float64 {
	x, y, vx, vy, fuel := f[0], f[1], f[2], f[3], f[4]
	r := math.Hypot(x, y)
	gx, gy := 0.0, 0.0
	if r > 0 {
		gx = -b.mu * x / (r * r * r)
		gy = -b.mu * y / (r * r * r)
	}
	mass := b.dryMass + fuel
	ax, ay := 0.0, 0.0
	if fuel > 0 && mass > 0 {
		ax = b.thrustNewtons / mass * b.thrustDirection.X
		ay = b.thrustNewtons / mass * b.thrustDirection.Y
	}
	fuelDot := -b.flowRate
	if fuel <= 0 {
		fuelDot = 0
	}
	return []float64{vx, vy, gx + ax, gy + ay, fuelDot}
}

func (b *burnIntegrator) Stop(t float64) bool {
	return b.stopped
}
