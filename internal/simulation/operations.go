package simulation

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/config"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// truncateEndOrbitAt cuts the path's final segment to end exactly at t,
// if it is an Orbit segment ending later than t -- the straddling-segment
// truncation §4.2 calls for as the second half of remove_segments_after,
// which internal/path leaves for the caller rebuilding the tail (see
// RemoveSegmentsAfter's doc comment).
func truncateEndOrbitAt(p *path.Path, t float64) {
	seg := p.EndSegment()
	if seg == nil || seg.Kind != path.KindOrbit {
		return
	}
	if seg.Orbit.End > t {
		seg.Orbit.End = t
	}
}

// StartBurn implements §4.6's StartBurn(t): truncate the path at t,
// append a zero-delta-v Burn there, then a post-burn Orbit fit to the
// (unchanged, since delta-v is zero) resulting state. The burn's delta-v
// is edited afterwards by the caller (UI) via RecomputeBurn.
func (m *Model) StartBurn(vesselEntity storage.Entity, t float64) error {
	v := m.Vessels.MustGet(vesselEntity)
	if !v.HasEngine() {
		return fmt.Errorf("simulation: vessel %s has no engine, cannot start a burn", vesselEntity)
	}
	p, ok := m.Paths.Get(vesselEntity)
	if !ok {
		return fmt.Errorf("simulation: vessel %s has no path", vesselEntity)
	}
	p.RemoveSegmentsAfter(t)
	truncateEndOrbitAt(p, t)

	seg := p.EndSegment()
	if seg.Kind != path.KindOrbit {
		return fmt.Errorf("simulation: vessel %s is not coasting at %g, cannot start a burn", vesselEntity, t)
	}
	parent := seg.Orbit.Parent
	mu := m.Mu(parent)
	pos := seg.PositionAtTime(t)
	vel := seg.VelocityAtTime(t)

	cfg := config.Get()
	start := path.BurnPoint{
		MassWithoutFuel: v.DryMassKg,
		FuelKg:          v.FuelTank.KgRemaining(cfg.FuelDensityKgPerLitre),
		Time:            t,
		Position:        pos,
		Velocity:        vel,
	}
	burn := path.NewBurnSegment(parent, mu, start, vel, r2.Vec{}, *v.Engine)
	if err := p.Append(path.NewBurn(burn)); err != nil {
		return err
	}
	return m.recomputeTrajectoryAfterBurn(vesselEntity, p, parent, mu)
}

// RecomputeBurn rebuilds the current burn segment (and everything after
// it) with a new delta-v, per §4.6's recomputation contract: editing a
// burn is remove-then-rebuild, never an in-place mutation of cached
// points.
func (m *Model) RecomputeBurn(vesselEntity storage.Entity, deltaV [2]float64) error {
	v := m.Vessels.MustGet(vesselEntity)
	p, ok := m.Paths.Get(vesselEntity)
	if !ok {
		return fmt.Errorf("simulation: vessel %s has no path", vesselEntity)
	}
	seg := p.CurrentSegment()
	if seg == nil || seg.Kind != path.KindBurn {
		return fmt.Errorf("simulation: vessel %s is not currently burning", vesselEntity)
	}
	burn := seg.Burn
	start := burn.Points[0]
	parent := burn.Parent
	mu := burn.Mu
	tangent := burn.TangentX

	p.RemoveSegmentsAfter(start.Time - 1e-9)
	rebuilt := path.NewBurnSegment(parent, mu, start, tangent, r2.Vec{X: deltaV[0], Y: deltaV[1]}, *v.Engine)
	if err := p.Append(path.NewBurn(rebuilt)); err != nil {
		return err
	}
	return m.recomputeTrajectoryAfterBurn(vesselEntity, p, parent, mu)
}

func (m *Model) recomputeTrajectoryAfterBurn(vesselEntity storage.Entity, p *path.Path, parent storage.Entity, mu float64) error {
	end := p.EndSegment()
	pt := end.Burn.EndPoint()
	conic := orbit.NewConicFromStateAtTime(pt.Position, pt.Velocity, mu, pt.Time)
	seg := path.NewOrbitSegment(parent, 0, pt.Mass(), conic, pt.Time, pt.Time+orbitSegmentHorizon(conic, mu))
	return p.Append(path.NewOrbit(seg))
}

// orbitSegmentHorizon returns how far into the future a freshly-fit
// Orbit segment should initially extend before the encounter predictor
// (internal/encounter) decides whether to truncate it at an SOI
// transition -- one full period for elliptical orbits, or a fixed
// horizon for hyperbolic ones which never repeat.
func orbitSegmentHorizon(c orbit.Conic, mu float64) float64 {
	if period, ok := c.Period(mu); ok && period > 0 {
		return period
	}
	return 1e7
}

// StartTurn implements the Turn half of §4.6: truncate at t, append a
// Turn segment rotating from the current rotation to targetRotation,
// then a post-turn Orbit (unperturbed, so it is simply the same Conic
// continued) beginning at the turn's end.
func (m *Model) StartTurn(vesselEntity storage.Entity, t, targetRotation, currentRotation float64) error {
	v := m.Vessels.MustGet(vesselEntity)
	if !v.HasRCS() {
		return fmt.Errorf("simulation: vessel %s has no RCS, cannot turn", vesselEntity)
	}
	p, ok := m.Paths.Get(vesselEntity)
	if !ok {
		return fmt.Errorf("simulation: vessel %s has no path", vesselEntity)
	}
	p.RemoveSegmentsAfter(t)
	truncateEndOrbitAt(p, t)

	seg := p.EndSegment()
	if seg.Kind != path.KindOrbit {
		return fmt.Errorf("simulation: vessel %s is not coasting at %g, cannot start a turn", vesselEntity, t)
	}
	conic := seg.Orbit.Conic
	turn := path.NewTurnSegment(seg.Orbit.Parent, conic, t, currentRotation, targetRotation, v.RCS.AngularAccelerationRadPerS2, v.RCS.FuelFlowKgPerSecond)
	if err := p.Append(path.NewTurn(turn)); err != nil {
		return err
	}
	endTime := turn.EndTime()
	post := path.NewOrbitSegment(seg.Orbit.Parent, seg.Orbit.ParentMass, seg.Orbit.OrbitingMass, conic, endTime, endTime+orbitSegmentHorizon(conic, conic.Mu))
	return p.Append(path.NewOrbit(post))
}

// StartGuidance implements the Guidance half of §4.6: only torpedo-class
// vessels may home (IsTorpedoClass), and a started guidance segment is a
// blocking timeline event -- no further burns or turns may be scheduled
// once it begins.
func (m *Model) StartGuidance(vesselEntity, targetEntity storage.Entity, t float64, targetState path.TargetStateFunc) error {
	v := m.Vessels.MustGet(vesselEntity)
	if !v.IsTorpedoClass {
		return fmt.Errorf("simulation: vessel %s is not torpedo-class, cannot enable guidance", vesselEntity)
	}
	if !v.HasEngine() {
		return fmt.Errorf("simulation: vessel %s has no engine, cannot enable guidance", vesselEntity)
	}
	p, ok := m.Paths.Get(vesselEntity)
	if !ok {
		return fmt.Errorf("simulation: vessel %s has no path", vesselEntity)
	}
	p.RemoveSegmentsAfter(t)
	truncateEndOrbitAt(p, t)

	seg := p.EndSegment()
	if seg.Kind != path.KindOrbit {
		return fmt.Errorf("simulation: vessel %s is not coasting at %g, cannot enable guidance", vesselEntity, t)
	}
	parent := seg.Orbit.Parent
	mu := m.Mu(parent)
	pos := seg.PositionAtTime(t)
	vel := seg.VelocityAtTime(t)

	cfg := config.Get()
	start := path.GuidancePoint{
		MassWithoutFuel: v.DryMassKg,
		FuelKg:          v.FuelTank.KgRemaining(cfg.FuelDensityKgPerLitre),
		Time:            t,
		Position:        pos,
		Velocity:        vel,
	}
	guidance := path.NewGuidanceSegment(parent, targetEntity, mu, cfg.ProportionalNavGain, cfg.LOSRateDeltaSeconds, cfg.DockingDistanceMeters, *v.Engine, start, targetState)
	if err := p.Append(path.NewGuidance(guidance)); err != nil {
		return err
	}
	v.Target = &targetEntity
	return appendPostGuidanceOrbit(p, parent, mu, guidance)
}

// appendPostGuidanceOrbit fits and appends the coast segment following a
// Guidance segment's terminal point, shared by StartGuidance and
// recomputeDriftedGuidance's rebuild path.
func appendPostGuidanceOrbit(p *path.Path, parent storage.Entity, mu float64, guidance path.GuidanceSegment) error {
	endPt := guidance.EndPoint()
	conic := orbit.NewConicFromStateAtTime(endPt.Position, endPt.Velocity, mu, endPt.Time)
	post := path.NewOrbitSegment(parent, 0, endPt.Mass(), conic, endPt.Time, endPt.Time+orbitSegmentHorizon(conic, mu))
	return p.Append(path.NewOrbit(post))
}

// rebuildGuidance re-integrates a drifted Guidance segment from its
// original start point against the target's live trajectory (see
// Model.TargetStateFunc), then refits the coast segment that follows it.
// Unlike StartGuidance this does not require the path to currently be
// coasting -- it replaces the in-flight Guidance segment itself.
func (m *Model) rebuildGuidance(vesselEntity storage.Entity, p *path.Path, old path.GuidanceSegment) error {
	v := m.Vessels.MustGet(vesselEntity)
	if v.Engine == nil {
		return fmt.Errorf("simulation: vessel %s has no engine, cannot recompute guidance", vesselEntity)
	}
	start := old.Points[0]
	p.RemoveSegmentsAfter(start.Time - 1e-9)
	cfg := config.Get()
	rebuilt := path.NewGuidanceSegment(old.Parent, old.Target, old.Mu, cfg.ProportionalNavGain, cfg.LOSRateDeltaSeconds, cfg.DockingDistanceMeters, *v.Engine, start, m.TargetStateFunc(old.Target))
	if err := p.Append(path.NewGuidance(rebuilt)); err != nil {
		return err
	}
	return appendPostGuidanceOrbit(p, old.Parent, old.Mu, rebuilt)
}

// FireTorpedo unghosts a previously spawned ghost torpedo, attaching it
// to the simulation as a live vessel effective at t.
func FireTorpedo(v *vessel.Vessel) {
	v.Ghost = false
}
