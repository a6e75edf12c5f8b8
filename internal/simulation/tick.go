package simulation

import (
	"math"

	"github.com/LordIdra/transfer-window-sub001/internal/config"
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// Tick advances the model by one real-time step dt, per §4.9:
//  1. Clear last tick's transient buffer -- consumers have had one full
//     tick to drain it (see TransientEvent's doc comment).
//  2. Compute sim_dt from the current time step / warp and advance Now.
//  3. Advance every entity with a path (vessels and orbitable bodies
//     alike -- internal/path.Path.Advance already spills overshoot across
//     segment boundaries).
//  4. Pop and execute due timeline events.
//  5. Recompute any guidance segment whose intercept prediction drifted.
//  6. Refresh fuel-tank bookkeeping from the path's current mass.
//  7. Tick launcher cooldowns.
//  8. Clear an expired warp.
func (m *Model) Tick(dt float64) {
	cfg := config.Get()
	m.Transient = m.Transient[:0]

	speed := m.TimeStep.EffectiveSpeed(m.Now, cfg)
	simDt := dt * speed
	if m.TimeStep.Warp != nil && m.Now+simDt >= m.TimeStep.Warp.EndTime {
		simDt = m.TimeStep.Warp.EndTime - m.Now
		if simDt < 0 {
			simDt = 0
		}
	}
	m.Now += simDt

	for _, e := range m.Paths.Entities() {
		if p := m.Paths.MustGet(e); p != nil {
			p.Advance(m.Now)
		}
	}

	for _, e := range m.Vessels.Entities() {
		v := m.Vessels.MustGet(e)
		if v.Timeline == nil {
			continue
		}
		for _, ev := range v.Timeline.PopEventsBefore(m.Now) {
			m.executeEvent(e, v, ev)
		}
	}

	m.recomputeDriftedGuidance()

	for _, e := range m.Vessels.Entities() {
		v := m.Vessels.MustGet(e)
		if v.FuelTank == nil {
			continue
		}
		if p, ok := m.Paths.Get(e); ok {
			v.FuelTank.FuelLitres = currentFuelLitres(p, m.Now, v, cfg)
		}
	}

	for _, e := range m.Vessels.Entities() {
		v := m.Vessels.MustGet(e)
		if v.TorpedoLauncher != nil {
			v.TorpedoLauncher.Tick(simDt)
		}
	}

	if m.TimeStep.Warp != nil && m.Now >= m.TimeStep.Warp.EndTime {
		m.TimeStep.Warp = nil
	}
}

// currentFuelLitres reads the vessel's remaining fuel mass off its
// path's current segment (burns and guidance deplete fuel as they
// integrate) and converts back to litres at the configured fuel density.
// Orbit and turn segments leave the tank unchanged: the RCS fuel a turn
// uses (TurnSegment.FuelConsumed) is not deducted here.
func currentFuelLitres(p *path.Path, now float64, v *vessel.Vessel, cfg config.Config) float64 {
	seg := p.CurrentSegment()
	if seg == nil {
		return v.FuelTank.FuelLitres
	}
	var fuelKg float64
	switch seg.Kind {
	case path.KindBurn:
		fuelKg = seg.Burn.PointAtTime(now).FuelKg
	case path.KindGuidance:
		fuelKg = seg.Guidance.EndPoint().FuelKg
	default:
		return v.FuelTank.FuelLitres
	}
	if cfg.FuelDensityKgPerLitre <= 0 {
		return v.FuelTank.FuelLitres
	}
	return fuelKg / cfg.FuelDensityKgPerLitre
}

// executeEvent performs the entity-level side effects of a popped
// timeline event. StartBurn/StartTurn/StartGuidance already rebuilt the
// path when they were scheduled (§4.6); only FireTorpedo and Intercept
// have further work to do here.
func (m *Model) executeEvent(vesselEntity storage.Entity, v *vessel.Vessel, ev vessel.Event) {
	switch ev.Type {
	case vessel.FireTorpedo:
		if ghostVessel, ok := m.Vessels.Get(ev.Ghost); ok {
			FireTorpedo(ghostVessel)
		}
	case vessel.Intercept:
		m.Transient = append(m.Transient, TransientEvent{Kind: "intercept", Entity: ev.Target, Time: ev.Time})
		m.Despawn(ev.Target)
		m.Despawn(vesselEntity)
	}
}

// recomputeDriftedGuidance implements §4.5's recalculation contract: any
// vessel currently following a Guidance segment whose WillIntercept no
// longer holds is re-integrated from its original start point against
// the target's live trajectory (Model.TargetStateFunc), and a transient
// event reports the drift for the tick's consumers.
func (m *Model) recomputeDriftedGuidance() {
	for _, e := range m.Paths.Entities() {
		p := m.Paths.MustGet(e)
		if p == nil {
			continue
		}
		seg := p.CurrentSegment()
		if seg == nil || seg.Kind != path.KindGuidance || !seg.Guidance.WillIntercept {
			continue
		}
		old := *seg.Guidance
		if _, ok := m.Paths.Get(old.Target); !ok {
			continue
		}
		end := old.EndPoint()
		tgtPos, _ := m.TargetStateFunc(old.Target)(end.Time)
		if math.Hypot(tgtPos.X-end.Position.X, tgtPos.Y-end.Position.Y) <= old.InterceptThreshold {
			continue
		}
		m.Transient = append(m.Transient, TransientEvent{Kind: "guidance_drift", Entity: e, Time: m.Now})
		_ = m.rebuildGuidance(e, p, old)
	}
}
