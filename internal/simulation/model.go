// Package simulation wires the entity/component storage, the trajectory
// core (internal/path, internal/orbit, internal/encounter) and the vessel
// component into the single-threaded cooperative tick described in §4.9
// and §5 of the specification. There is no teacher analogue for this
// orchestration layer -- the teacher drives propagation from a static,
// pre-built Mission/Schedule rather than a live, player-editable
// entity/component model -- so it is grounded in the spec's own
// operation list, built in the entity/component idiom the storage
// package establishes.
package simulation

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// TransientEvent is a one-tick notification (explosion, story beat) that
// consumers (UI, audio, scripting -- all external per the spec's
// Non-goals) read off Model.Transient after a Tick call; the next Tick
// clears it before producing its own.
type TransientEvent struct {
	Kind   string
	Entity storage.Entity
	Time   float64
}

// Model is the whole simulated state: the entity allocator and every
// component map, plus the current simulation time and time-step
// configuration.
type Model struct {
	Allocator *storage.Allocator

	Names    *storage.ComponentMap[string]
	Paths    *storage.ComponentMap[*path.Path]
	Vessels  *storage.ComponentMap[*vessel.Vessel]
	Stations *storage.ComponentMap[*vessel.Station]
	Masses   *storage.ComponentMap[float64]
	Mus      *storage.ComponentMap[float64]
	Parents  *storage.ComponentMap[storage.Entity]

	Now      float64
	TimeStep TimeStep

	Transient []TransientEvent
}

// NewModel returns an empty model with all component maps initialized.
func NewModel() *Model {
	return &Model{
		Allocator: storage.NewAllocator(),
		Names:     storage.NewComponentMap[string](),
		Paths:     storage.NewComponentMap[*path.Path](),
		Vessels:   storage.NewComponentMap[*vessel.Vessel](),
		Stations:  storage.NewComponentMap[*vessel.Station](),
		Masses:    storage.NewComponentMap[float64](),
		Mus:       storage.NewComponentMap[float64](),
		Parents:   storage.NewComponentMap[storage.Entity](),
	}
}

// SpawnOrbitable allocates an entity carrying a name, mass, gravitational
// parameter (mu = G*M, stored directly the way the teacher's celestial.go
// carries each body's mu as a constant rather than deriving it from mass
// on every use) and path (a celestial body, station, vessel or torpedo),
// optionally attached to a parent entity for SOI/encounter purposes.
func (m *Model) SpawnOrbitable(name string, mass, mu float64, p *path.Path, parent storage.Entity, hasParent bool) storage.Entity {
	e := m.Allocator.Allocate()
	m.Names.Set(e, name)
	m.Masses.Set(e, mass)
	m.Mus.Set(e, mu)
	if p != nil {
		m.Paths.Set(e, p)
	}
	if hasParent {
		m.Parents.Set(e, parent)
	}
	return e
}

// Despawn deallocates e and scrubs it from every component map, including
// clearing any vessel's Target that pointed at it -- the target-scrubbing
// pass called out by §4.9's Intercept handling so no vessel is left
// holding a dangling handle.
func (m *Model) Despawn(e storage.Entity) {
	m.Allocator.Deallocate(e)
	m.Names.Remove(e)
	m.Paths.Remove(e)
	m.Vessels.Remove(e)
	m.Stations.Remove(e)
	m.Masses.Remove(e)
	m.Mus.Remove(e)
	m.Parents.Remove(e)
	for _, ve := range m.Vessels.Entities() {
		v := m.Vessels.MustGet(ve)
		if v.Target != nil && *v.Target == e {
			v.Target = nil
		}
	}
	for _, se := range m.Stations.Entities() {
		s := m.Stations.MustGet(se)
		if loc, ok := s.PortOf(e); ok {
			s.Undock(loc)
		}
	}
}

// Mu returns parent's stored gravitational parameter.
func (m *Model) Mu(parent storage.Entity) float64 {
	mu, _ := m.Mus.Get(parent)
	return mu
}

// PositionVelocity returns e's position and velocity at time t. A free
// entity reads these off its own Path; a docked vessel has no Path of
// its own (per the docking contract, see internal/simulation/docking.go)
// so its state is derived from the station it is docked to instead.
func (m *Model) PositionVelocity(e storage.Entity, t float64) (r2.Vec, r2.Vec, bool) {
	if p, ok := m.Paths.Get(e); ok && p != nil {
		seg, ok := p.FutureSegmentAtTime(t)
		if !ok {
			seg = p.CurrentSegment()
		}
		if seg == nil {
			return r2.Vec{}, r2.Vec{}, false
		}
		return seg.PositionAtTime(t), seg.VelocityAtTime(t), true
	}
	if station, ok := m.FindStationDockedTo(e); ok {
		return m.PositionVelocity(station, t)
	}
	return r2.Vec{}, r2.Vec{}, false
}

// TargetStateFunc builds the path.TargetStateFunc closure guidance needs
// to integrate against a live target, reading the target's own Path
// rather than caching a snapshot -- so a rebuilt Guidance segment (see
// recomputeDriftedGuidance) always sees the target's latest trajectory.
func (m *Model) TargetStateFunc(target storage.Entity) path.TargetStateFunc {
	return func(t float64) (r2.Vec, r2.Vec) {
		tp, ok := m.Paths.Get(target)
		if !ok || tp == nil {
			return r2.Vec{}, r2.Vec{}
		}
		seg, ok := tp.FutureSegmentAtTime(t)
		if !ok {
			seg = tp.CurrentSegment()
		}
		if seg == nil {
			return r2.Vec{}, r2.Vec{}
		}
		return seg.PositionAtTime(t), seg.VelocityAtTime(t)
	}
}
