// Docking implements the supplemented docking contract: a vessel with a
// station set as its Target may dock once close and slow enough, after
// which it has no Path of its own (its state is read off the station it
// occupies, see Model.PositionVelocity) until it undocks back onto a
// fresh free orbit. Grounded in the teacher's station.go Station type,
// generalized from ground-tracking geometry (range/elevation) to
// docking-port occupancy and a distance/relative-speed gate.
package simulation

import (
	"fmt"
	"math"

	"github.com/LordIdra/transfer-window-sub001/internal/config"
	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
)

// extraUndockVelocity is the additional speed, in the station's own
// velocity direction, given to a freshly-undocked vessel so it clears
// the station rather than immediately re-triggering CanDock.
const extraUndockVelocity = 1.0

// CanEverDockToTarget reports whether vesselEntity's current Target is a
// station it is physically able to dock to (it carries no engine
// requirement -- docking uses RCS/momentum, not the main engine).
func (m *Model) CanEverDockToTarget(vesselEntity storage.Entity) bool {
	v, ok := m.Vessels.Get(vesselEntity)
	if !ok || v.Target == nil {
		return false
	}
	_, isStation := m.Stations.Get(*v.Target)
	return isStation
}

// CanDock reports whether vesselEntity is close enough and slow enough,
// relative to its targeted station, to dock right now.
func (m *Model) CanDock(vesselEntity storage.Entity, t float64) bool {
	if !m.CanEverDockToTarget(vesselEntity) {
		return false
	}
	v := m.Vessels.MustGet(vesselEntity)
	station := *v.Target
	s := m.Stations.MustGet(station)
	if _, free := s.FreePort(); !free {
		return false
	}
	vp, vv, ok := m.PositionVelocity(vesselEntity, t)
	if !ok {
		return false
	}
	sp, sv, ok := m.PositionVelocity(station, t)
	if !ok {
		return false
	}
	cfg := config.Get()
	distance := math.Hypot(vp.X-sp.X, vp.Y-sp.Y)
	relativeSpeed := math.Hypot(vv.X-sv.X, vv.Y-sv.Y)
	return distance < cfg.DockingDistanceMeters && relativeSpeed < cfg.DockingSpeedMetersPerS
}

// FindStationDockedTo returns the station entity is currently docked at,
// if any.
func (m *Model) FindStationDockedTo(entity storage.Entity) (storage.Entity, bool) {
	for _, se := range m.Stations.Entities() {
		s := m.Stations.MustGet(se)
		if _, ok := s.PortOf(entity); ok {
			return se, true
		}
	}
	return storage.Entity{}, false
}

// Docked reports whether entity is currently docked: it carries a
// Vessel component but no Path, the same test the original docking
// contract uses (a docked vessel's position comes from its station, not
// its own trajectory).
func (m *Model) Docked(entity storage.Entity) bool {
	if _, ok := m.Vessels.Get(entity); !ok {
		return false
	}
	_, hasPath := m.Paths.Get(entity)
	return !hasPath
}

// Dock docks vesselEntity at its targeted station's first free port,
// dropping the vessel's Path entirely -- while docked, its state is read
// off the station (see Model.PositionVelocity).
func (m *Model) Dock(vesselEntity storage.Entity, t float64) error {
	if !m.CanDock(vesselEntity, t) {
		return fmt.Errorf("simulation: vessel %s cannot dock right now", vesselEntity)
	}
	v := m.Vessels.MustGet(vesselEntity)
	station := *v.Target
	s := m.Stations.MustGet(station)
	loc, ok := s.FreePort()
	if !ok {
		return fmt.Errorf("simulation: station %s has no free docking port", station)
	}
	m.Paths.Remove(vesselEntity)
	s.Dock(loc, vesselEntity)
	return nil
}

// Undock releases entity from the station it is docked to and gives it
// a fresh Orbit segment starting at the station's current state plus a
// small velocity bump (extraUndockVelocity) along the station's own
// velocity direction, per the original docking contract.
func (m *Model) Undock(entity storage.Entity) error {
	station, ok := m.FindStationDockedTo(entity)
	if !ok {
		return fmt.Errorf("simulation: %s is not docked to any station", entity)
	}
	s := m.Stations.MustGet(station)
	loc, ok := s.PortOf(entity)
	if !ok {
		return fmt.Errorf("simulation: %s is not docked to %s", entity, station)
	}
	s.Undock(loc)

	parent, hasParent := m.Parents.Get(station)
	if !hasParent {
		return fmt.Errorf("simulation: station %s has no parent to orbit", station)
	}
	mu := m.Mu(parent)
	mass, _ := m.Masses.Get(entity)

	position, velocity, ok := m.PositionVelocity(station, m.Now)
	if !ok {
		return fmt.Errorf("simulation: cannot read station %s's state", station)
	}
	speed := math.Hypot(velocity.X, velocity.Y)
	if speed > 0 {
		velocity.X += velocity.X / speed * extraUndockVelocity
		velocity.Y += velocity.Y / speed * extraUndockVelocity
	}

	parentMass, _ := m.Masses.Get(parent)
	conic := orbit.NewConicFromStateAtTime(position, velocity, mu, m.Now)
	seg := path.NewOrbitSegment(parent, parentMass, mass, conic, m.Now, m.Now+orbitSegmentHorizon(conic, mu))
	m.Paths.Set(entity, path.NewPath(path.NewOrbit(seg)))
	return nil
}
