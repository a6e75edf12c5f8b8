package simulation

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

func dockingScenario(t *testing.T) (*Model, storage.Entity, storage.Entity, storage.Entity) {
	t.Helper()
	m := NewModel()
	parent := m.SpawnOrbitable("sun", 1.989e30, mu, nil, storage.Entity{}, false)

	conic := circularConic()
	stationSeg := path.NewOrbitSegment(parent, 1.989e30, 6.0e5, conic, 0, 1e6)
	stationPath := path.NewPath(path.NewOrbit(stationSeg))
	station := m.SpawnOrbitable("hub", 6.0e5, 0, stationPath, parent, true)
	m.Stations.Set(station, vessel.NewStation(vessel.StationHub, vessel.Player))

	r := r2.Vec{X: 7000, Y: 1}
	v := r2.Vec{X: 0, Y: math.Sqrt(mu / 7000)}
	shipConic := orbit.NewConicFromStateAtTime(r, v, mu, 0)
	shipSeg := path.NewOrbitSegment(parent, 1.989e30, 300, shipConic, 0, 1e6)
	shipPath := path.NewPath(path.NewOrbit(shipSeg))
	ship := m.SpawnOrbitable("ship", 300, 0, shipPath, parent, true)
	m.Vessels.Set(ship, &vessel.Vessel{Name: "ship", DryMassKg: 300, Target: &station})

	return m, parent, station, ship
}

func TestCanDockRequiresCloseAndSlow(t *testing.T) {
	m, _, _, ship := dockingScenario(t)
	if !m.CanDock(ship, 0) {
		t.Fatalf("expected ship to be close enough and slow enough to dock")
	}
}

func TestDockRemovesPathAndOccupiesPort(t *testing.T) {
	m, _, station, ship := dockingScenario(t)
	if err := m.Dock(ship, 0); err != nil {
		t.Fatalf("Dock failed: %v", err)
	}
	if _, ok := m.Paths.Get(ship); ok {
		t.Fatalf("expected docked ship to have no Path")
	}
	if !m.Docked(ship) {
		t.Fatalf("expected Docked(ship) to be true")
	}
	s := m.Stations.MustGet(station)
	if _, ok := s.PortOf(ship); !ok {
		t.Fatalf("expected ship to occupy a docking port")
	}
}

func TestDockFailsWhenTooFar(t *testing.T) {
	m, parent, station, _ := dockingScenario(t)
	r := r2.Vec{X: 70000, Y: 0}
	v := r2.Vec{X: 0, Y: math.Sqrt(mu / 70000)}
	farConic := orbit.NewConic(r, v, mu, 0)
	farSeg := path.NewOrbitSegment(parent, 1.989e30, 300, farConic, 0, 1e6)
	farPath := path.NewPath(path.NewOrbit(farSeg))
	far := m.SpawnOrbitable("far-ship", 300, 0, farPath, parent, true)
	m.Vessels.Set(far, &vessel.Vessel{Name: "far-ship", DryMassKg: 300, Target: &station})

	if m.CanDock(far, 0) {
		t.Fatalf("expected a distant ship not to be dockable")
	}
	if err := m.Dock(far, 0); err == nil {
		t.Fatalf("expected Dock to fail for a distant ship")
	}
}

func TestUndockGivesFreshOrbit(t *testing.T) {
	m, _, station, ship := dockingScenario(t)
	if err := m.Dock(ship, 0); err != nil {
		t.Fatalf("Dock failed: %v", err)
	}
	if err := m.Undock(ship); err != nil {
		t.Fatalf("Undock failed: %v", err)
	}
	p, ok := m.Paths.Get(ship)
	if !ok || p == nil || len(p.Segments) != 1 {
		t.Fatalf("expected undocked ship to have a fresh single-segment path")
	}
	if m.Docked(ship) {
		t.Fatalf("expected ship not to be docked after Undock")
	}
	s := m.Stations.MustGet(station)
	if _, ok := s.PortOf(ship); ok {
		t.Fatalf("expected ship's docking port to be freed")
	}
}
