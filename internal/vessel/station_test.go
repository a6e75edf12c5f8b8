package vessel

import (
	"testing"

	"github.com/LordIdra/transfer-window-sub001/internal/storage"
)

func TestNewStationPortLayoutByClass(t *testing.T) {
	hub := NewStation(StationHub, Player)
	if len(hub.DockingPorts) != 4 {
		t.Fatalf("expected a Hub to have 4 docking ports, got %d", len(hub.DockingPorts))
	}
	outpost := NewStation(StationOutpost, Player)
	if len(outpost.DockingPorts) != 2 {
		t.Fatalf("expected an Outpost to have 2 docking ports, got %d", len(outpost.DockingPorts))
	}
}

func TestStationDockAndUndock(t *testing.T) {
	s := NewStation(StationOutpost, Player)
	ship := storage.Entity{Index: 1, Generation: 0}

	loc, ok := s.FreePort()
	if !ok {
		t.Fatalf("expected a fresh station to have a free port")
	}
	s.Dock(loc, ship)

	if got, ok := s.PortOf(ship); !ok || got != loc {
		t.Fatalf("expected ship to occupy %v, got %v ok=%v", loc, got, ok)
	}

	other := storage.Entity{Index: 2, Generation: 0}
	otherLoc, ok := s.FreePort()
	if !ok || otherLoc == loc {
		t.Fatalf("expected the remaining free port to differ from the occupied one")
	}
	s.Dock(otherLoc, other)

	if _, ok := s.FreePort(); ok {
		t.Fatalf("expected an Outpost with both ports occupied to report no free port")
	}

	s.Undock(loc)
	if _, ok := s.PortOf(ship); ok {
		t.Fatalf("expected ship's port to be freed after Undock")
	}
	if free, ok := s.FreePort(); !ok || free != loc {
		t.Fatalf("expected the freed port %v to be reported free, got %v ok=%v", loc, free, ok)
	}
}

func TestStationMassByClass(t *testing.T) {
	if NewStation(StationHub, Player).Mass() != StationHub.Mass() {
		t.Fatalf("expected Station.Mass to delegate to its class")
	}
	if StationHub.Mass() <= StationOutpost.Mass() {
		t.Fatalf("expected a Hub to be heavier than an Outpost")
	}
}
