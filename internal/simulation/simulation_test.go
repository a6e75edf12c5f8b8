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

const mu = 3.986004418e5

func circularConic() orbit.Conic {
	r := r2.Vec{X: 7000, Y: 0}
	v := r2.Vec{X: 0, Y: math.Sqrt(mu / 7000)}
	return orbit.NewConicFromStateAtTime(r, v, mu, 0)
}

func TestTickAdvancesTimeAtTableSpeed(t *testing.T) {
	m := NewModel()
	parent := m.SpawnOrbitable("sun", 1.989e30, mu, nil, storage.Entity{}, false)

	conic := circularConic()
	seg := path.NewOrbitSegment(parent, 1.989e30, 500, conic, 0, 1e6)
	p := path.NewPath(path.NewOrbit(seg))
	ship := m.SpawnOrbitable("ship", 500, 0, p, parent, true)
	_ = ship

	m.TimeStep.LevelIndex = 0 // 1x
	m.Tick(10)
	if m.Now != 10 {
		t.Fatalf("expected Now == 10 at 1x speed, got %g", m.Now)
	}
}

func TestTickPausedDoesNotAdvance(t *testing.T) {
	m := NewModel()
	m.TimeStep.Paused = true
	m.Tick(100)
	if m.Now != 0 {
		t.Fatalf("expected paused tick not to advance time, got %g", m.Now)
	}
}

func TestWarpLandsExactlyOnTarget(t *testing.T) {
	m := NewModel()
	m.TimeStep.Warp = &Warp{StartTime: 0, EndTime: 100, StartSpeed: 1000}
	for i := 0; i < 1000; i++ {
		m.Tick(1)
		if m.Now > 100 {
			t.Fatalf("warp overshot target: Now=%g", m.Now)
		}
		if m.Now >= 100 {
			break
		}
	}
	if m.Now != 100 {
		t.Fatalf("expected warp to land exactly on 100, got %g", m.Now)
	}
	if m.TimeStep.Warp != nil {
		t.Fatalf("expected warp to clear once target reached")
	}
}

func TestStartBurnAppendsBurnAndOrbit(t *testing.T) {
	m := NewModel()
	parent := m.SpawnOrbitable("sun", 1.989e30, mu, nil, storage.Entity{}, false)

	conic := circularConic()
	seg := path.NewOrbitSegment(parent, 1.989e30, 500, conic, 0, 1e6)
	p := path.NewPath(path.NewOrbit(seg))
	ship := m.SpawnOrbitable("ship", 500, 0, p, parent, true)

	v := &vessel.Vessel{
		Name:      "ship",
		DryMassKg: 450,
		Engine:    &vessel.Engine{ThrustNewtons: 500, SpecificImpulse: 300, FuelFlowKgPerSecond: 0.17},
		FuelTank:  &vessel.FuelTank{CapacityLitres: 50, FuelLitres: 50},
		Timeline:  vessel.NewTimeline(),
	}
	m.Vessels.Set(ship, v)

	if err := m.StartBurn(ship, 10); err != nil {
		t.Fatalf("StartBurn failed: %v", err)
	}
	if len(p.Segments) != 3 {
		t.Fatalf("expected orbit+burn+orbit, got %d segments", len(p.Segments))
	}
	if p.Segments[1].Kind != path.KindBurn {
		t.Fatalf("expected second segment to be a burn, got %v", p.Segments[1].Kind)
	}
	if p.Segments[2].Kind != path.KindOrbit {
		t.Fatalf("expected third segment to be an orbit, got %v", p.Segments[2].Kind)
	}
}

func TestTransientEventSurvivesUntilNextTick(t *testing.T) {
	m := NewModel()
	parent := m.SpawnOrbitable("sun", 1.989e30, mu, nil, storage.Entity{}, false)
	target := m.SpawnOrbitable("torpedo-target", 100, 0, nil, parent, true)

	conic := circularConic()
	seg := path.NewOrbitSegment(parent, 1.989e30, 500, conic, 0, 1e6)
	p := path.NewPath(path.NewOrbit(seg))
	ship := m.SpawnOrbitable("ship", 500, 0, p, parent, true)

	tl := vessel.NewTimeline()
	tl.Add(vessel.Event{Type: vessel.Intercept, Time: 5, Target: target})
	m.Vessels.Set(ship, &vessel.Vessel{Name: "ship", DryMassKg: 500, Timeline: tl})

	m.Tick(10)
	if len(m.Transient) != 1 || m.Transient[0].Kind != "intercept" {
		t.Fatalf("expected the intercept transient to be readable right after the tick that produced it, got %+v", m.Transient)
	}

	m.Tick(1)
	if len(m.Transient) != 0 {
		t.Fatalf("expected the transient buffer to be cleared by the following tick, got %+v", m.Transient)
	}
}
