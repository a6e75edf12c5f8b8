package persistence

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/simulation"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

const testMu = 3.986004418e5

func testModel(t *testing.T) (*simulation.Model, storage.Entity, storage.Entity) {
	t.Helper()
	m := simulation.NewModel()
	sun := m.SpawnOrbitable("sun", 1.989e30, testMu, nil, storage.Entity{}, false)

	r := r2.Vec{X: 7000, Y: 0}
	v := r2.Vec{X: 0, Y: math.Sqrt(testMu / 7000)}
	conic := orbit.NewConic(r, v, testMu, 0)
	seg := path.NewOrbitSegment(sun, 1.989e30, 300, conic, 0, 1e6)
	p := path.NewPath(path.NewOrbit(seg))
	ship := m.SpawnOrbitable("ship", 300, 0, p, sun, true)
	m.Vessels.Set(ship, &vessel.Vessel{
		Name:      "ship",
		DryMassKg: 250,
		Engine:    &vessel.Engine{ThrustNewtons: 400, SpecificImpulse: 300, FuelFlowKgPerSecond: 0.14},
		FuelTank:  &vessel.FuelTank{CapacityLitres: 50, FuelLitres: 50},
		Timeline:  vessel.NewTimeline(),
	})
	return m, sun, ship
}

func TestSaveLoadRoundTripsEntitiesAndPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	m, sun, ship := testModel(t)
	m.Now = 42
	if err := Save(m, "scenario-a"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(SavesDir, "scenario-a.json")); err != nil {
		t.Fatalf("expected save file to exist: %v", err)
	}

	loaded, err := Load("scenario-a")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Now != 42 {
		t.Fatalf("expected Now == 42, got %g", loaded.Now)
	}
	if !loaded.Allocator.IsAlive(sun) || !loaded.Allocator.IsAlive(ship) {
		t.Fatalf("expected both entities to round-trip alive")
	}
	if loaded.Names.MustGet(ship) != "ship" {
		t.Fatalf("expected ship name to round-trip")
	}
	parent, ok := loaded.Parents.Get(ship)
	if !ok || parent != sun {
		t.Fatalf("expected ship's parent to round-trip as sun, got %v ok=%v", parent, ok)
	}
	p, ok := loaded.Paths.Get(ship)
	if !ok || p == nil || len(p.Segments) != 1 {
		t.Fatalf("expected ship's single-orbit path to round-trip, got %+v ok=%v", p, ok)
	}
	v, ok := loaded.Vessels.Get(ship)
	if !ok || v.FuelTank == nil || v.FuelTank.FuelLitres != 50 {
		t.Fatalf("expected ship's vessel state to round-trip")
	}
}

func TestLoadMissingSaveReturnsError(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(cwd)

	if _, err := Load("does-not-exist"); err == nil {
		t.Fatalf("expected an error loading a missing save")
	}
}

func TestExportTrajectoryCSVWritesHeaderAndSamples(t *testing.T) {
	r := r2.Vec{X: 7000, Y: 0}
	v := r2.Vec{X: 0, Y: math.Sqrt(testMu / 7000)}
	conic := orbit.NewConic(r, v, testMu, 0)
	parent := storage.Entity{Index: 0, Generation: 0}
	seg := path.NewOrbitSegment(parent, 1.989e30, 300, conic, 0, 100)
	p := path.NewPath(path.NewOrbit(seg))

	var buf bytes.Buffer
	if err := ExportTrajectoryCSV(p, 5, &buf); err != nil {
		t.Fatalf("ExportTrajectoryCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "time,x,y,vx,vy,mass" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines) != 6 {
		t.Fatalf("expected 1 header + 5 sample rows, got %d lines", len(lines))
	}
}

func TestCompletedScenariosRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(cwd)

	set, err := LoadCompletedScenarios()
	if err != nil {
		t.Fatalf("LoadCompletedScenarios failed: %v", err)
	}
	if set.IsCompleted("tutorial") {
		t.Fatalf("expected a fresh set to have nothing completed")
	}
	set.Mark("tutorial")
	if err := set.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadCompletedScenarios()
	if err != nil {
		t.Fatalf("LoadCompletedScenarios failed: %v", err)
	}
	if !reloaded.IsCompleted("tutorial") {
		t.Fatalf("expected tutorial to be marked completed after reload")
	}
}
