package path

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LordIdra/transfer-window-sub001/internal/orbit"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
)

func testConic(t *testing.T) orbit.Conic {
	mu := 3.986004418e5
	r := r2.Vec{X: 7000, Y: 0}
	v := r2.Vec{X: 0, Y: 7.5}
	return orbit.NewConic(r, v, mu, 0)
}

func TestPathAppendRejectsDiscontinuity(t *testing.T) {
	conic := testConic(t)
	parent := storage.Entity{Index: 0, Generation: 0}
	seg0 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 0, 100))
	p := NewPath(seg0)

	seg1 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 150, 200))
	if err := p.Append(seg1); err == nil {
		t.Fatalf("expected discontinuity error")
	}

	seg1ok := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 100, 200))
	if err := p.Append(seg1ok); err != nil {
		t.Fatalf("expected contiguous append to succeed: %v", err)
	}
}

func TestPathAdvanceSpillsAcrossSegments(t *testing.T) {
	conic := testConic(t)
	parent := storage.Entity{Index: 0, Generation: 0}
	seg0 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 0, 50))
	seg1 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 50, 150))
	p := NewPath(seg0)
	if err := p.Append(seg1); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	p.Advance(80)
	if p.CurrentIndex != 1 {
		t.Fatalf("expected current index to spill into segment 1, got %d", p.CurrentIndex)
	}
}

func TestPathRemoveSegmentsAfter(t *testing.T) {
	conic := testConic(t)
	parent := storage.Entity{Index: 0, Generation: 0}
	seg0 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 0, 50))
	seg1 := NewOrbit(NewOrbitSegment(parent, 5.972e24, 300, conic, 50, 150))
	p := NewPath(seg0)
	p.Append(seg1)

	p.RemoveSegmentsAfter(10)
	if len(p.Segments) != 1 {
		t.Fatalf("expected only the straddling segment to remain, got %d segments", len(p.Segments))
	}
}

func TestConsecutiveSegmentsShareJoinState(t *testing.T) {
	conic := testConic(t)
	parent := storage.Entity{Index: 0, Generation: 0}
	seg0 := NewOrbitSegment(parent, 5.972e24, 300, conic, 0, 50)
	seg1 := NewOrbitSegment(parent, 5.972e24, 300, conic, 50, 150)

	p0 := seg0.PositionAtTime(50)
	p1 := seg1.PositionAtTime(50)
	if !floats.EqualWithinAbs(p0.X, p1.X, 1e-3) || !floats.EqualWithinAbs(p0.Y, p1.Y, 1e-3) {
		t.Fatalf("segment join positions differ: %v vs %v", p0, p1)
	}
}
