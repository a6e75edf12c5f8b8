package storage

import "testing"

func TestAllocatorReuse(t *testing.T) {
	a := NewAllocator()
	e0 := a.Allocate()
	e1 := a.Allocate()
	if e0.Index != 0 || e1.Index != 1 {
		t.Fatalf("unexpected indices: %v %v", e0, e1)
	}
	a.Deallocate(e0)
	if a.IsAlive(e0) {
		t.Fatalf("e0 should be dead after deallocation")
	}
	e2 := a.Allocate()
	if e2.Index != 0 {
		t.Fatalf("expected slot 0 to be reused, got %v", e2)
	}
	if e2.Generation != 1 {
		t.Fatalf("expected generation to have been bumped, got %v", e2)
	}
	if a.IsAlive(e0) {
		t.Fatalf("stale handle e0 must not be considered alive once slot reused")
	}
	if !a.IsAlive(e2) {
		t.Fatalf("e2 should be alive")
	}
}

func TestAllocatorEntitiesOrder(t *testing.T) {
	a := NewAllocator()
	e0 := a.Allocate()
	e1 := a.Allocate()
	_ = e1
	a.Allocate()
	a.Deallocate(e0)
	e3 := a.Allocate()
	entities := a.Entities()
	if len(entities) != 3 {
		t.Fatalf("expected 3 live entities, got %d", len(entities))
	}
	if entities[0] != e3 {
		t.Fatalf("expected reused slot 0 to sort first by index, got %v", entities[0])
	}
}

func TestNewAllocatorFromEntitiesReallocatesFreedSlotsFirst(t *testing.T) {
	a := NewAllocatorFromEntities([]Entity{
		{Index: 0, Generation: 2},
		{Index: 2, Generation: 0},
	})
	if !a.IsAlive(Entity{Index: 0, Generation: 2}) {
		t.Fatalf("expected index 0 generation 2 to be alive")
	}
	if !a.IsAlive(Entity{Index: 2, Generation: 0}) {
		t.Fatalf("expected index 2 generation 0 to be alive")
	}
	if len(a.Entities()) != 2 {
		t.Fatalf("expected exactly 2 live entities, got %d", len(a.Entities()))
	}
	next := a.Allocate()
	if next.Index != 1 {
		t.Fatalf("expected the gap at index 1 to be reused first, got %v", next)
	}
}
