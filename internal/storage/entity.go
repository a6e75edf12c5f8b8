// Package storage implements the generational entity handle allocator
// and the component maps it backs. It is grounded in the reference
// implementation's entity_allocator/entity_builder, adapted from Rust's
// HashSet-of-live-handles + free-list into a Go slice-of-generations,
// and in the teacher's habit (celestial.go, station.go) of keying
// lookups by a single compact identifier rather than a pointer graph.
package storage

import "fmt"

// Entity is an opaque generational handle. A handle is live only if its
// Generation matches the allocator's current generation for Index;
// Allocator.IsAlive reports whether a handle is stale, and Deallocate
// ignores a stale handle.
type Entity struct {
	Index      int
	Generation uint64
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d,%d)", e.Index, e.Generation)
}

// entry tracks whether a slot is live and at which generation.
type entry struct {
	generation uint64
	live       bool
}

// Allocator hands out and reclaims Entity handles from a free list,
// bumping the generation of a slot on every deallocation so that a
// handle captured before the deallocation is detectably stale.
type Allocator struct {
	entries []entry
	free    []int
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate returns a fresh live Entity, reusing a freed slot if one is
// available.
func (a *Allocator) Allocate() Entity {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[idx].live = true
		return Entity{Index: idx, Generation: a.entries[idx].generation}
	}
	idx := len(a.entries)
	a.entries = append(a.entries, entry{generation: 0, live: true})
	return Entity{Index: idx, Generation: 0}
}

// Deallocate frees e's slot and bumps its generation. Deallocating a
// stale or already-dead handle is a no-op: callers that scrub dangling
// references (see simulation's target-scrub pass) may legitimately call
// this twice.
func (a *Allocator) Deallocate(e Entity) {
	if !a.IsAlive(e) {
		return
	}
	a.entries[e.Index].live = false
	a.entries[e.Index].generation++
	a.free = append(a.free, e.Index)
}

// IsAlive reports whether e refers to a currently-live slot at the
// allocator's current generation for that index.
func (a *Allocator) IsAlive(e Entity) bool {
	if e.Index < 0 || e.Index >= len(a.entries) {
		return false
	}
	entry := a.entries[e.Index]
	return entry.live && entry.generation == e.Generation
}

// NewAllocatorFromEntities rebuilds an allocator from a flat list of
// live handles -- the reconstruction scheme the persistence format's
// doc comment calls for: every slot up to the highest index is created,
// saved handles are marked live at their saved generation, and any gap
// (an index that was freed before the save) is left dead at generation
// zero, which is conservatively safe since nothing in the save holds a
// handle to it.
func NewAllocatorFromEntities(entities []Entity) *Allocator {
	maxIndex := -1
	for _, e := range entities {
		if e.Index > maxIndex {
			maxIndex = e.Index
		}
	}
	a := &Allocator{entries: make([]entry, maxIndex+1)}
	for _, e := range entities {
		a.entries[e.Index] = entry{generation: e.Generation, live: true}
	}
	var free []int
	for i, ent := range a.entries {
		if !ent.live {
			free = append(free, i)
		}
	}
	a.free = free
	return a
}

// Entities returns every currently-live entity. Iteration order is the
// slot index order, which is stable because the allocator always reuses
// the most-recently-freed slot first -- the ordering guarantee the
// simulation tick's "segment advancement is ordered by entity iteration
// order" invariant relies on.
func (a *Allocator) Entities() []Entity {
	out := make([]Entity, 0, len(a.entries))
	for i, entry := range a.entries {
		if entry.live {
			out = append(out, Entity{Index: i, Generation: entry.generation})
		}
	}
	return out
}
