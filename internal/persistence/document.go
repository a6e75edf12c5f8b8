// Package persistence implements §6's save/load contract: the entire
// model serializes to a self-describing JSON document with entity
// handles as {index, generation} pairs, segments as tagged unions and
// timelines as arrays of tagged events -- reusing this repo's own
// domain types as the wire format rather than a parallel DTO tree,
// since every field involved is already exported. It also carries the
// teacher's export.go-style debug trajectory export and the
// completed-scenario bookkeeping named in §6.
//
// Grounded in the teacher's config.go/export.go habit of treating JSON
// as the lingua franca for data leaving the process, and in
// spacecraft.go's go-kit/log logger for reporting I/O failures without
// aborting the run (§7's persistence-failure error kind).
package persistence

import (
	"github.com/LordIdra/transfer-window-sub001/internal/path"
	"github.com/LordIdra/transfer-window-sub001/internal/simulation"
	"github.com/LordIdra/transfer-window-sub001/internal/storage"
	"github.com/LordIdra/transfer-window-sub001/internal/vessel"
)

// EntityRecord is one orbitable's full saved state. Path and Vessel are
// both reused verbatim (every field of path.Path, path.Segment and
// vessel.Vessel is already exported), so no data is re-derived or
// duplicated in the document beyond what the live Model itself holds.
type EntityRecord struct {
	Entity storage.Entity  `json:"entity"`
	Name   string          `json:"name"`
	Mass   float64         `json:"mass"`
	Mu     float64         `json:"mu"`
	Parent  *storage.Entity `json:"parent,omitempty"`
	Path    *path.Path      `json:"path,omitempty"`
	Vessel  *vessel.Vessel  `json:"vessel,omitempty"`
	Station *vessel.Station `json:"station,omitempty"`
}

// Document is the top-level save file: the simulation clock plus every
// live entity's record.
type Document struct {
	Now      float64             `json:"now"`
	TimeStep simulation.TimeStep `json:"timeStep"`
	Entities []EntityRecord      `json:"entities"`
}

// ToDocument snapshots m into a Document ready for JSON encoding.
func ToDocument(m *simulation.Model) *Document {
	doc := &Document{Now: m.Now, TimeStep: m.TimeStep}
	for _, e := range m.Allocator.Entities() {
		rec := EntityRecord{
			Entity: e,
			Name:   m.Names.MustGet(e),
			Mass:   m.Masses.MustGet(e),
			Mu:     m.Mu(e),
		}
		if parent, ok := m.Parents.Get(e); ok {
			p := parent
			rec.Parent = &p
		}
		if p, ok := m.Paths.Get(e); ok && p != nil {
			rec.Path = p
		}
		if v, ok := m.Vessels.Get(e); ok {
			rec.Vessel = v
		}
		if s, ok := m.Stations.Get(e); ok {
			rec.Station = s
		}
		doc.Entities = append(doc.Entities, rec)
	}
	return doc
}

// ToModel reconstructs a live Model from a Document. The allocator's
// generations are rebuilt by scanning every saved handle (the entities
// themselves, their parents, their vessels' targets and torpedo
// timeline payloads), per §6's deserialization contract.
func ToModel(doc *Document) *Model {
	handles := collectHandles(doc)
	m := &simulation.Model{
		Allocator: storage.NewAllocatorFromEntities(handles),
		Names:     storage.NewComponentMap[string](),
		Paths:     storage.NewComponentMap[*path.Path](),
		Vessels:   storage.NewComponentMap[*vessel.Vessel](),
		Stations:  storage.NewComponentMap[*vessel.Station](),
		Masses:    storage.NewComponentMap[float64](),
		Mus:       storage.NewComponentMap[float64](),
		Parents:   storage.NewComponentMap[storage.Entity](),
		Now:       doc.Now,
		TimeStep:  doc.TimeStep,
	}
	for _, rec := range doc.Entities {
		m.Names.Set(rec.Entity, rec.Name)
		m.Masses.Set(rec.Entity, rec.Mass)
		m.Mus.Set(rec.Entity, rec.Mu)
		if rec.Parent != nil {
			m.Parents.Set(rec.Entity, *rec.Parent)
		}
		if rec.Path != nil {
			fixupTurnSegments(rec.Path)
			m.Paths.Set(rec.Entity, rec.Path)
		}
		if rec.Vessel != nil {
			m.Vessels.Set(rec.Entity, rec.Vessel)
		}
		if rec.Station != nil {
			m.Stations.Set(rec.Entity, rec.Station)
		}
	}
	return m
}

// Model is an alias for simulation.Model, named locally so ToModel's
// signature reads as a persistence-package concern rather than exposing
// simulation internals through this package's exported surface.
type Model = simulation.Model

func collectHandles(doc *Document) []storage.Entity {
	handles := make([]storage.Entity, 0, len(doc.Entities))
	for _, rec := range doc.Entities {
		handles = append(handles, rec.Entity)
		if rec.Parent != nil {
			handles = append(handles, *rec.Parent)
		}
		if rec.Vessel != nil {
			if rec.Vessel.Target != nil {
				handles = append(handles, *rec.Vessel.Target)
			}
			handles = append(handles, timelineHandles(rec.Vessel.Timeline)...)
		}
		if rec.Station != nil {
			if rec.Station.Target != nil {
				handles = append(handles, *rec.Station.Target)
			}
			for _, occupant := range rec.Station.DockingPorts {
				if occupant != nil {
					handles = append(handles, *occupant)
				}
			}
			handles = append(handles, timelineHandles(rec.Station.Timeline)...)
		}
	}
	return handles
}

// timelineHandles collects the entity handles carried as event payloads
// in tl. Ghost/Target are only meaningful for these two event types; for
// the rest they are unused zero values, not real handles to reconcile.
func timelineHandles(tl *vessel.Timeline) []storage.Entity {
	if tl == nil {
		return nil
	}
	var handles []storage.Entity
	for _, ev := range tl.Events {
		switch ev.Type {
		case vessel.FireTorpedo:
			handles = append(handles, ev.Ghost)
		case vessel.Intercept:
			handles = append(handles, ev.Target)
		}
	}
	return handles
}

// fixupTurnSegments rebuilds the unexported `delta` field every
// TurnSegment carries, which JSON cannot round-trip: NewTurnSegment
// recomputes it (and Duration) deterministically from StartRotation
// and EndRotation, so this is a pure, idempotent repair pass.
func fixupTurnSegments(p *path.Path) {
	for i := range p.Segments {
		seg := &p.Segments[i]
		if seg.Kind != path.KindTurn || seg.Turn == nil {
			continue
		}
		rebuilt := path.NewTurnSegment(seg.Turn.Parent, seg.Turn.Conic, seg.Turn.StartTime, seg.Turn.StartRotation, seg.Turn.EndRotation, seg.Turn.AngularAcceleration, seg.Turn.FuelFlowKgPerSecond)
		seg.Turn = &rebuilt
	}
}
