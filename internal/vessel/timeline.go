package vessel

import "github.com/LordIdra/transfer-window-sub001/internal/storage"

// EventType is the tag of a timeline event. Per the "no dispatch by
// interface" design note, events are not a polymorphic interface
// hierarchy: one struct carries every variant's payload and callers
// switch on Type, keeping hot paths (PopEventsBefore, blocking checks)
// a flat scan over plain data.
type EventType int

const (
	StartBurn EventType = iota
	StartTurn
	StartGuidance
	FireTorpedo
	Intercept
)

func (t EventType) String() string {
	switch t {
	case StartBurn:
		return "StartBurn"
	case StartTurn:
		return "StartTurn"
	case StartGuidance:
		return "StartGuidance"
	case FireTorpedo:
		return "FireTorpedo"
	case Intercept:
		return "Intercept"
	default:
		return "Unknown"
	}
}

// Event is one scheduled command against a vessel's future path.
type Event struct {
	Type EventType
	Time float64

	// FireTorpedo payload: the pre-allocated ghost torpedo entity, the
	// launcher slot it fires from, and how long before Time the ghost's
	// own burn segment should start (TimeBeforeTorpedoBurn).
	Ghost         storage.Entity
	SlotLocation  string
	GhostBurnTime float64

	// Intercept payload: the target entity destroyed alongside the
	// torpedo when the event executes.
	Target storage.Entity
}

// IsBlocking reports whether this event forbids scheduling anything
// after it except further blocking extensions: once a vessel is
// guiding toward an intercept, no more burns or turns may be queued.
func (e Event) IsBlocking() bool {
	return e.Type == StartGuidance || e.Type == Intercept
}

// Timeline is a vessel's ordered queue of future events, ordered by
// non-decreasing Time and, for equal times, insertion order -- the
// queue discipline the simulation tick's event-execution step relies on.
type Timeline struct {
	Events []Event
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Add inserts e in time order, after any existing events at the same
// time (stable insertion order).
func (tl *Timeline) Add(e Event) {
	i := 0
	for i < len(tl.Events) && tl.Events[i].Time <= e.Time {
		i++
	}
	tl.Events = append(tl.Events, Event{})
	copy(tl.Events[i+1:], tl.Events[i:])
	tl.Events[i] = e
}

// PopEventsBefore removes and returns every event whose Time is <= t, in
// time order.
func (tl *Timeline) PopEventsBefore(t float64) []Event {
	i := 0
	for i < len(tl.Events) && tl.Events[i].Time <= t {
		i++
	}
	popped := tl.Events[:i]
	tl.Events = tl.Events[i:]
	return popped
}

// EventAtTime returns the event scheduled at exactly t, if any.
func (tl *Timeline) EventAtTime(t float64) (Event, bool) {
	for _, e := range tl.Events {
		if e.Time == t {
			return e, true
		}
	}
	return Event{}, false
}

// RemoveAfter drops every event strictly after t -- the timeline half of
// cancelling an event or truncating a path (Path.RemoveSegmentsAfter's
// counterpart).
func (tl *Timeline) RemoveAfter(t float64) {
	i := 0
	for i < len(tl.Events) && tl.Events[i].Time <= t {
		i++
	}
	tl.Events = tl.Events[:i]
}

// Last returns the most recently scheduled event, if any.
func (tl *Timeline) Last() (Event, bool) {
	if len(tl.Events) == 0 {
		return Event{}, false
	}
	return tl.Events[len(tl.Events)-1], true
}

// HasBlockingEvent reports whether any scheduled event is blocking.
func (tl *Timeline) HasBlockingEvent() bool {
	for _, e := range tl.Events {
		if e.IsBlocking() {
			return true
		}
	}
	return false
}

// CanCreateAt reports whether a non-blocking event (StartBurn/StartTurn)
// may be scheduled at time t: it must not fall after any existing
// blocking event, unless t precedes that blocking event's time.
func (tl *Timeline) CanCreateAt(t float64) bool {
	for _, e := range tl.Events {
		if e.IsBlocking() && t >= e.Time {
			return false
		}
	}
	return true
}
