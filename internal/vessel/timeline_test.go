package vessel

import "testing"

func TestTimelineAddOrdering(t *testing.T) {
	tl := NewTimeline()
	tl.Add(Event{Type: StartBurn, Time: 10})
	tl.Add(Event{Type: StartTurn, Time: 5})
	tl.Add(Event{Type: FireTorpedo, Time: 5})

	if len(tl.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(tl.Events))
	}
	if tl.Events[0].Time != 5 || tl.Events[0].Type != StartTurn {
		t.Fatalf("expected StartTurn@5 first, got %+v", tl.Events[0])
	}
	if tl.Events[1].Time != 5 || tl.Events[1].Type != FireTorpedo {
		t.Fatalf("expected FireTorpedo@5 second (stable insertion order), got %+v", tl.Events[1])
	}
	if tl.Events[2].Time != 10 {
		t.Fatalf("expected StartBurn@10 last, got %+v", tl.Events[2])
	}
}

func TestPopEventsBefore(t *testing.T) {
	tl := NewTimeline()
	tl.Add(Event{Type: StartBurn, Time: 1})
	tl.Add(Event{Type: StartTurn, Time: 2})
	tl.Add(Event{Type: FireTorpedo, Time: 3})

	popped := tl.PopEventsBefore(2)
	if len(popped) != 2 {
		t.Fatalf("expected 2 popped events, got %d", len(popped))
	}
	if len(tl.Events) != 1 {
		t.Fatalf("expected 1 remaining event, got %d", len(tl.Events))
	}
}

func TestBlockingPreventsFurtherScheduling(t *testing.T) {
	tl := NewTimeline()
	tl.Add(Event{Type: StartGuidance, Time: 10})

	if tl.CanCreateAt(15) {
		t.Fatalf("expected scheduling after a blocking event to be rejected")
	}
	if !tl.CanCreateAt(5) {
		t.Fatalf("expected scheduling before a blocking event to be allowed")
	}
	if !tl.HasBlockingEvent() {
		t.Fatalf("expected HasBlockingEvent to be true")
	}
}
