package game

import "testing"

func TestEventBus_FlushDelivers(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	bus.Emit(Event{Kind: EventEnemyHit})
	bus.Emit(Event{Kind: EventEnemyDestroyed, Points: 100})
	if len(rec.events) != 0 {
		t.Fatal("Events must not be delivered before Flush")
	}

	bus.Flush()
	if len(rec.events) != 2 || rec.events[1].Points != 100 {
		t.Fatalf("Expected 2 events in order, got %+v", rec.events)
	}
	if len(bus.Pending()) != 0 {
		t.Error("Expected an empty queue after Flush")
	}
}

func TestEventBus_ListenerOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	bus.Subscribe(ListenerFunc(func(Event) { order = append(order, 1) }))
	bus.Subscribe(ListenerFunc(func(Event) { order = append(order, 2) }))

	bus.Emit(Event{Kind: EventWaveStart})
	bus.Flush()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected subscription order, got %v", order)
	}
}

func TestEventBus_EmitDuringFlush(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(ListenerFunc(func(e Event) {
		if e.Kind == EventGameOver {
			bus.Emit(Event{Kind: EventHighScore})
		}
	}))
	bus.Subscribe(rec)

	bus.Emit(Event{Kind: EventGameOver})
	bus.Flush()
	if rec.count(EventHighScore) != 0 {
		t.Error("Event emitted during Flush should wait for the next Flush")
	}
	bus.Flush()
	if rec.count(EventHighScore) != 1 {
		t.Error("Expected the deferred event on the next Flush")
	}
}

func TestEventBus_NilSafe(t *testing.T) {
	var bus *EventBus
	bus.Subscribe(&eventRecorder{})
	bus.Emit(Event{Kind: EventPlayerHit})
	bus.Flush()
	if bus.Pending() != nil {
		t.Error("Nil bus should have nothing pending")
	}
}

func TestEventKind_String(t *testing.T) {
	if EventEnemyDestroyed.String() == EventPlayerHit.String() {
		t.Error("Event kinds should have distinct names")
	}
	if EventKind(-1).String() != "unknown" {
		t.Errorf("Expected unknown, got %q", EventKind(-1).String())
	}
}
