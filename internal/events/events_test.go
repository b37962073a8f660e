package events

import (
	"errors"
	"testing"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventBookingDeleted, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	err := bus.PublishJSON(EventBookingDeleted, BookingDeletedPayload{BookingID: 12, Status: "CONFIRMED"})
	if err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	var decoded BookingDeletedPayload
	if err := received.Decode(&decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.BookingID != 12 {
		t.Errorf("expected booking 12, got %d", decoded.BookingID)
	}
	if received.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return errors.New("first failed") })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	err := bus.Publish(&Event{Type: "event"})

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
	if err == nil || err.Error() != "first failed" {
		t.Errorf("expected handler error to be returned, got %v", err)
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	if err := bus.Publish(&Event{Type: "unknown"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestNilBusPublishJSON(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON(EventTicketsExported, TicketsExportedPayload{Count: 1}); err != nil {
		t.Errorf("expected nil bus to be a no-op, got %v", err)
	}
}

func TestPublishJSONMarshalError(t *testing.T) {
	bus := NewEventBus()
	if err := bus.PublishJSON("bad", make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}
