package events

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

const (
	EventTicketsLoaded   = "tickets_loaded"
	EventBookingDeleted  = "booking_deleted"
	EventTicketsExported = "tickets_exported"
)

// BookingDeletedPayload is what subscribers learn about a removed booking.
type BookingDeletedPayload struct {
	BookingID  int64     `json:"booking_id"`
	UserName   string    `json:"user_name,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	EventTitle string    `json:"event_title,omitempty"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor,omitempty"`
	DeletedAt  time.Time `json:"deleted_at"`
}

type TicketsExportedPayload struct {
	Format   string    `json:"format"`
	Count    int       `json:"count"`
	FileName string    `json:"file_name"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

// TicketsLoadedPayload carries the freshly fetched store.
type TicketsLoadedPayload struct {
	Count    int              `json:"count"`
	Actor    string           `json:"actor,omitempty"`
	LoadedAt time.Time        `json:"loaded_at"`
	Bookings []models.Booking `json:"bookings,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish runs every handler of the event type synchronously and returns
// their joined errors. A failing handler does not stop the others.
func (b *EventBus) Publish(event *Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishJSON serializes the payload and publishes an event. A nil bus is a no-op.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
}
