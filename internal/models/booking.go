package models

import (
	"strconv"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRefunded  BookingStatus = "REFUNDED"
)

// ParseBookingStatus normalizes a filter value. Empty or "ALL" means no constraint.
func ParseBookingStatus(s string) BookingStatus {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "ALL" {
		return ""
	}
	return BookingStatus(s)
}

type UserSummary struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// FullName is the "first last" form used for display and search.
func (u *UserSummary) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type EventSummary struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	StartsAt  string  `json:"starts_at,omitempty"`
	Location  string  `json:"location,omitempty"`
	PosterURL *string `json:"poster_url,omitempty"`
}

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	EventID       int64         `json:"event_id"`
	Quantity      int           `json:"quantity"`
	TotalPrice    *float64      `json:"total_price"`
	AmountTotal   *float64      `json:"amount_total"`
	Currency      string        `json:"currency,omitempty"`
	TicketType    string        `json:"ticket_type,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"payment_status,omitempty"`
	BookedAt      string        `json:"booked_at"`
	User          *UserSummary  `json:"user,omitempty"`
	Event         *EventSummary `json:"event,omitempty"`
}

// EventTitle returns the embedded event title or "" when the event is absent.
func (b Booking) EventTitle() string {
	if b.Event == nil {
		return ""
	}
	return b.Event.Title
}

// EventRef is the event id used by the event filter. The embedded event wins
// over the flat foreign key when both are present.
func (b Booking) EventRef() int64 {
	if b.Event != nil && b.Event.ID != 0 {
		return b.Event.ID
	}
	return b.EventID
}

func (b Booking) IDString() string {
	return strconv.FormatInt(b.ID, 10)
}

// Price prefers total_price when it is set and non-zero, then amount_total.
func (b Booking) Price() float64 {
	if b.TotalPrice != nil && *b.TotalPrice != 0 {
		return *b.TotalPrice
	}
	if b.AmountTotal != nil {
		return *b.AmountTotal
	}
	return 0
}

// ExportPrice is total_price or 0, matching the columns of the CSV export.
func (b Booking) ExportPrice() float64 {
	if b.TotalPrice != nil {
		return *b.TotalPrice
	}
	return 0
}

var bookedAtLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// BookedTime parses booked_at. Values carrying an offset keep it; naive values
// are read in loc. The second result is false when the value cannot be parsed.
func (b Booking) BookedTime(loc *time.Location) (time.Time, bool) {
	return ParseTimestamp(b.BookedAt, loc)
}

func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	for _, layout := range bookedAtLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindBooking returns the index of the booking with id or -1.
func FindBooking(store []Booking, id int64) int {
	for i := range store {
		if store[i].ID == id {
			return i
		}
	}
	return -1
}
