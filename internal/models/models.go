package models

import (
	"strings"
	"time"
)

type DateBucket string

const (
	BucketAny   DateBucket = ""
	BucketToday DateBucket = "today"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
	BucketYear  DateBucket = "year"
)

// ParseDateBucket maps a filter control value to a bucket; unknown values mean no constraint.
func ParseDateBucket(s string) DateBucket {
	switch b := DateBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketToday, BucketWeek, BucketMonth, BucketYear:
		return b
	default:
		return BucketAny
	}
}

type TicketFilter struct {
	Status  BookingStatus `json:"status,omitempty"`
	EventID int64         `json:"event_id,omitempty"`
	Bucket  DateBucket    `json:"bucket,omitempty"`
	Search  string        `json:"search,omitempty"`
}

func (f TicketFilter) IsZero() bool {
	return f.Status == "" && f.EventID == 0 && f.Bucket == BucketAny && strings.TrimSpace(f.Search) == ""
}

// TicketsState is the persisted form of a tickets view between requests.
type TicketsState struct {
	Phase     string        `json:"phase"`
	Store     []Booking     `json:"store"`
	Events    []EventOption `json:"events"`
	Filter    TicketFilter  `json:"filter"`
	Page      int           `json:"page"`
	LoadError string        `json:"load_error,omitempty"`
	LoadedAt  time.Time     `json:"loaded_at"`
}

type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

type ChatMessage struct {
	Role ChatRole  `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// SessionState is everything one browser session or bot chat keeps between requests.
type SessionState struct {
	ID       string                 `json:"id"`
	Lang     string                 `json:"lang"`
	Tickets  *TicketsState          `json:"tickets,omitempty"`
	Chat     []ChatMessage          `json:"chat,omitempty"`
	User     *User                  `json:"user,omitempty"`
	TempData map[string]interface{} `json:"temp_data,omitempty"`

	// UserFetchedAt is when User was last refreshed from /users/me.
	UserFetchedAt time.Time `json:"user_fetched_at,omitempty"`
	Notice        *Notice   `json:"notice,omitempty"`
}

// Notice is a rendered message shown once on the next page.
type Notice struct {
	Text  string `json:"text"`
	Error bool   `json:"error,omitempty"`
}

// TakeNotice returns the pending notice and clears it.
func (s *SessionState) TakeNotice() *Notice {
	n := s.Notice
	s.Notice = nil
	return n
}

func (s *SessionState) Set(key string, value interface{}) {
	if s.TempData == nil {
		s.TempData = make(map[string]interface{})
	}
	s.TempData[key] = value
}

func (s *SessionState) GetInt64(key string) int64 {
	if s.TempData == nil {
		return 0
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *SessionState) GetString(key string) string {
	if s.TempData == nil {
		return ""
	}
	if str, ok := s.TempData[key].(string); ok {
		return str
	}
	return ""
}

// AuditEntry records a destructive or exporting action taken from the console.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	BookingID int64     `json:"booking_id,omitempty"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
