package models

// EventOption feeds the event filter of the tickets view.
type EventOption struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Event struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Location  string  `json:"location"`
	StartsAt  string  `json:"starts_at"`
	EndsAt    string  `json:"ends_at,omitempty"`
	PosterURL *string `json:"poster_url,omitempty"`
	Category  string  `json:"category,omitempty"`
	Status    string  `json:"status,omitempty"`
	Capacity  int     `json:"capacity,omitempty"`
}

func (e Event) Option() EventOption {
	return EventOption{ID: e.ID, Title: e.Title}
}
