package models

type DashboardStats struct {
	TotalRevenue        float64 `json:"total_revenue"`
	ActiveUsers         int64   `json:"active_users"`
	OpenTickets         int64   `json:"open_tickets"`
	UpcomingEventsCount int64   `json:"upcoming_events_count"`
	RecentSignups       []User  `json:"recent_signups"`
	UpcomingEvents      []Event `json:"upcoming_events"`
}
