package tickets

import (
	"strconv"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/profile"
)

const (
	avatarSize    = 32
	notAvailable  = "N/A"
	displayLayout = "Jan 2, 2006"
)

type Badge string

const (
	BadgeConfirmed Badge = "confirmed"
	BadgeCancelled Badge = "cancelled"
	BadgePending   Badge = "pending"
)

func BadgeFor(status models.BookingStatus) Badge {
	switch status {
	case models.BookingConfirmed:
		return BadgeConfirmed
	case models.BookingCancelled:
		return BadgeCancelled
	default:
		return BadgePending
	}
}

// Row is a booking ready for display.
type Row struct {
	ID             int64  `json:"id"`
	IDLabel        string `json:"id_label"`
	AvatarURL      string `json:"avatar_url"`
	FallbackAvatar string `json:"fallback_avatar"`
	UserName       string `json:"user_name"`
	UserEmail      string `json:"user_email,omitempty"`
	EventTitle     string `json:"event_title"`
	Quantity       int    `json:"quantity"`
	Price          string `json:"price"`
	Status         string `json:"status"`
	Badge          Badge  `json:"badge"`
	BookedOn       string `json:"booked_on"`
}

type Renderer struct {
	resolver *profile.Resolver
	loc      *time.Location
}

func NewRenderer(resolver *profile.Resolver, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{resolver: resolver, loc: loc}
}

func (r *Renderer) Row(b models.Booking) Row {
	row := Row{
		ID:             b.ID,
		IDLabel:        "#" + b.IDString(),
		FallbackAvatar: profile.FallbackAvatar(avatarSize),
		UserName:       notAvailable,
		EventTitle:     notAvailable,
		Quantity:       b.Quantity,
		Price:          FormatPrice(b.Price()),
		Status:         string(b.Status),
		Badge:          BadgeFor(b.Status),
		BookedOn:       FormatDate(b.BookedAt, r.loc),
	}

	var image *string
	if b.User != nil {
		image = b.User.ProfileImage
		row.UserEmail = b.User.Email
		first := b.User.FirstName
		if first == "" {
			first = notAvailable
		}
		row.UserName = strings.TrimSpace(first + " " + b.User.LastName)
	}
	row.AvatarURL = r.resolver.Avatar(image, row.UserEmail, avatarSize)

	if title := b.EventTitle(); title != "" {
		row.EventTitle = title
	}
	return row
}

func (r *Renderer) Rows(bookings []models.Booking) []Row {
	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, r.Row(b))
	}
	return rows
}

// FormatPrice renders "Rs 1500" or "Rs 1500.5" without trailing zeros.
func FormatPrice(v float64) string {
	return "Rs " + strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders a booked_at value as "Jan 2, 2006", or N/A when it cannot be parsed.
func FormatDate(raw string, loc *time.Location) string {
	t, ok := models.ParseTimestamp(raw, loc)
	if !ok {
		return notAvailable
	}
	return t.In(loc).Format(displayLayout)
}
