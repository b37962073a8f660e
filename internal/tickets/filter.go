package tickets

import (
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

// Apply returns the bookings of store that satisfy every criterion of f, in
// store order. The store itself is never modified. now fixes both the bucket
// boundaries and the zone that naive booked_at values are read in.
func Apply(store []models.Booking, f models.TicketFilter, now time.Time) []models.Booking {
	if f.IsZero() {
		out := make([]models.Booking, len(store))
		copy(out, store)
		return out
	}

	since, hasBucket := BucketStart(f.Bucket, now)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Booking, 0, len(store))
	for _, b := range store {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.EventID != 0 && b.EventRef() != f.EventID {
			continue
		}
		if hasBucket {
			booked, ok := b.BookedTime(now.Location())
			if !ok || booked.Before(since) {
				continue
			}
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// BucketStart is the inclusive lower bound of a date bucket: local midnight
// of now, moved back by a calendar week, month or year.
func BucketStart(bucket models.DateBucket, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch bucket {
	case models.BucketToday:
		return midnight, true
	case models.BucketWeek:
		return midnight.AddDate(0, 0, -7), true
	case models.BucketMonth:
		return midnight.AddDate(0, -1, 0), true
	case models.BucketYear:
		return midnight.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// matchesSearch expects needle to be lower case already.
func matchesSearch(b models.Booking, needle string) bool {
	if b.User != nil && strings.Contains(strings.ToLower(b.User.FirstName+" "+b.User.LastName), needle) {
		return true
	}
	if title := b.EventTitle(); title != "" && strings.Contains(strings.ToLower(title), needle) {
		return true
	}
	return strings.Contains(b.IDString(), needle)
}
