package tickets

import (
	"fmt"
	"time"

	"github.com/Randidu/event-management-system/internal/models"
)

var colombo = time.FixedZone("Asia/Colombo", 5*3600+1800)

func fptr(v float64) *float64 { return &v }

func booking(id int64, first, last, event string, status models.BookingStatus, bookedAt string) models.Booking {
	return models.Booking{
		ID:         id,
		Quantity:   1,
		TotalPrice: fptr(float64(id) * 100),
		Status:     status,
		BookedAt:   bookedAt,
		User:       &models.UserSummary{ID: id, FirstName: first, LastName: last, Email: fmt.Sprintf("user%d@ems.lk", id)},
		Event:      &models.EventSummary{ID: id%3 + 1, Title: event},
	}
}

// sampleStore builds n bookings spread over the days before 2025-06-15.
func sampleStore(n int) []models.Booking {
	statuses := []models.BookingStatus{models.BookingPending, models.BookingConfirmed, models.BookingCancelled}
	events := []string{"Jazz Night", "Rock Fest", "Colombo Food Fair"}
	store := make([]models.Booking, 0, n)
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, colombo)
	for i := 1; i <= n; i++ {
		at := base.AddDate(0, 0, -i*5).Format("2006-01-02T15:04:05")
		store = append(store, booking(int64(i), fmt.Sprintf("First%d", i), "Last", events[i%3], statuses[i%3], at))
	}
	return store
}

func ids(bs []models.Booking) []int64 {
	out := make([]int64, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}
