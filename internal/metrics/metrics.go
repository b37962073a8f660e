package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ems_console"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Console HTTP requests by route and status code.",
		},
		[]string{"route", "code"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the EMS backend.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	ticketExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_exports_total",
			Help:      "Ticket exports by file format.",
		},
		[]string{"format"},
	)

	bookingDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_deletes_total",
			Help:      "Booking delete attempts by result.",
		},
		[]string{"result"},
	)

	chatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Assistant messages by result.",
		},
		[]string{"result"},
	)

	sheetsTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_tasks_total",
			Help:      "Sheets mirror tasks by type and result.",
		},
		[]string{"task", "result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, backendDuration, ticketExports, bookingDeletes, chatMessages, sheetsTasks)
	})
}

func IncHTTP(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}

func ObserveBackend(endpoint, status string, d time.Duration) {
	backendDuration.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

func IncExport(format string) {
	ticketExports.WithLabelValues(format).Inc()
}

func IncDelete(result string) {
	bookingDeletes.WithLabelValues(result).Inc()
}

func IncChat(result string) {
	chatMessages.WithLabelValues(result).Inc()
}

func IncSheetsTask(task, result string) {
	sheetsTasks.WithLabelValues(task, result).Inc()
}
