package bot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the bot's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	UpdatesProcessed     *prometheus.CounterVec
	UpdateProcessingTime prometheus.Histogram
	ErrorsTotal          prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpdatesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_updates_total",
			Help: "Updates handled by the admin bot",
		}, []string{"kind"}),
		UpdateProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_panics_total",
			Help: "Update handlers that panicked",
		}),
	}
}

func (m *Metrics) observe(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpdatesProcessed.WithLabelValues(kind).Inc()
	m.UpdateProcessingTime.Observe(d.Seconds())
}

func (m *Metrics) panicked() {
	if m == nil {
		return
	}
	m.ErrorsTotal.Inc()
}
