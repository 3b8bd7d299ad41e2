package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"event-system/store"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total registration attempts per event and outcome",
		},
		[]string{"event_id", "outcome"},
	)

	capacityRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capacity_rejections_total",
			Help: "Registrations rejected because the ticket was sold out",
		},
		[]string{"event_id"},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Audited status transitions per subject type and new status",
		},
		[]string{"subject", "new_status"},
	)

	notificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Best-effort notification steps that failed",
		},
		[]string{"kind"},
	)

	mailQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_pending_total",
			Help: "Current number of pending mail queue records",
		},
	)

	rateLimitBuckets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_buckets_total",
			Help: "Current number of active rate limit windows",
		},
	)

	registrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "registration_duration_seconds",
			Help:    "Duration of registration requests",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)
)

type Monitor struct {
	redis *redis.Client
	store store.Store
}

func NewMonitor(redisClient *redis.Client, st store.Store) *Monitor {
	monitor := &Monitor{redis: redisClient, store: st}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		m.collectMailQueueMetrics()
		m.collectRateLimitMetrics(ctx)
	}
}

func (m *Monitor) collectMailQueueMetrics() {
	pending, err := m.store.FindAllByFilter("mail_queue", "status = 'pending'", "", 500, nil)
	if err != nil {
		return
	}
	mailQueueDepth.Set(float64(len(pending)))
}

func (m *Monitor) collectRateLimitMetrics(ctx context.Context) {
	keys, err := m.redis.Keys(ctx, "ratelimit:*").Result()
	if err != nil {
		return
	}
	rateLimitBuckets.Set(float64(len(keys)))
}

// Track registration outcomes
func (m *Monitor) TrackRegistration(eventID, outcome string) {
	registrationsTotal.WithLabelValues(eventID, outcome).Inc()
}

// Track sold-out rejections
func (m *Monitor) TrackCapacityRejection(eventID string) {
	capacityRejections.WithLabelValues(eventID).Inc()
}

// Track audited status transitions
func (m *Monitor) TrackStatusTransition(subject, newStatus string) {
	statusTransitions.WithLabelValues(subject, newStatus).Inc()
}

// Track swallowed notification failures
func (m *Monitor) TrackNotificationFailure(kind string) {
	notificationFailures.WithLabelValues(kind).Inc()
}

// Track registration latency
func (m *Monitor) TrackRegistrationDuration(duration time.Duration) {
	registrationDuration.Observe(duration.Seconds())
}
