package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SnapshotsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "task_snapshots_applied_total",
			Help: "Task snapshots that replaced a live task list",
		},
	)
	SnapshotsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "task_snapshots_dropped_total",
			Help: "Task snapshots delivered after their subscription was torn down",
		},
	)
	MutationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_mutation_failures_total",
			Help: "Fire-and-forget task mutations that failed at the store",
		},
		[]string{"op"},
	)
	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "task_live_sessions",
			Help: "Open live task sessions",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(SnapshotsApplied)
	prometheus.MustRegister(SnapshotsDropped)
	prometheus.MustRegister(MutationFailures)
	prometheus.MustRegister(LiveSessions)
	prometheus.MustRegister(HTTPRequests)
}

func MutationFailed(op string) {
	MutationFailures.WithLabelValues(op).Inc()
}
