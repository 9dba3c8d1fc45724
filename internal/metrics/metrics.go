// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Ratings
	RatingsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total ratings submitted",
		},
	)
	RatingsAmended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_amended_total",
			Help: "Total ratings amended by their author",
		},
	)

	StoresCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stores_created_total",
			Help: "Total stores created",
		},
	)
	UsersRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total user accounts created",
		},
		[]string{"source"}, // register|admin|seed
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"}, // success|failure
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"type", "result"},
	)

	registerOnce sync.Once
)

// Handler serves the default registry.
var Handler = promhttp.Handler

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration,
			RatingsSubmitted,
			RatingsAmended,
			StoresCreated,
			UsersRegistered,
			LoginAttempts,
			EventsPublished,
		)
	})
}
