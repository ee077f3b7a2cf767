// Package metrics holds the Prometheus collectors shared by the refresh
// pipeline and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_ticks_total",
			Help: "Refresh ticks by reading source and outcome",
		},
		[]string{"source", "result"},
	)

	FeedRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_feed_refresh_total",
			Help: "External weather feed refreshes by outcome",
		},
		[]string{"result"},
	)

	ProviderFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_provider_failures_total",
			Help: "Failed fetches per weather provider",
		},
		[]string{"provider"},
	)

	BufferLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_buffer_length",
			Help: "Number of live readings currently held",
		},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
