// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_registrations_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})

	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_verifications_total",
		Help: "Verification attempts by outcome.",
	}, []string{"outcome"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_searches_total",
		Help: "Doctor searches by outcome.",
	}, []string{"outcome"})
)

// Outcome labels.
const (
	OutcomeOK = "ok"
)
