// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Vote outcomes
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

var registry = prometheus.NewRegistry()

var (
	VotesSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menuvote",
		Name:      "votes_submitted_total",
		Help:      "Vote submissions by outcome.",
	}, []string{"outcome"})

	ValidationViolations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menuvote",
		Name:      "validation_violations_total",
		Help:      "Rejected selection or menu entries by violation code.",
	}, []string{"code"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "menuvote",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(VotesSubmitted, ValidationViolations, RequestDuration)
}

// ObserveRequest records one finished HTTP request
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the metrics registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
