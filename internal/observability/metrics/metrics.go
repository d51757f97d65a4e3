// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "receiptpoints_"

	resultSuccess  = "success"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

var (
	registerOnce sync.Once

	intakeTotal   *prometheus.CounterVec
	intakeLatency *prometheus.HistogramVec

	pointsTotal   *prometheus.CounterVec
	pointsLatency *prometheus.HistogramVec
)

// Init registers the intake and points instruments. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		intakeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "intake_total",
				Help: "Total receipt submissions by result",
			},
			[]string{"result"},
		)
		intakeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "intake_latency_seconds",
				Help:    "Receipt intake latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		pointsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "points_total",
				Help: "Total points lookups by result",
			},
			[]string{"result"},
		)
		pointsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "points_latency_seconds",
				Help:    "Points lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			intakeTotal,
			intakeLatency,
			pointsTotal,
			pointsLatency,
		)
	})
}

// ObserveIntake records one receipt submission.
func ObserveIntake(result string, duration time.Duration) {
	if intakeTotal != nil {
		intakeTotal.WithLabelValues(result).Inc()
	}

	if intakeLatency != nil {
		intakeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObservePoints records one points lookup.
func ObservePoints(result string, duration time.Duration) {
	if pointsTotal != nil {
		pointsTotal.WithLabelValues(result).Inc()
	}

	if pointsLatency != nil {
		pointsLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess  = resultSuccess
	ResultInvalid  = resultInvalid
	ResultNotFound = resultNotFound
	ResultError    = resultError
)
