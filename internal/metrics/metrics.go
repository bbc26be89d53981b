// Package metrics provides Prometheus metrics for the cosmo API
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Share lookup results
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

var (
	// SharesCreated tracks share codes handed out
	SharesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "shares",
			Name:      "created_total",
			Help:      "Total number of shared teams stored",
		},
	)

	// ShortCodeAttempts tracks failed attempts while picking a short code
	ShortCodeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "shares",
			Name:      "code_retries_total",
			Help:      "Short code attempts that had to be retried, by reason",
		},
		[]string{"reason"},
	)

	// ShareLookups tracks share resolution by result
	ShareLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "shares",
			Name:      "lookups_total",
			Help:      "Total number of share lookups by result",
		},
		[]string{"result"},
	)

	// InlineDecodeFailures tracks rejected inline tokens by decode stage
	InlineDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "inline",
			Name:      "decode_failures_total",
			Help:      "Total number of inline tokens rejected, by decode stage",
		},
		[]string{"stage"},
	)

	// SynergyResolutions tracks resolver runs
	SynergyResolutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "synergy",
			Name:      "resolutions_total",
			Help:      "Total number of synergy resolutions",
		},
	)

	// RosterFallbacks tracks requests served without the roster
	RosterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "roster",
			Name:      "fallbacks_total",
			Help:      "Requests that continued without the roster after a load failure",
		},
		[]string{"operation"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cosmo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
