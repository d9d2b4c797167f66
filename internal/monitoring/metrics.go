// Package monitoring exposes Prometheus counters for the lookup pipeline.
// Collectors register themselves on the default registry at import time and
// are served on /metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LookupsTotal counts finished lookups by the source of the returned
	// data, mock_data or real_scraping.
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtlookup_lookups_total",
			Help: "Total number of case lookups by result source.",
		},
		[]string{"source"},
	)

	// ChallengesDetected counts live attempts abandoned on a verification
	// challenge.
	ChallengesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtlookup_challenges_detected_total",
			Help: "Total number of live attempts aborted on a verification challenge.",
		},
	)

	// FallbacksTotal counts synthetic fallbacks by reason.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtlookup_fallbacks_total",
			Help: "Total number of synthetic fallbacks by reason.",
		},
		[]string{"reason"},
	)

	// CacheHits counts search requests answered from the result cache.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtlookup_cache_hits_total",
			Help: "Total number of search requests served from cache.",
		},
	)

	// QueryLogFailures counts query log writes that were swallowed.
	QueryLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtlookup_query_log_failures_total",
			Help: "Total number of failed query log writes.",
		},
	)
)

// Fallback reasons.
const (
	ReasonDisabled = "live_fetch_disabled"
	ReasonBlocked  = "challenge_detected"
	ReasonError    = "attempt_failed"
)
