// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_cache_hits_total",
			Help: "Total number of cache reads served from a live entry",
		},
		[]string{"kind"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_cache_misses_total",
			Help: "Total number of cache reads that triggered a fetch",
		},
		[]string{"kind"},
	)

	CacheCoalesced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_cache_coalesced_total",
			Help: "Total number of cache reads that joined an in-flight fetch",
		},
		[]string{"kind"},
	)

	ProviderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_provider_fetches_total",
			Help: "Total number of provider fetches by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "agent_provider_fetch_duration_seconds",
			Help: "Duration of provider fetches in seconds",
		},
		[]string{"provider"},
	)

	RequestsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_requests_handled_total",
			Help: "Total number of user messages handled by detected intent",
		},
		[]string{"intent"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agent_sessions_active",
			Help: "Number of sessions currently held in memory",
		},
	)
)
