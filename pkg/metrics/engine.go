package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine-level counters. Registered on the default registry and exposed by
// the Prometheus controller when enabled.
var (
	ScopeDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamcal_scope_denied_total",
		Help: "Visibility scope resolutions rejected for insufficient role.",
	}, []string{"scope"})

	HierarchyUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcal_hierarchy_unavailable_total",
		Help: "Hierarchy lookups that failed or timed out.",
	})

	EventsRedacted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcal_events_redacted_total",
		Help: "Calendar events returned with at least one field masked.",
	})

	StaleBalanceReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcal_stale_balance_reads_total",
		Help: "Balance snapshots served past their freshness window.",
	})

	RecomputeRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamcal_recompute_requests_total",
		Help: "Balance recomputation requests handed to the external job.",
	})
)
