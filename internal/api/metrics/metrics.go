// Package metrics defines and registers all custom Prometheus metrics for the
// OKR API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "okr"

// ── Write metrics ─────────────────────────────────────────────────────────────

// ObjectivesCreatedTotal counts newly created objectives.
// Label:
//   - status: the initial objective status (e.g. "draft", "active")
var ObjectivesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "objectives_created_total",
		Help:      "Total number of objectives created, by initial status.",
	},
	[]string{"status"},
)

// KeyResultsCreatedTotal counts newly created key results.
// Label:
//   - type: the measurement type ("number", "percentage", "boolean")
var KeyResultsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "key_results_created_total",
		Help:      "Total number of key results created, by measurement type.",
	},
	[]string{"type"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AuthzDeniedTotal counts requests rejected by the ownership and role checks.
// Label:
//   - route: the matched route path (e.g. "/v1/objectives/:id")
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by authorization checks, by route.",
	},
	[]string{"route"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// StatsCacheTotal counts dashboard cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (recomputed)
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of dashboard cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
