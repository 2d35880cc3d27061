// Package metrics defines and registers the custom Prometheus metrics of the
// campus card portal gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campuscard"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Labels:
//   - guard: guard name (e.g. "require_admin")
//   - decision: "allow" or "redirect"
//   - reason: "", "auth_absent" or "auth_insufficient"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions.",
	},
	[]string{"guard", "decision", "reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionChangesTotal counts session transitions.
// Label:
//   - reason: "login", "logout", "expired" or "revoked"
var SessionChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_changes_total",
		Help:      "Total number of session changes, by reason.",
	},
	[]string{"reason"},
)

// LiveSessionContexts tracks the number of browser contexts held in memory.
var LiveSessionContexts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_contexts",
		Help:      "Number of browser session contexts cached in memory.",
	},
)

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestsTotal counts calls to the registration backend.
// Labels:
//   - endpoint: logical operation (e.g. "login", "admin_pending")
//   - code: HTTP status code, or "error" on transport failure
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of requests sent to the registration backend.",
	},
	[]string{"endpoint", "code"},
)

// RemoteRequestDuration measures backend round trips.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of requests sent to the registration backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks pending audit events per worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit outcomes.
// Label:
//   - result: "written", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of session audit events, by result.",
	},
	[]string{"result"},
)
