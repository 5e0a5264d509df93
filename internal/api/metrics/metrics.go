// Package metrics defines and registers all custom Prometheus metrics for the
// BookVault API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// init time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookvault"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokensRejectedTotal counts bearer tokens rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "bad_scheme", or "invalid"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of bearer tokens rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Book metrics ──────────────────────────────────────────────────────────────

// BooksCreatedTotal counts newly created books.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityProcessedTotal counts audit entries that were persisted.
// Label:
//   - action: the recorded action (e.g. "login", "book_created")
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of audit-trail entries successfully recorded.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts audit entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of audit-trail entries that failed processing.",
	},
)

// ActivityDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new entry, recorded)
var ActivityDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dedup_total",
		Help:      "Total number of activity deduplication checks, by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long one audit entry takes from
// dequeue to persistence.
var ActivityProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of audit-entry processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
