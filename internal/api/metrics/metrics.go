// Package metrics defines the custom Prometheus metrics of the dashboard API.
// HTTP request metrics come from echoprometheus; this package covers the
// domain events behind them.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "psychodash"

// ── Auth ──────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Records ───────────────────────────────────────────────────────────────────

// RecordWritesTotal counts successful writes through the API.
// Labels:
//   - collection: "patients", "sessions" or "financials"
//   - op: "create", "update" or "delete"
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of record writes, by collection and operation.",
	},
	[]string{"collection", "op"},
)

// CorruptReadsTotal counts requests that failed because a stored collection
// could not be decoded.
var CorruptReadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "corrupt_reads_total",
		Help:      "Total number of requests rejected because stored data was corrupt.",
	},
)

// ── Summaries ─────────────────────────────────────────────────────────────────

// SummariesTotal counts summary requests.
// Label:
//   - result: "ok" or "fallback"
var SummariesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Total number of note summaries, by result.",
	},
	[]string{"result"},
)

// SummaryDuration measures the time from request to summary, fallbacks included.
var SummaryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_duration_seconds",
		Help:      "Duration of note summarization requests.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
)
