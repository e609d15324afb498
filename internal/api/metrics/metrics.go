// Package metrics defines and registers all custom Prometheus metrics for the
// VaSa platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint itself is wired in main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vasa"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
// Labels:
//   - source: "marketplace" or "panchayat"
//   - job_type: "full_time", "part_time", "contract", "internship"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs posted, by source and job type.",
	},
	[]string{"source", "job_type"},
)

// JobTransitionsTotal counts status transitions that were applied.
// Label:
//   - to: the new job status ("worker_assigned", "paid", "completed")
var JobTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_transitions_total",
		Help:      "Total number of job status transitions applied, by target status.",
	},
	[]string{"to"},
)

// ── Wallet metrics ────────────────────────────────────────────────────────────

// PaymentsTotal counts successful job payments.
var PaymentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Total number of successful wallet payments.",
	},
)

// PaymentFailuresTotal counts rejected payments.
// Label:
//   - reason: "pin", "job_not_found", "not_payable", "balance"
var PaymentFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_failures_total",
		Help:      "Total number of rejected wallet payments, by reason.",
	},
	[]string{"reason"},
)

// PaymentAmount observes paid amounts in rupees.
var PaymentAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_amount_rupees",
		Help:      "Distribution of successful payment amounts.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	},
)

// RedemptionsTotal counts pink-token redemptions.
// Label:
//   - reward: reward id ("local-service", "workshop", "mentorship")
var RedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redemptions_total",
		Help:      "Total number of reward redemptions, by reward.",
	},
	[]string{"reward"},
)

// RedemptionFailuresTotal counts redemptions rejected for insufficient tokens.
var RedemptionFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redemption_failures_total",
		Help:      "Total number of redemptions rejected for insufficient tokens.",
	},
)

// ── Matching metrics ──────────────────────────────────────────────────────────

// MatchDuration measures how long a job-matching request takes end-to-end.
var MatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Duration of job matching from profile load to sorted result.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ModelFallbacksTotal counts times the hosted model failed and the local
// scorer answered instead.
// Label:
//   - flow: "match_jobs", "suggest_teams", "suggest_members"
var ModelFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_fallbacks_total",
		Help:      "Total number of model failures answered by the local scorer, by flow.",
	},
	[]string{"flow"},
)

// ── Safety metrics ────────────────────────────────────────────────────────────

// SOSAlertsTotal counts persisted SOS alerts.
var SOSAlertsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sos_alerts_total",
		Help:      "Total number of SOS alerts persisted.",
	},
)

// AlertQueueDepth tracks the current number of alerts waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AlertQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alert_queue_depth",
		Help:      "Current number of alerts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
