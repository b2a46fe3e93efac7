// Package metrics holds the Prometheus collectors of the game backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerdictsTotal counts verdicts by how they were reached
	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spicysweet_verdicts_total",
			Help: "Total number of answer verdicts",
		},
		[]string{"matched_on"},
	)

	// RetriesTotal counts retried attempts per wrapped operation
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spicysweet_retries_total",
			Help: "Total number of retried attempts",
		},
		[]string{"operation"},
	)

	// JudgeErrorsTotal counts failed fuzzy judge calls by error kind
	JudgeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spicysweet_judge_errors_total",
			Help: "Total number of failed fuzzy judge calls",
		},
		[]string{"kind"},
	)

	// JudgeLatency tracks fuzzy judge latency, retries included
	JudgeLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spicysweet_judge_latency_seconds",
			Help:    "Fuzzy judge latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// JudgeCacheTotal counts fuzzy judge cache lookups by result
	JudgeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spicysweet_judge_cache_total",
			Help: "Total number of fuzzy judge cache lookups",
		},
		[]string{"result"},
	)

	// RoomsSweptTotal counts rooms touched by the janitor by action
	RoomsSweptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spicysweet_rooms_swept_total",
			Help: "Total number of questions auto-closed and idle rooms evicted",
		},
		[]string{"action"},
	)
)
