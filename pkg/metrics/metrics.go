// Package metrics provides Prometheus metrics for the Veranda service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperationsTotal tracks ledger and reference-table mutations/queries
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veranda",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations by collection and operation",
		},
		[]string{"collection", "operation"},
	)

	// PersistenceFailures tracks swallowed storage-bridge failures
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veranda",
			Subsystem: "storage",
			Name:      "persistence_failures_total",
			Help:      "Total number of dropped storage reads/writes by key and kind",
		},
		[]string{"key", "kind"},
	)

	// SubmissionTransitionsTotal tracks submission status transitions
	SubmissionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veranda",
			Subsystem: "submissions",
			Name:      "transitions_total",
			Help:      "Total number of submission status transitions",
		},
		[]string{"to_status"},
	)

	// LoginAttemptsTotal tracks admin gate logins
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veranda",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Total number of admin login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// EventsEmittedTotal tracks lifecycle events published to Kafka
	EventsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veranda",
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Total number of lifecycle events emitted by type and outcome",
		},
		[]string{"event_type", "outcome"},
	)
)
