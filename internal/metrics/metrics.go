package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapsTotal counts swap attempts by bridge and outcome
	SwapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_swaps_total",
			Help: "Total number of swap operations",
		},
		[]string{"bridge", "status"},
	)

	// RedeemsTotal counts redeem attempts by bridge and outcome
	RedeemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_redeems_total",
			Help: "Total number of redeem operations",
		},
		[]string{"bridge", "status"},
	)

	// OperationDuration tracks swap and redeem latency
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_operation_duration_seconds",
			Help:    "Bridge operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"bridge", "operation"},
	)

	// EventsPublished counts events pushed to the message bus
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_events_published_total",
			Help: "Total number of bridge events published",
		},
		[]string{"event_type", "status"},
	)

	// ClaimsSigned counts claims signed by the validator per route
	ClaimsSigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_claims_signed_total",
			Help: "Total number of redemption claims signed",
		},
		[]string{"source", "destination"},
	)

	// ValidatorCursor tracks the last event sequence the validator processed
	ValidatorCursor = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_validator_cursor",
			Help: "Last processed event sequence by bridge and event type",
		},
		[]string{"bridge", "event_type"},
	)

	// RelayedTotal counts claims submitted by the relayer by outcome
	RelayedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_relayed_total",
			Help: "Total number of relayed redeem submissions",
		},
		[]string{"bridge", "status"},
	)

	// PendingRelays tracks claims waiting to be relayed
	PendingRelays = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bridge_pending_relays",
			Help: "Number of claims waiting to be relayed by recipient",
		},
		[]string{"recipient"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
