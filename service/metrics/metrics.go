package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
// Following the explicit dependency injection pattern, this struct
// is passed to all components that need to record metrics.
type Metrics struct {
	// Solana RPC Metrics
	solanaRPCCallsTotal   *prometheus.CounterVec
	solanaRPCCallDuration *prometheus.HistogramVec

	// Transfer Pipeline Metrics
	transfersBuiltTotal         *prometheus.CounterVec
	submissionsTotal            *prometheus.CounterVec
	signatureVerificationsTotal *prometheus.CounterVec

	// Event Publishing Metrics
	eventsPublishedTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		solanaRPCCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_rpc_calls_total",
				Help: "Total number of Solana RPC calls by method and status",
			},
			[]string{"method", "status", "network"},
		),
		solanaRPCCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solana_rpc_call_duration_seconds",
				Help:    "Duration of Solana RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "network"},
		),
		transfersBuiltTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_built_total",
				Help: "Total number of transfer instruction sets built by asset kind",
			},
			[]string{"asset_kind"},
		),
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_submissions_total",
				Help: "Total number of transaction submissions by network and status",
			},
			[]string{"network", "status"},
		),
		signatureVerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signature_verifications_total",
				Help: "Total number of local signature verifications by status",
			},
			[]string{"status"},
		),
		eventsPublishedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_events_published_total",
				Help: "Total number of transfer receipt events published by status",
			},
			[]string{"status"},
		),
	}
}

// RecordRPCCall records one Solana RPC call's outcome and duration.
func (m *Metrics) RecordRPCCall(method, status, network string, durationSeconds float64) {
	m.solanaRPCCallsTotal.WithLabelValues(method, status, network).Inc()
	m.solanaRPCCallDuration.WithLabelValues(method, network).Observe(durationSeconds)
}

// RecordTransferBuilt records a successfully built transfer instruction
// set. Kind is "native", "token", or "token-2022".
func (m *Metrics) RecordTransferBuilt(kind string) {
	m.transfersBuiltTotal.WithLabelValues(kind).Inc()
}

// RecordSubmission records a transaction submission outcome.
// Status is "success", "rejected", or "error".
func (m *Metrics) RecordSubmission(network, status string) {
	m.submissionsTotal.WithLabelValues(network, status).Inc()
}

// RecordSignatureVerification records a local verification outcome.
func (m *Metrics) RecordSignatureVerification(status string) {
	m.signatureVerificationsTotal.WithLabelValues(status).Inc()
}

// RecordEventPublished records a transfer receipt event publish outcome.
func (m *Metrics) RecordEventPublished(status string) {
	m.eventsPublishedTotal.WithLabelValues(status).Inc()
}
