package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	require.NotNil(t, m)

	m.RecordRPCCall("GetAccountInfo", "success", "development", 0.05)
	m.RecordRPCCall("GetAccountInfo", "error", "development", 0.1)
	m.RecordTransferBuilt("native")
	m.RecordTransferBuilt("token-2022")
	m.RecordSubmission("development", "success")
	m.RecordSubmission("main", "rejected")
	m.RecordSignatureVerification("failure")
	m.RecordEventPublished("success")

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.solanaRPCCallsTotal.WithLabelValues("GetAccountInfo", "success", "development")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.solanaRPCCallsTotal.WithLabelValues("GetAccountInfo", "error", "development")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.transfersBuiltTotal.WithLabelValues("token-2022")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.submissionsTotal.WithLabelValues("main", "rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.signatureVerificationsTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.eventsPublishedTotal.WithLabelValues("success")))
}

// Registering the same collectors twice on one registry must panic via
// promauto; a fresh registry per instance is the supported pattern.
func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry)
	assert.Panics(t, func() { NewMetrics(registry) })
}
