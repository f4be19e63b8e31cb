package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetricsRecorded tests every collector against a private registry.
func TestMetricsRecorded(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := MustNewMetrics(registry)

	m.SessionStarted("explorer")
	m.SessionStarted("explorer")
	m.SessionEnded()
	m.Answer("instinct")
	m.Reflex(true)
	m.Reflex(false)
	m.Reflex(false)
	m.Dossier("ghost")
	m.SetActive(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsStarted.WithLabelValues("explorer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsEnded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("instinct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reflexActions.WithLabelValues("correct")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reflexActions.WithLabelValues("wrong")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dossiers.WithLabelValues("ghost")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsActive))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["cybercompass_session_started_total"])
	assert.True(t, names["cybercompass_reflex_actions_total"])
}

// TestNilMetrics tests that a nil receiver is a no-op.
func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted("explorer")
		m.SessionEnded()
		m.Answer("deep")
		m.Reflex(true)
		m.Dossier("analyst")
		m.SetActive(1)
	})
}

// TestDefault tests that the shared metrics are created once.
func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}
