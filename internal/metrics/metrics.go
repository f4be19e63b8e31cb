// Package metrics exposes Prometheus collectors for quiz session activity.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cybercompass"

// Metrics groups the collectors reported by the session layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	sessionsStarted *prometheus.CounterVec
	sessionsEnded   prometheus.Counter
	answers         *prometheus.CounterVec
	reflexActions   *prometheus.CounterVec
	dossiers        *prometheus.CounterVec
	sessionsActive  prometheus.Gauge
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the metrics registered with the global Prometheus registry.
// Collectors are created once so repeated servers in one process share them.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNewMetrics registers a fresh set of collectors with reg and panics on
// conflicting registrations. Tests should pass their own registry.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "started_total",
			Help:      "Quiz sessions started, by path.",
		}, []string{"path"}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "ended_total",
			Help:      "Quiz sessions ended explicitly.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "answers_total",
			Help:      "Answers applied, by question phase.",
		}, []string{"phase"}),
		reflexActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reflex",
			Name:      "actions_total",
			Help:      "Reflex drill actions, by outcome.",
		}, []string{"outcome"}),
		dossiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dossier",
			Name:      "generated_total",
			Help:      "Dossiers generated, by archetype.",
		}, []string{"archetype"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently held in the registry.",
		}),
	}
	reg.MustRegister(m.sessionsStarted, m.sessionsEnded, m.answers, m.reflexActions, m.dossiers, m.sessionsActive)
	return m
}

// SessionStarted counts a new session on the given path.
func (m *Metrics) SessionStarted(path string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(path).Inc()
}

// SessionEnded counts an explicitly ended session.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsEnded.Inc()
}

// Answer counts an applied answer.
func (m *Metrics) Answer(phase string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(phase).Inc()
}

// Reflex counts a reflex action as "correct" or "wrong".
func (m *Metrics) Reflex(correct bool) {
	if m == nil {
		return
	}
	outcome := "wrong"
	if correct {
		outcome = "correct"
	}
	m.reflexActions.WithLabelValues(outcome).Inc()
}

// Dossier counts a generated dossier.
func (m *Metrics) Dossier(archetype string) {
	if m == nil {
		return
	}
	m.dossiers.WithLabelValues(archetype).Inc()
}

// SetActive reports the number of live sessions.
func (m *Metrics) SetActive(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
