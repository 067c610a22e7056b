// Package metrics exposes Prometheus counters for study activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the application's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	catalogLoads   *prometheus.CounterVec
	deckImports    *prometheus.CounterVec
	quizAnswers    *prometheus.CounterVec
	activeSessions *prometheus.GaugeVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		catalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vocab_catalog_loads_total",
				Help: "Catalog loads by where the built-in decks came from",
			},
			[]string{"provenance"}, // online, offline-cache, empty
		),
		deckImports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vocab_deck_imports_total",
				Help: "Deck import attempts by outcome",
			},
			[]string{"outcome"}, // success, failure
		),
		quizAnswers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vocab_quiz_answers_total",
				Help: "Quiz answers by result",
			},
			[]string{"result"}, // correct, wrong
		),
		activeSessions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vocab_active_sessions",
				Help: "Study sessions currently open",
			},
			[]string{"kind"}, // flashcards, quiz
		),
	}
}

// CatalogLoaded counts one catalog load.
func (m *Metrics) CatalogLoaded(provenance string) {
	if m == nil {
		return
	}
	m.catalogLoads.WithLabelValues(provenance).Inc()
}

// DeckImport counts one import attempt.
func (m *Metrics) DeckImport(ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.deckImports.WithLabelValues(outcome).Inc()
}

// QuizAnswer counts one scored answer.
func (m *Metrics) QuizAnswer(correct bool) {
	if m == nil {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.quizAnswers.WithLabelValues(result).Inc()
}

// SessionOpened increments the open-session gauge for kind.
func (m *Metrics) SessionOpened(kind string) {
	if m == nil {
		return
	}
	m.activeSessions.WithLabelValues(kind).Inc()
}

// SessionClosed decrements the open-session gauge for kind.
func (m *Metrics) SessionClosed(kind string) {
	if m == nil {
		return
	}
	m.activeSessions.WithLabelValues(kind).Dec()
}
