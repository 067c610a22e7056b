package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Parallel()
	m := New(prometheus.NewRegistry())

	m.CatalogLoaded("online")
	m.CatalogLoaded("online")
	m.CatalogLoaded("empty")
	m.DeckImport(true)
	m.DeckImport(false)
	m.QuizAnswer(true)
	m.SessionOpened("quiz")
	m.SessionOpened("quiz")
	m.SessionClosed("quiz")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.catalogLoads.WithLabelValues("online")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLoads.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deckImports.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deckImports.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quizAnswers.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions.WithLabelValues("quiz")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CatalogLoaded("online")
		m.DeckImport(true)
		m.QuizAnswer(false)
		m.SessionOpened("flashcards")
		m.SessionClosed("flashcards")
	})
}
