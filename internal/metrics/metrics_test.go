package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtding233/gemcalc/internal/gem"
)

func TestObserveAdvise(t *testing.T) {
	m := New()
	m.ObserveAdvise("roll", 10*time.Millisecond)
	m.ObserveAdvise("roll", 20*time.Millisecond)
	m.ObserveAdvise("stop", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.adviseTotal.WithLabelValues("roll")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adviseTotal.WithLabelValues("stop")))
}

func TestObserveEngineAndInvalidate(t *testing.T) {
	m := New()
	m.ObserveEngine("sum>=16", gem.Stats{Evaluations: 7, MemoHits: 3, MemoSize: 7})
	assert.Equal(t, 7.0, testutil.ToFloat64(m.engineEvaluation.WithLabelValues("sum>=16")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.engineMemoHits.WithLabelValues("sum>=16")))

	m.ObserveInvalidation()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.engineResets))
	assert.Equal(t, 0, testutil.CollectAndCount(m.engineMemoSize))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAdvise("roll", time.Second)
	m.ObserveEngine("x", gem.Stats{})
	m.ObserveInvalidation()
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveAdvise("reroll", time.Millisecond)
	path := filepath.Join(t.TempDir(), "gemcalc.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `gemcalc_advisor_advise_total{advice="reroll"} 1`)
}
