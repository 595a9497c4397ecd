package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtding233/gemcalc/internal/gem"
)

func TestCalcStats(t *testing.T) {
	st := calcStats([]int{1, 2, 3, 4})
	assert.InDelta(t, 2.5, st.Mean, 1e-12)
	assert.InDelta(t, 1.25, st.Var, 1e-12)
	assert.InDelta(t, 2.5, st.P50, 1e-12)
	assert.InDelta(t, 3.7, st.P90, 1e-12)

	assert.Equal(t, Stats{}, calcStats(nil))
}

func TestMonteCarloEveryAttemptUseful(t *testing.T) {
	// only +1s on WE and PT: eight attempts always get 1/1 to 5/5
	c := catalogOf(t, "WE+1", "PT+1")
	e, err := gem.NewEngine(gem.TargetGoal{MinWE: 5, MinPT: 5}, gem.WithCatalog(c), gem.WithPruning(gem.ExactPruning(c)))
	require.NoError(t, err)

	res, err := RunMonteCarlo(SimParams{Engine: e, Start: gem.FreshState(), Budget: gem.Budget{Attempts: 8, Locked: true}, Seed: 11}, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Successes)
	assert.Equal(t, 1.0, res.SuccessRate)
	assert.InDelta(t, 8, res.Attempts.Mean, 1e-12)
	assert.Zero(t, res.Attempts.Var)
	assert.Zero(t, res.Redraws.Mean)

	p, err := e.Compute(gem.FreshState(), 8, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, 1, p, 1e-12)
}

func TestMonteCarloReproducible(t *testing.T) {
	e, err := gem.NewEngine(gem.TargetGoal{MinWE: 4, MinPT: 4})
	require.NoError(t, err)
	p := SimParams{Engine: e, Start: gem.FreshState(), Budget: gem.Budget{Attempts: 7, Tokens: 1, Locked: true}, Seed: 99}

	a, err := RunMonteCarlo(p, 200)
	require.NoError(t, err)
	b, err := RunMonteCarlo(p, 200)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 200, a.Trials)
	assert.LessOrEqual(t, a.Attempts.P99, 7.0)
	assert.LessOrEqual(t, a.Redraws.Mean, 1.0+2*7)
}

func TestMonteCarloGoalAlreadyReached(t *testing.T) {
	e, err := gem.NewEngine(gem.SumGoal{Threshold: 4})
	require.NoError(t, err)
	res, err := RunMonteCarlo(SimParams{Engine: e, Start: gem.FreshState(), Budget: gem.Budget{Attempts: 5}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.SuccessRate)
	assert.Zero(t, res.Attempts.Mean)
}

func TestMonteCarloNoEngine(t *testing.T) {
	_, err := RunMonteCarlo(SimParams{}, 1)
	require.Error(t, err)

	e, err := gem.NewEngine(gem.SumGoal{Threshold: 16})
	require.NoError(t, err)
	res, err := RunMonteCarlo(SimParams{Engine: e, Start: gem.FreshState()}, 0)
	require.NoError(t, err)
	assert.Zero(t, res.Trials)
}
