package gem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var we5pt5 = TargetGoal{MinWE: 5, MinPT: 5}

func newEngine(t *testing.T, g Goal, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(g, opts...)
	require.NoError(t, err)
	return e
}

// reference is an unmemoized, unpruned rendition of the recursion.
func reference(g Goal, c Catalog, s State, n, tokens int, locked bool) float64 {
	if g.Reached(s) {
		return 1
	}
	if n <= 0 {
		return 0
	}
	var acc, total float64
	for _, eff := range c {
		w := EligibleWeight(eff, s, n)
		if w <= 0 {
			continue
		}
		total += w
		if choices := ChangeChoices(s, eff); len(choices) > 0 {
			var sub float64
			for _, to := range choices {
				next, gained := ApplyWithCategory(s, eff, to)
				sub += reference(g, c, next, n-1, tokens+gained, false)
			}
			acc += w * sub / float64(len(choices))
			continue
		}
		next, gained := ApplyWithCategory(s, eff, 0)
		acc += w * reference(g, c, next, n-1, tokens+gained, false)
	}
	if total <= 0 {
		return 0
	}
	v := acc / total
	if tokens > 0 && !locked {
		if r := reference(g, c, s, n, tokens-1, false); r > v {
			v = r
		}
	}
	return v
}

func TestComputeGoalAlreadyReached(t *testing.T) {
	e := newEngine(t, we5pt5)
	s := State{WE: 5, PT: 5, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}
	for _, n := range []int{0, 1, 7} {
		for _, c := range []int{0, 2} {
			for _, locked := range []bool{false, true} {
				p, err := e.Compute(s, n, c, locked)
				require.NoError(t, err)
				assert.Equal(t, 1.0, p)
			}
		}
	}
	p, err := e.EvaluateOffer(s, 3, 0, Offer{"WE-1", "PT-1", "HOLD", "O1+1"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestComputeNoAttempts(t *testing.T) {
	e := newEngine(t, we5pt5)
	p, err := e.Compute(FreshState(), 0, 3, false)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = e.EvaluateOffer(FreshState(), 0, 0, Offer{"WE+4", "PT+4", "HOLD", "O1+1"})
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestComputeUnreachable(t *testing.T) {
	e := newEngine(t, we5pt5)
	// one attempt cannot lift two attributes
	p, err := e.Compute(FreshState(), 1, 0, true)
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestComputeRegressionBaseline(t *testing.T) {
	a := newEngine(t, we5pt5)
	b := newEngine(t, we5pt5)
	s := State{WE: 1, PT: 1, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}

	pa, err := a.Compute(s, 5, 0, true)
	require.NoError(t, err)
	pb, err := b.Compute(s, 5, 0, true)
	require.NoError(t, err)

	assert.Equal(t, 0.0040067873650989957, pa)
	assert.Equal(t, pa, pb)

	again, err := a.Compute(s, 5, 0, true)
	require.NoError(t, err)
	assert.Equal(t, pa, again)

	// epic budget
	epic, err := a.Compute(s, 9, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 0.050325570642043869, epic)
}

func TestComputeMonotonicInAttempts(t *testing.T) {
	c := DefaultCatalog()
	e := newEngine(t, we5pt5, WithPruning(ExactPruning(c)))
	s := State{WE: 2, PT: 3, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}
	prev := -1.0
	for n := 0; n <= 5; n++ {
		p, err := e.Compute(s, n, 1, false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, prev, "n=%d", n)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
	assert.Positive(t, prev)
}

func TestComputeMonotonicInTokens(t *testing.T) {
	e := newEngine(t, OffensePairGoal(3, 3, 3))
	s := FreshState()
	prev := -1.0
	for c := 0; c <= 4; c++ {
		p, err := e.Compute(s, 4, c, false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, prev, "tokens=%d", c)
		prev = p
	}
}

func TestComputeMatchesReference(t *testing.T) {
	c := DefaultCatalog()
	g := SumGoal{Threshold: 8}
	e := newEngine(t, g, WithPruning(ExactPruning(c)))
	cases := []struct {
		s      State
		n, tok int
		locked bool
	}{
		{FreshState(), 2, 0, true},
		{FreshState(), 3, 1, false},
		{State{WE: 2, PT: 1, O1: 2, O2: 1, Swap: true, Slot1: SupportA, Slot2: OffenseB}, 3, 0, false},
	}
	for _, tc := range cases {
		got, err := e.Compute(tc.s, tc.n, tc.tok, tc.locked)
		require.NoError(t, err)
		want := reference(g, c, tc.s, tc.n, tc.tok, tc.locked)
		assert.InDelta(t, want, got, 1e-9, "%s n=%d c=%d", tc.s, tc.n, tc.tok)
	}
}

func TestPruningConverges(t *testing.T) {
	c := DefaultCatalog()
	s := FreshState()
	const n = 4

	exact := newEngine(t, we5pt5, WithPruning(ExactPruning(c)))
	want, err := exact.Compute(s, n, 0, true)
	require.NoError(t, err)

	pruned := newEngine(t, we5pt5)
	got, err := pruned.Compute(s, n, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 0.015*n)

	tight := newEngine(t, we5pt5, WithPruning(Pruning{KeepFraction: 0.9999, MinKeep: len(c) - 1}))
	closer, err := tight.Compute(s, n, 0, true)
	require.NoError(t, err)
	assert.LessOrEqual(t, abs(closer-want), abs(got-want)+1e-12)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestSelectActive(t *testing.T) {
	c := DefaultCatalog()
	s := FreshState()

	all := selectActive(c, ExactPruning(c), s, 5)
	// at the floor the four -1s are out
	assert.Len(t, all.idxs, 23)

	def := selectActive(c, DefaultPruning(), s, 5)
	assert.GreaterOrEqual(t, len(def.idxs), 10)
	assert.Less(t, len(def.idxs), len(all.idxs))
	assert.GreaterOrEqual(t, def.wsum/all.wsum, 0.985)
	for k := 1; k < len(def.ws); k++ {
		assert.GreaterOrEqual(t, def.ws[k-1], def.ws[k])
	}
	assert.Equal(t, 0, def.idxs[0], "ties keep catalog order")

	tiny := selectActive(c, Pruning{KeepFraction: 0.01, MinKeep: 1}, s, 5)
	assert.Len(t, tiny.idxs, 1)
}

func TestRedrawSpentAndRecommend(t *testing.T) {
	e := newEngine(t, we5pt5)
	s := State{WE: 4, PT: 4, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}

	spent, err := e.ComputeIfRedrawSpent(s, 2, 2)
	require.NoError(t, err)
	want, err := e.Compute(s, 2, 1, false)
	require.NoError(t, err)
	assert.Equal(t, want, spent)

	_, err = e.ComputeIfRedrawSpent(s, 2, 0)
	require.ErrorIs(t, err, ErrInvalidBudget)

	// nothing on offer helps, and one attempt will not be enough afterwards
	bad := Offer{"WE-1", "PT-1", "O1-1", "HOLD"}
	rec, err := e.Recommend(s, Budget{Attempts: 2, Tokens: 2}, bad)
	require.NoError(t, err)
	assert.Zero(t, rec.RollNow)
	assert.Positive(t, rec.RedrawNow)
	assert.True(t, rec.CanRedraw)
	assert.Equal(t, ActionRedraw, rec.Action)
	assert.Equal(t, rec.RedrawNow, rec.Best())

	rec, err = e.Recommend(s, Budget{Attempts: 2, Tokens: 2, Locked: true}, bad)
	require.NoError(t, err)
	assert.False(t, rec.CanRedraw)
	assert.Zero(t, rec.RedrawNow)
	assert.Equal(t, ActionRoll, rec.Action)

	good := Offer{"WE+1", "PT+1", "WE+2", "PT+2"}
	rec, err = e.Recommend(s, Budget{Attempts: 2, Tokens: 2}, good)
	require.NoError(t, err)
	assert.Greater(t, rec.RollNow, rec.RedrawNow)
	assert.Equal(t, ActionRoll, rec.Action)
	assert.Equal(t, rec.RollNow, rec.Best())
}

func TestEvaluateOfferAveragesChildren(t *testing.T) {
	e := newEngine(t, we5pt5)
	s := State{WE: 4, PT: 5, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}
	// only WE+1 finishes with one attempt left
	p, err := e.EvaluateOffer(s, 1, 0, Offer{"WE+1", "HOLD", "PT-1", "O2+1"})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p, 1e-12)
}

func TestEngineRejectsBadInput(t *testing.T) {
	e := newEngine(t, we5pt5)

	_, err := e.Compute(State{WE: 0, PT: 1, O1: 1, O2: 1}, 3, 0, false)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.Compute(FreshState(), -1, 0, false)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = e.Compute(FreshState(), 21, 0, false)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = e.Compute(FreshState(), 3, 21, false)
	require.ErrorIs(t, err, ErrInvalidBudget)
	_, err = e.EvaluateOffer(FreshState(), 3, 0, Offer{"WE+1", "PT+1", "HOLD", "??"})
	require.ErrorIs(t, err, ErrUnknownEffect)

	_, err = NewEngine(nil)
	require.ErrorIs(t, err, ErrInvalidGoal)
	_, err = NewEngine(SumGoal{Threshold: 2})
	require.ErrorIs(t, err, ErrInvalidGoal)
	_, err = NewEngine(we5pt5, WithCatalog(Catalog{}))
	require.Error(t, err)
	_, err = NewEngine(we5pt5, WithPruning(Pruning{KeepFraction: 1.5, MinKeep: 1}))
	require.Error(t, err)
	_, err = NewEngine(we5pt5, WithLimits(Limits{MaxAttempts: 0}))
	require.Error(t, err)
}

func TestEngineEqualSlotsOnlyInPlay(t *testing.T) {
	e := newEngine(t, we5pt5)
	s := State{WE: 4, PT: 4, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseA}
	b := Budget{Attempts: 2, Tokens: 1}
	shown := Offer{"WE+1", "PT+1", "HOLD", "O1chg"}

	_, err := e.Compute(s, 2, 1, false)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.ComputeIfRedrawSpent(s, 2, 1)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.EvaluateOffer(s, 2, 1, shown)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = e.Recommend(s, b, shown)
	require.ErrorIs(t, err, ErrInvalidState)

	rec, err := e.RecommendInPlay(s, b, shown)
	require.NoError(t, err)
	assert.Positive(t, rec.RollNow)
	assert.True(t, rec.CanRedraw)

	// slot categories do not enter a WE/PT goal
	s.Slot2 = OffenseB
	want, err := e.Recommend(s, b, shown)
	require.NoError(t, err)
	assert.Equal(t, want, rec)
}

func TestEngineStatsAndReset(t *testing.T) {
	e := newEngine(t, we5pt5)
	_, err := e.Compute(FreshState(), 4, 0, true)
	require.NoError(t, err)
	st := e.Stats()
	assert.Positive(t, st.Evaluations)
	assert.Equal(t, st.Evaluations, st.MemoSize)

	_, err = e.Compute(FreshState(), 4, 0, true)
	require.NoError(t, err)
	assert.Greater(t, e.Stats().MemoHits, st.MemoHits)
	assert.Equal(t, st.Evaluations, e.Stats().Evaluations)

	e.Reset()
	assert.Equal(t, Stats{}, e.Stats())
}
