package gem

import (
	"errors"
	"fmt"
)

// Engine computes the probability of reaching its goal under optimal play.
//
// Values are memoized per (state, attempts, tokens, locked) and the pruned
// active set per (state, attempts). Both caches belong to this engine and
// are only valid for its goal, catalog and pruning; build a new engine (or
// call Reset) when any of them changes. An Engine is not safe for
// concurrent use.
type Engine struct {
	goal    Goal
	catalog Catalog
	pruning Pruning
	limits  Limits

	memo   map[memoKey]float64
	active map[activeKey]activeSet
	stats  Stats
}

type memoKey struct {
	s      State
	n, c   int
	locked bool
}

type activeKey struct {
	s State
	n int
}

// Stats counts cache behaviour since the last Reset.
type Stats struct {
	Evaluations int // values computed (memo misses)
	MemoHits    int
	ActiveHits  int
	MemoSize    int
}

// Option customizes an Engine.
type Option func(*Engine)

func WithCatalog(c Catalog) Option { return func(e *Engine) { e.catalog = c } }

func WithPruning(p Pruning) Option { return func(e *Engine) { e.pruning = p } }

func WithLimits(l Limits) Option { return func(e *Engine) { e.limits = l } }

// NewEngine builds an engine for goal with the default catalog, pruning and limits.
func NewEngine(goal Goal, opts ...Option) (*Engine, error) {
	if err := ValidateGoal(goal); err != nil {
		return nil, err
	}
	e := &Engine{
		goal:    goal,
		catalog: DefaultCatalog(),
		pruning: DefaultPruning(),
		limits:  DefaultLimits(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.catalog) == 0 {
		return nil, errors.New("engine: empty catalog")
	}
	if err := e.pruning.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(e.limits); err != nil {
		return nil, fmt.Errorf("engine: invalid limits: %s", describe(err))
	}
	e.Reset()
	return e, nil
}

func (e *Engine) Goal() Goal { return e.goal }
func (e *Engine) Catalog() Catalog { return e.catalog }
func (e *Engine) Pruning() Pruning { return e.pruning }
func (e *Engine) Limits() Limits { return e.limits }

// Stats returns a snapshot of the cache counters.
func (e *Engine) Stats() Stats {
	st := e.stats
	st.MemoSize = len(e.memo)
	return st
}

// Reset drops every cached value.
func (e *Engine) Reset() {
	e.memo = make(map[memoKey]float64)
	e.active = make(map[activeKey]activeSet)
	e.stats = Stats{}
}

// Compute is the probability of eventually reaching the goal from s with
// the given attempts and redraw tokens. locked is true only before the
// first attempt of a gem, when the current offer cannot be redrawn.
func (e *Engine) Compute(s State, attempts, tokens int, locked bool) (float64, error) {
	if err := e.check(s, attempts, tokens, true); err != nil {
		return 0, err
	}
	return e.value(s, attempts, tokens, locked), nil
}

// ComputeIfRedrawSpent is the value of discarding the current offer now:
// one token fewer, same attempts, redraw unlocked.
func (e *Engine) ComputeIfRedrawSpent(s State, attempts, tokens int) (float64, error) {
	return e.redrawSpent(s, attempts, tokens, true)
}

func (e *Engine) redrawSpent(s State, attempts, tokens int, entry bool) (float64, error) {
	if tokens <= 0 {
		return 0, fmt.Errorf("%w: redraw needs a token, have %d", ErrInvalidBudget, tokens)
	}
	if err := e.check(s, attempts, tokens-1, entry); err != nil {
		return 0, err
	}
	return e.value(s, attempts, tokens-1, false), nil
}

// EvaluateOffer averages the child values of exactly the four shown effects.
func (e *Engine) EvaluateOffer(s State, attempts, tokens int, shown Offer) (float64, error) {
	return e.evaluateOffer(s, attempts, tokens, shown, true)
}

func (e *Engine) evaluateOffer(s State, attempts, tokens int, shown Offer, entry bool) (float64, error) {
	if err := e.check(s, attempts, tokens, entry); err != nil {
		return 0, err
	}
	idxs := make([]int, 0, len(shown))
	for _, id := range shown {
		_, i, err := e.catalog.Lookup(id)
		if err != nil {
			return 0, err
		}
		idxs = append(idxs, i)
	}
	if e.goal.Reached(s) {
		return 1, nil
	}
	if attempts <= 0 {
		return 0, nil
	}
	var acc float64
	for _, i := range idxs {
		acc += e.childValue(s, attempts, tokens, i)
	}
	return acc / float64(len(idxs)), nil
}

// check validates inputs before any recursion. entry additionally requires
// two different slot categories; states reached by processing skip that.
func (e *Engine) check(s State, attempts, tokens int, entry bool) error {
	valid := s.Validate
	if entry {
		valid = s.ValidateEntry
	}
	if err := valid(); err != nil {
		return err
	}
	return e.limits.check(attempts, tokens)
}

// value is V(s, n, c, locked).
func (e *Engine) value(s State, n, c int, locked bool) float64 {
	if e.goal.Reached(s) {
		return 1
	}
	if n <= 0 {
		return 0
	}
	key := memoKey{s: s, n: n, c: c, locked: locked}
	if v, ok := e.memo[key]; ok {
		e.stats.MemoHits++
		return v
	}
	e.stats.Evaluations++

	set := e.activeSet(s, n)
	if set.empty() {
		e.memo[key] = 0
		return 0
	}
	var acc float64
	for k, i := range set.idxs {
		acc += set.ws[k] * e.childValue(s, n, c, i)
	}
	v := acc / set.wsum

	if c > 0 && !locked {
		if redraw := e.value(s, n, c-1, false); redraw > v {
			v = redraw
		}
	}
	e.memo[key] = v
	return v
}

// childValue is the value after effect i is applied with n attempts left.
// A change effect averages its three equally likely replacement categories.
func (e *Engine) childValue(s State, n, c, i int) float64 {
	eff := e.catalog[i]
	if choices := ChangeChoices(s, eff); len(choices) > 0 {
		var acc float64
		for _, to := range choices {
			next, gained := ApplyWithCategory(s, eff, to)
			acc += e.value(next, n-1, c+gained, false)
		}
		return acc / float64(len(choices))
	}
	next, gained := ApplyWithCategory(s, eff, 0)
	return e.value(next, n-1, c+gained, false)
}

func (e *Engine) activeSet(s State, n int) activeSet {
	key := activeKey{s: s, n: n}
	if set, ok := e.active[key]; ok {
		e.stats.ActiveHits++
		return set
	}
	set := selectActive(e.catalog, e.pruning, s, n)
	e.active[key] = set
	return set
}
