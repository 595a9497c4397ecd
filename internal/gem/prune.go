package gem

import (
	"fmt"
	"sort"
)

// Pruning bounds how many effects the engine expands per state.
type Pruning struct {
	KeepFraction float64 `yaml:"keep_fraction" validate:"gt=0,lte=1"`
	MinKeep      int     `yaml:"min_keep" validate:"min=1"`
}

// DefaultPruning keeps 98.5% of the eligible mass and never fewer than 10 effects.
func DefaultPruning() Pruning {
	return Pruning{KeepFraction: 0.985, MinKeep: 10}
}

// ExactPruning keeps every eligible effect.
func ExactPruning(c Catalog) Pruning {
	return Pruning{KeepFraction: 1, MinKeep: len(c)}
}

func (p Pruning) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid pruning: %s", describe(err))
	}
	return nil
}

// activeSet is the pruned, index-aligned subset an engine expands.
type activeSet struct {
	idxs []int
	ws   []float64
	wsum float64
}

func (a activeSet) empty() bool { return len(a.idxs) == 0 || a.wsum <= 0 }

// selectActive sorts eligible effects by weight, heaviest first, and keeps a
// prefix until KeepFraction of the eligible total is covered and MinKeep
// effects are in. Ties keep catalog order.
func selectActive(c Catalog, p Pruning, s State, attemptsLeft int) activeSet {
	type cand struct {
		i int
		w float64
	}
	raw := make([]cand, 0, len(c))
	var total float64
	for i, e := range c {
		if w := EligibleWeight(e, s, attemptsLeft); w > 0 {
			raw = append(raw, cand{i, w})
			total += w
		}
	}
	if len(raw) == 0 {
		return activeSet{}
	}
	sort.SliceStable(raw, func(a, b int) bool { return raw[a].w > raw[b].w })

	out := activeSet{idxs: make([]int, 0, len(raw)), ws: make([]float64, 0, len(raw))}
	for _, x := range raw {
		if out.wsum/total >= p.KeepFraction && len(out.idxs) >= p.MinKeep {
			break
		}
		out.idxs = append(out.idxs, x.i)
		out.ws = append(out.ws, x.w)
		out.wsum += x.w
	}
	return out
}
