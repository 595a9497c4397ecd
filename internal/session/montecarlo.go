package session

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/logger"
)

// SimParams describes one Monte Carlo run.
type SimParams struct {
	Engine *gem.Engine // policy and goal; its catalog drives the sessions
	Start  gem.State
	Budget gem.Budget
	Seed   uint64 // trial i uses Seed+i

	// NoRedraw disables the redraw policy so every offer is rolled.
	NoRedraw bool
}

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
}

// SimResult is what RunMonteCarlo reports.
type SimResult struct {
	Trials      int
	Successes   int
	SuccessRate float64
	Attempts    Stats // attempts spent per trial
	Redraws     Stats // tokens spent per trial
}

// calcStats summarizes per-trial counts. Var is the population variance;
// percentiles interpolate linearly between sorted neighbours.
func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sorted := make([]float64, len(xs))
	var sum float64
	for i, v := range xs {
		sorted[i] = float64(v)
		sum += sorted[i]
	}
	sort.Float64s(sorted)
	mean := sum / float64(len(sorted))

	var sq float64
	for _, v := range sorted {
		sq += (v - mean) * (v - mean)
	}
	variance := sq / float64(len(sorted))

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    quantile(sorted, 0.50),
		P90:    quantile(sorted, 0.90),
		P99:    quantile(sorted, 0.99),
	}
}

func quantile(sorted []float64, q float64) float64 {
	last := len(sorted) - 1
	pos := q * float64(last)
	lo := int(math.Floor(pos))
	if lo >= last {
		return sorted[last]
	}
	if lo < 0 {
		return sorted[0]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

// simulateOne plays one gem to the end and reports success, attempts spent
// and redraws spent.
func simulateOne(p SimParams, seed uint64) (bool, int, int, error) {
	e := p.Engine
	s, err := New(e.Catalog(), p.Start, p.Budget, gem.NewSeededRNG(seed), logger.Nop())
	if err != nil {
		return false, 0, 0, err
	}
	goal := e.Goal()
	redraws := 0
	for !s.Done(goal) {
		if !p.NoRedraw {
			b := s.Budget()
			// tokens above the engine limit add nothing the policy can use
			if lim := e.Limits().MaxTokens; b.Tokens > lim {
				b.Tokens = lim
			}
			rec, err := e.RecommendInPlay(s.State, b, s.Offer())
			if err != nil {
				return false, 0, 0, fmt.Errorf("recommend: %w", err)
			}
			if rec.Action == gem.ActionRedraw {
				if err := s.Redraw(); err != nil {
					return false, 0, 0, err
				}
				redraws++
				continue
			}
		}
		if _, err := s.Process(); err != nil {
			return false, 0, 0, err
		}
	}
	return goal.Reached(s.State), p.Budget.Attempts - s.Attempts, redraws, nil
}

// RunMonteCarlo plays trials independent sessions and summarizes them.
func RunMonteCarlo(p SimParams, trials int) (SimResult, error) {
	if p.Engine == nil {
		return SimResult{}, errors.New("montecarlo: nil engine")
	}
	if trials <= 0 {
		return SimResult{}, nil
	}
	attempts := make([]int, trials)
	redraws := make([]int, trials)
	res := SimResult{Trials: trials}
	for i := 0; i < trials; i++ {
		ok, n, r, err := simulateOne(p, p.Seed+uint64(i))
		if err != nil {
			return SimResult{}, fmt.Errorf("trial %d: %w", i, err)
		}
		if ok {
			res.Successes++
		}
		attempts[i] = n
		redraws[i] = r
	}
	res.SuccessRate = float64(res.Successes) / float64(trials)
	res.Attempts = calcStats(attempts)
	res.Redraws = calcStats(redraws)
	return res, nil
}
