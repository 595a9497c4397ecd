package pricing

import (
	"math"

	"github.com/xtding233/gemcalc/internal/gem"
)

// DefaultGoldPerAttempt is the base price of one processing attempt.
const DefaultGoldPerAttempt = 900

// Pricing defines how much gold one processing attempt costs.
type Pricing struct {
	Currency       string `yaml:"currency"`         // e.g. "gold"
	GoldPerAttempt int    `yaml:"gold_per_attempt"` // base price before the cost adjustment
}

func Default() Pricing {
	return Pricing{Currency: "gold", GoldPerAttempt: DefaultGoldPerAttempt}
}

// PerAttempt applies a cost adjustment in percent: -100 makes attempts free,
// +100 doubles them.
func (p Pricing) PerAttempt(costAdj int) float64 {
	if costAdj < gem.MinCostAdj {
		costAdj = gem.MinCostAdj
	}
	if costAdj > gem.MaxCostAdj {
		costAdj = gem.MaxCostAdj
	}
	return float64(p.GoldPerAttempt) * (1 + float64(costAdj)/100)
}

// ForAttempts returns the gold needed for n attempts at the current adjustment.
func (p Pricing) ForAttempts(n, costAdj int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * p.PerAttempt(costAdj)
}

// ExpectedCost is the gold spent per success when every try costs
// ForAttempts(n, costAdj) and succeeds with probability prob. A zero
// probability never pays off and yields +Inf.
func (p Pricing) ExpectedCost(prob float64, n, costAdj int) float64 {
	if prob <= 0 || math.IsNaN(prob) {
		return math.Inf(1)
	}
	return p.ForAttempts(n, costAdj) / prob
}
