package gem

// EligibleWeight returns the effect's draw weight in the given state, or 0
// when the effect cannot appear: a +tier that would be wasted at the top of
// the range, a -1 at the floor, a cost change at its clamp or on the last
// attempt, and a redraw gain on the last attempt.
func EligibleWeight(e Effect, s State, attemptsLeft int) float64 {
	switch e.Kind {
	case WEPlus:
		return plusWeight(e, s.WE)
	case PTPlus:
		return plusWeight(e, s.PT)
	case Name1Plus:
		return plusWeight(e, s.Name1())
	case Name2Plus:
		return plusWeight(e, s.Name2())
	case WEMinus:
		return minusWeight(e, s.WE)
	case PTMinus:
		return minusWeight(e, s.PT)
	case Name1Minus:
		return minusWeight(e, s.Name1())
	case Name2Minus:
		return minusWeight(e, s.Name2())
	case CostUp:
		if s.CostAdj >= MaxCostAdj || attemptsLeft == 1 {
			return 0
		}
	case CostDown:
		if s.CostAdj <= MinCostAdj || attemptsLeft == 1 {
			return 0
		}
	case RedrawGain:
		if attemptsLeft == 1 {
			return 0
		}
	}
	return e.Weight
}

// plusWeight zeroes a +tier once x is within tier of the cap:
// +1 at 5, +2 at >=4, +3 at >=3, +4 at >=2.
func plusWeight(e Effect, x int) float64 {
	if x >= MaxLevel+1-e.Tier {
		return 0
	}
	return e.Weight
}

func minusWeight(e Effect, x int) float64 {
	if x <= MinLevel {
		return 0
	}
	return e.Weight
}

// EligibleWeights evaluates the whole catalog, index-aligned with c.
func (c Catalog) EligibleWeights(s State, attemptsLeft int) []float64 {
	ws := make([]float64, len(c))
	for i, e := range c {
		ws[i] = EligibleWeight(e, s, attemptsLeft)
	}
	return ws
}
