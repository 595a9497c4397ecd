package gem

// ChangeChoices lists the replacement categories a change effect can roll:
// every category except the changed slot's own. O1chg always changes slot 1
// and O2chg slot 2; unlike the other named effects they ignore Swap. The
// sibling slot's category stays in the pool, so both slots may briefly hold
// the same category.
func ChangeChoices(s State, e Effect) []Category {
	var current Category
	switch e.Kind {
	case Name1Change:
		current = s.Slot1
	case Name2Change:
		current = s.Slot2
	default:
		return nil
	}
	out := make([]Category, 0, len(Categories)-1)
	for _, c := range Categories {
		if c != current {
			out = append(out, c)
		}
	}
	return out
}

// ApplyWithCategory applies e to s. For change effects to is the replacement
// category; every other kind ignores it. It returns the next state and the
// number of redraw tokens gained.
func ApplyWithCategory(s State, e Effect, to Category) (State, int) {
	next := s
	gained := 0
	switch e.Kind {
	case WEPlus:
		next.WE = clampLevel(s.WE + e.Tier)
	case WEMinus:
		next.WE = clampLevel(s.WE - 1)
	case PTPlus:
		next.PT = clampLevel(s.PT + e.Tier)
	case PTMinus:
		next.PT = clampLevel(s.PT - 1)
	case Name1Plus:
		next.addName(1, e.Tier)
	case Name1Minus:
		next.addName(1, -1)
	case Name2Plus:
		next.addName(2, e.Tier)
	case Name2Minus:
		next.addName(2, -1)
	case Name1Change:
		next.Slot1 = to
	case Name2Change:
		next.Slot2 = to
	case CostUp:
		next.CostAdj = clampCost(s.CostAdj + CostAdjStep)
	case CostDown:
		next.CostAdj = clampCost(s.CostAdj - CostAdjStep)
	case Hold:
	case RedrawGain:
		gained = e.Amount
	}
	return next, gained
}

// Apply applies e to s, rolling the replacement category of a change effect
// uniformly from ChangeChoices with rng.
func Apply(s State, e Effect, rng RandomSource) (State, int) {
	var to Category
	if choices := ChangeChoices(s, e); len(choices) > 0 {
		if rng == nil {
			rng = DefaultRNG()
		}
		to = choices[pickUniform(len(choices), rng)]
	}
	return ApplyWithCategory(s, e, to)
}

// ApplyChosen applies the catalog effect with the given id.
func ApplyChosen(c Catalog, s State, id EffectID, rng RandomSource) (State, int, error) {
	e, _, err := c.Lookup(id)
	if err != nil {
		return s, 0, err
	}
	next, gained := Apply(s, e, rng)
	return next, gained, nil
}

// slotForName maps a named effect (1 or 2) to its slot through the swap flag.
func (s *State) slotForName(name int) int {
	if s.Swap {
		return 3 - name
	}
	return name
}

func (s *State) addName(name, d int) {
	if s.slotForName(name) == 1 {
		s.O1 = clampLevel(s.O1 + d)
	} else {
		s.O2 = clampLevel(s.O2 + d)
	}
}
