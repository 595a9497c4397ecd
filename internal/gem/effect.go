package gem

import "fmt"

// Kind groups effects that share eligibility and transition rules.
type Kind uint8

const (
	WEPlus Kind = iota
	WEMinus
	PTPlus
	PTMinus
	Name1Plus
	Name1Minus
	Name2Plus
	Name2Minus
	Name1Change
	Name2Change
	CostUp
	CostDown
	Hold
	RedrawGain
)

func (k Kind) String() string {
	switch k {
	case WEPlus:
		return "we_plus"
	case WEMinus:
		return "we_minus"
	case PTPlus:
		return "pt_plus"
	case PTMinus:
		return "pt_minus"
	case Name1Plus:
		return "name1_plus"
	case Name1Minus:
		return "name1_minus"
	case Name2Plus:
		return "name2_plus"
	case Name2Minus:
		return "name2_minus"
	case Name1Change:
		return "name1_change"
	case Name2Change:
		return "name2_change"
	case CostUp:
		return "cost_up"
	case CostDown:
		return "cost_down"
	case Hold:
		return "hold"
	case RedrawGain:
		return "redraw_gain"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// EffectID is the stable identifier of one catalog row, e.g. "WE+2" or "O1chg".
type EffectID string

// Effect is one possible outcome of a processing attempt.
type Effect struct {
	ID     EffectID
	Kind   Kind
	Tier   int     // +1..+4 for the *Plus kinds
	Amount int     // tokens granted by RedrawGain
	Weight float64 // nominal draw weight in percent
}

// IsChange reports whether applying the effect needs a replacement category.
func (e Effect) IsChange() bool {
	return e.Kind == Name1Change || e.Kind == Name2Change
}

// Catalog is an ordered effect table. Order matters: it breaks ties in the
// pruning sort and drives the sampler's fill-in policy.
type Catalog []Effect

// Published appearance rates per attempt.
const (
	weightTier1   = 11.65
	weightTier2   = 4.40
	weightTier3   = 1.75
	weightTier4   = 0.45
	weightMinus1  = 3.00
	weightChange  = 3.25
	weightCost    = 1.75
	weightHold    = 1.75
	weightRedraw  = 2.50
	weightRedraw2 = 0.75
)

var defaultCatalog = buildDefaultCatalog()

func buildDefaultCatalog() Catalog {
	var c Catalog
	attr := func(prefix string, plus, minus Kind) {
		tiers := []float64{weightTier1, weightTier2, weightTier3, weightTier4}
		for i, w := range tiers {
			c = append(c, Effect{ID: EffectID(fmt.Sprintf("%s+%d", prefix, i+1)), Kind: plus, Tier: i + 1, Weight: w})
		}
		c = append(c, Effect{ID: EffectID(prefix + "-1"), Kind: minus, Weight: weightMinus1})
	}
	attr("WE", WEPlus, WEMinus)
	attr("PT", PTPlus, PTMinus)
	attr("O1", Name1Plus, Name1Minus)
	attr("O2", Name2Plus, Name2Minus)
	c = append(c,
		Effect{ID: "O1chg", Kind: Name1Change, Weight: weightChange},
		Effect{ID: "O2chg", Kind: Name2Change, Weight: weightChange},
		Effect{ID: "COST+100", Kind: CostUp, Weight: weightCost},
		Effect{ID: "COST-100", Kind: CostDown, Weight: weightCost},
		Effect{ID: "HOLD", Kind: Hold, Weight: weightHold},
		Effect{ID: "REROLL+1", Kind: RedrawGain, Amount: 1, Weight: weightRedraw},
		Effect{ID: "REROLL+2", Kind: RedrawGain, Amount: 2, Weight: weightRedraw2},
	)
	return c
}

// DefaultCatalog returns a copy of the published 27-effect table.
func DefaultCatalog() Catalog {
	return append(Catalog(nil), defaultCatalog...)
}

// Lookup finds an effect and its index by ID.
func (c Catalog) Lookup(id EffectID) (Effect, int, error) {
	for i, e := range c {
		if e.ID == id {
			return e, i, nil
		}
	}
	return Effect{}, -1, fmt.Errorf("%w: %q", ErrUnknownEffect, id)
}

// WithWeights returns a copy with the given weights overriding matching IDs.
func (c Catalog) WithWeights(overrides map[EffectID]float64) (Catalog, error) {
	out := append(Catalog(nil), c...)
	for id, w := range overrides {
		_, i, err := out.Lookup(id)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("effect %s: weight must be >= 0, got %v", id, w)
		}
		out[i].Weight = w
	}
	return out, nil
}

// TotalWeight sums nominal weights.
func (c Catalog) TotalWeight() float64 {
	var sum float64
	for _, e := range c {
		sum += e.Weight
	}
	return sum
}
