package gem

import "fmt"

// Category is the effect category held by one of the two option slots.
type Category uint8

const (
	OffenseA Category = iota
	OffenseB
	SupportA
	SupportB
)

// Categories lists every category in table order.
var Categories = [...]Category{OffenseA, OffenseB, SupportA, SupportB}

func (c Category) String() string {
	switch c {
	case OffenseA:
		return "offense_a"
	case OffenseB:
		return "offense_b"
	case SupportA:
		return "support_a"
	case SupportB:
		return "support_b"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseCategory accepts the names produced by String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidState, s)
}

const (
	MinLevel = 1
	MaxLevel = 5

	MinCostAdj  = -100
	MaxCostAdj  = 100
	CostAdjStep = 100
)

// State is one snapshot of a gem. It is a value type: transitions return
// a new State and never touch the receiver, and it is comparable so it can
// key the engine caches directly.
//
// O1/O2 are slot-indexed. Swap decides which slot the "first named" and
// "second named" effects currently refer to.
type State struct {
	WE      int      `yaml:"we" validate:"min=1,max=5"`
	PT      int      `yaml:"pt" validate:"min=1,max=5"`
	O1      int      `yaml:"o1" validate:"min=1,max=5"`
	O2      int      `yaml:"o2" validate:"min=1,max=5"`
	Swap    bool     `yaml:"swap"`
	CostAdj int      `yaml:"cost_adj" validate:"min=-100,max=100"`
	Slot1   Category `yaml:"slot1" validate:"max=3"`
	Slot2   Category `yaml:"slot2" validate:"max=3"`
}

// FreshState is the baseline of a newly obtained gem.
func FreshState() State {
	return State{WE: 1, PT: 1, O1: 1, O2: 1, Slot1: OffenseA, Slot2: OffenseB}
}

// Name1 returns the level of the first named effect.
func (s State) Name1() int {
	if s.Swap {
		return s.O2
	}
	return s.O1
}

// Name2 returns the level of the second named effect.
func (s State) Name2() int {
	if s.Swap {
		return s.O1
	}
	return s.O2
}

// Name1Category returns the category of the slot the first named effect points at.
func (s State) Name1Category() Category {
	if s.Swap {
		return s.Slot2
	}
	return s.Slot1
}

// Name2Category returns the category of the slot the second named effect points at.
func (s State) Name2Category() Category {
	if s.Swap {
		return s.Slot1
	}
	return s.Slot2
}

// LevelOf returns the level of the slot currently holding c.
func (s State) LevelOf(c Category) (int, bool) {
	switch c {
	case s.Slot1:
		return s.O1, true
	case s.Slot2:
		return s.O2, true
	}
	return 0, false
}

// Total is the sum used by the sum-threshold goals.
func (s State) Total() int {
	return s.WE + s.PT + s.Name1() + s.Name2()
}

func (s State) String() string {
	return fmt.Sprintf("we=%d pt=%d o1=%d o2=%d swap=%t cost=%+d slots=%s/%s",
		s.WE, s.PT, s.O1, s.O2, s.Swap, s.CostAdj, s.Slot1, s.Slot2)
}

func clampLevel(x int) int {
	if x < MinLevel {
		return MinLevel
	}
	if x > MaxLevel {
		return MaxLevel
	}
	return x
}

func clampCost(x int) int {
	if x < MinCostAdj {
		return MinCostAdj
	}
	if x > MaxCostAdj {
		return MaxCostAdj
	}
	return x
}
