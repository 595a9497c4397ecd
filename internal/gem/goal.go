package gem

import (
	"fmt"
	"strings"
)

// Goal is the success predicate an engine is built around.
// Key identifies the goal so callers can tell when a cached engine is stale.
type Goal interface {
	Reached(s State) bool
	Key() string
}

// GoalReached reports whether s already satisfies g.
func GoalReached(s State, g Goal) bool {
	return g.Reached(s)
}

// CategoryGoal requires the slot holding Category to be at least MinLevel.
type CategoryGoal struct {
	Category Category `yaml:"category" validate:"max=3"`
	MinLevel int      `yaml:"min_level" validate:"min=1,max=5"`
}

// TargetGoal requires minimum WE and PT plus up to two category levels.
// A category held by neither slot is simply not reached yet.
type TargetGoal struct {
	MinWE      int            `yaml:"min_we" validate:"min=1,max=5"`
	MinPT      int            `yaml:"min_pt" validate:"min=1,max=5"`
	Categories []CategoryGoal `yaml:"categories,omitempty" validate:"max=2,dive"`
}

func (g TargetGoal) Reached(s State) bool {
	if s.WE < g.MinWE || s.PT < g.MinPT {
		return false
	}
	for _, cg := range g.Categories {
		lvl, ok := s.LevelOf(cg.Category)
		if !ok || lvl < cg.MinLevel {
			return false
		}
	}
	return true
}

func (g TargetGoal) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "target:we>=%d,pt>=%d", g.MinWE, g.MinPT)
	for _, cg := range g.Categories {
		fmt.Fprintf(&b, ",%s>=%d", cg.Category, cg.MinLevel)
	}
	return b.String()
}

func (g TargetGoal) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGoal, describe(err))
	}
	if len(g.Categories) == 2 && g.Categories[0].Category == g.Categories[1].Category {
		return fmt.Errorf("%w: duplicate category %s", ErrInvalidGoal, g.Categories[0].Category)
	}
	return nil
}

// OffensePairGoal is the "offense A & B at level" preset.
func OffensePairGoal(minWE, minPT, level int) TargetGoal {
	return TargetGoal{MinWE: minWE, MinPT: minPT, Categories: []CategoryGoal{
		{Category: OffenseA, MinLevel: level},
		{Category: OffenseB, MinLevel: level},
	}}
}

// SupportPairGoal is the "support A & B at level" preset.
func SupportPairGoal(minWE, minPT, level int) TargetGoal {
	return TargetGoal{MinWE: minWE, MinPT: minPT, Categories: []CategoryGoal{
		{Category: SupportA, MinLevel: level},
		{Category: SupportB, MinLevel: level},
	}}
}

// Standard totals tracked next to every target goal.
const (
	SumThresholdLow  = 16
	SumThresholdHigh = 19
)

// SumGoal is reached when we+pt+name1+name2 >= Threshold.
type SumGoal struct {
	Threshold int `yaml:"threshold" validate:"min=4,max=20"`
}

func (g SumGoal) Reached(s State) bool { return s.Total() >= g.Threshold }

func (g SumGoal) Key() string { return fmt.Sprintf("sum>=%d", g.Threshold) }

func (g SumGoal) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGoal, describe(err))
	}
	return nil
}

// ValidateGoal runs the goal's own validation when it has one.
func ValidateGoal(g Goal) error {
	if g == nil {
		return fmt.Errorf("%w: nil goal", ErrInvalidGoal)
	}
	if v, ok := g.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
