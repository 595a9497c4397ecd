// resolve.go
package config

import (
	"fmt"

	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/pricing"
)

// Rarity names used by the built-in budgets.
const (
	RarityUncommon = "uncommon"
	RarityRare     = "rare"
	RarityEpic     = "epic"
)

// Settings is a resolved configuration ready for the engine and advisor.
type Settings struct {
	Version  string
	Catalog  gem.Catalog
	Pruning  gem.Pruning
	Limits   gem.Limits
	Pricing  pricing.Pricing
	Rarities map[string]gem.Budget
	Goals    map[string]gem.Goal
}

// Rarity returns the fresh-gem budget for name. Fresh gems start locked.
func (s Settings) Rarity(name string) (gem.Budget, error) {
	b, ok := s.Rarities[name]
	if !ok {
		return gem.Budget{}, fmt.Errorf("unknown rarity %q", name)
	}
	return b, nil
}

// Goal returns the named goal preset.
func (s Settings) Goal(name string) (gem.Goal, error) {
	g, ok := s.Goals[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown goal preset %q", gem.ErrInvalidGoal, name)
	}
	return g, nil
}

// Defaults are the settings used when no file overrides anything.
func Defaults() Settings {
	return Settings{
		Version: "builtin",
		Catalog: gem.DefaultCatalog(),
		Pruning: gem.DefaultPruning(),
		Limits:  gem.DefaultLimits(),
		Pricing: pricing.Default(),
		Rarities: map[string]gem.Budget{
			RarityUncommon: {Attempts: 5, Tokens: 0, Locked: true},
			RarityRare:     {Attempts: 7, Tokens: 1, Locked: true},
			RarityEpic:     {Attempts: 9, Tokens: 2, Locked: true},
		},
		Goals: map[string]gem.Goal{
			"we5_pt5":      gem.TargetGoal{MinWE: 5, MinPT: 5},
			"offense_ab_5": gem.OffensePairGoal(5, 5, 5),
			"support_ab_5": gem.SupportPairGoal(5, 5, 5),
			"sum16":        gem.SumGoal{Threshold: gem.SumThresholdLow},
			"sum19":        gem.SumGoal{Threshold: gem.SumThresholdHigh},
		},
	}
}

// Resolve layers a validated RawConfig over Defaults.
func Resolve(raw RawConfig) (Settings, error) {
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}
	s := Defaults()
	if raw.Version != "" {
		s.Version = raw.Version
	}

	if len(raw.Weights) > 0 {
		overrides := make(map[gem.EffectID]float64, len(raw.Weights))
		for id, w := range raw.Weights {
			overrides[gem.EffectID(id)] = w
		}
		c, err := s.Catalog.WithWeights(overrides)
		if err != nil {
			return Settings{}, err
		}
		s.Catalog = c
	}

	if raw.Pruning != nil {
		if raw.Pruning.KeepFraction != nil {
			s.Pruning.KeepFraction = *raw.Pruning.KeepFraction
		}
		if raw.Pruning.MinKeep != nil {
			s.Pruning.MinKeep = *raw.Pruning.MinKeep
		}
	}
	if raw.Limits != nil {
		if raw.Limits.MaxAttempts != nil {
			s.Limits.MaxAttempts = *raw.Limits.MaxAttempts
		}
		if raw.Limits.MaxTokens != nil {
			s.Limits.MaxTokens = *raw.Limits.MaxTokens
		}
	}
	if raw.Pricing != nil {
		if raw.Pricing.Currency != "" {
			s.Pricing.Currency = raw.Pricing.Currency
		}
		if raw.Pricing.GoldPerAttempt != nil {
			s.Pricing.GoldPerAttempt = *raw.Pricing.GoldPerAttempt
		}
	}

	for name, r := range raw.Rarities {
		b := gem.Budget{Attempts: *r.Attempts, Locked: true}
		if r.Tokens != nil {
			b.Tokens = *r.Tokens
		}
		s.Rarities[name] = b
	}
	for name, g := range raw.Goals {
		goal, err := g.toGoal()
		if err != nil {
			return Settings{}, fmt.Errorf("goals.%s: %w", name, err)
		}
		s.Goals[name] = goal
	}
	return s, nil
}

// toGoal converts a goal entry. Unset minimums default to 1.
func (g GoalCfg) toGoal() (gem.Goal, error) {
	if g.Sum != nil {
		return gem.SumGoal{Threshold: *g.Sum}, nil
	}
	t := gem.TargetGoal{MinWE: 1, MinPT: 1}
	if g.MinWE != nil {
		t.MinWE = *g.MinWE
	}
	if g.MinPT != nil {
		t.MinPT = *g.MinPT
	}
	for _, c := range g.Categories {
		cat, err := gem.ParseCategory(c.Category)
		if err != nil {
			return nil, err
		}
		t.Categories = append(t.Categories, gem.CategoryGoal{Category: cat, MinLevel: c.MinLevel})
	}
	return t, nil
}
