package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xtding233/gemcalc/internal/gem"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// weights
	catalog := gem.DefaultCatalog()
	for _, id := range sortedKeys(cfg.Weights) {
		if _, _, err := catalog.Lookup(gem.EffectID(id)); err != nil {
			errs = append(errs, fmt.Sprintf("weights.%s: unknown effect", id))
			continue
		}
		if w := cfg.Weights[id]; w < 0 {
			errs = append(errs, fmt.Sprintf("weights.%s must be >= 0", id))
		}
	}

	// pruning
	if cfg.Pruning != nil {
		if f := cfg.Pruning.KeepFraction; f != nil && (*f <= 0 || *f > 1) {
			errs = append(errs, "pruning.keep_fraction must be in (0,1]")
		}
		if k := cfg.Pruning.MinKeep; k != nil && *k < 1 {
			errs = append(errs, "pruning.min_keep must be >= 1")
		}
	}

	// limits
	if cfg.Limits != nil {
		if n := cfg.Limits.MaxAttempts; n != nil && *n < 1 {
			errs = append(errs, "limits.max_attempts must be >= 1")
		}
		if n := cfg.Limits.MaxTokens; n != nil && *n < 0 {
			errs = append(errs, "limits.max_tokens must be >= 0")
		}
	}

	// pricing
	if cfg.Pricing != nil && cfg.Pricing.GoldPerAttempt != nil && *cfg.Pricing.GoldPerAttempt < 0 {
		errs = append(errs, "pricing.gold_per_attempt must be >= 0")
	}

	// rarities
	for _, name := range sortedKeys(cfg.Rarities) {
		r := cfg.Rarities[name]
		if r.Attempts == nil || *r.Attempts < 1 {
			errs = append(errs, fmt.Sprintf("rarities.%s.attempts must be >= 1", name))
		}
		if r.Tokens != nil && *r.Tokens < 0 {
			errs = append(errs, fmt.Sprintf("rarities.%s.tokens must be >= 0", name))
		}
	}

	// goals
	for _, name := range sortedKeys(cfg.Goals) {
		g := cfg.Goals[name]
		isTarget := g.MinWE != nil || g.MinPT != nil || len(g.Categories) > 0
		switch {
		case g.Sum != nil && isTarget:
			errs = append(errs, fmt.Sprintf("goals.%s: sum cannot be combined with min_we/min_pt/categories", name))
			continue
		case g.Sum == nil && !isTarget:
			errs = append(errs, fmt.Sprintf("goals.%s: empty goal", name))
			continue
		}
		goal, err := g.toGoal()
		if err != nil {
			errs = append(errs, fmt.Sprintf("goals.%s: %v", name, err))
			continue
		}
		if err := gem.ValidateGoal(goal); err != nil {
			errs = append(errs, fmt.Sprintf("goals.%s: %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
