// types.go
package config

// RawConfig mirrors one YAML file. Every field is optional so a profile can
// override only what it needs; Resolve fills the rest with built-in defaults.
type RawConfig struct {
	Version  string               `yaml:"version"`
	Weights  map[string]float64   `yaml:"weights,omitempty"` // effect id -> nominal weight
	Pruning  *PruningCfg          `yaml:"pruning,omitempty"`
	Limits   *LimitsCfg           `yaml:"limits,omitempty"`
	Pricing  *PricingCfg          `yaml:"pricing,omitempty"`
	Rarities map[string]RarityCfg `yaml:"rarities,omitempty"`
	Goals    map[string]GoalCfg   `yaml:"goals,omitempty"`
	Notes    string               `yaml:"notes,omitempty"`
}

type PruningCfg struct {
	KeepFraction *float64 `yaml:"keep_fraction"`
	MinKeep      *int     `yaml:"min_keep"`
}

type LimitsCfg struct {
	MaxAttempts *int `yaml:"max_attempts"`
	MaxTokens   *int `yaml:"max_tokens"`
}

type PricingCfg struct {
	Currency       string `yaml:"currency,omitempty"`
	GoldPerAttempt *int   `yaml:"gold_per_attempt"`
}

// RarityCfg is the budget a fresh gem of that rarity starts with.
type RarityCfg struct {
	Attempts *int `yaml:"attempts"`
	Tokens   *int `yaml:"tokens"`
}

// GoalCfg describes either a target goal (min_we/min_pt/categories) or a
// sum goal (sum). Setting both is a validation error.
type GoalCfg struct {
	MinWE      *int              `yaml:"min_we,omitempty"`
	MinPT      *int              `yaml:"min_pt,omitempty"`
	Categories []CategoryGoalCfg `yaml:"categories,omitempty"`
	Sum        *int              `yaml:"sum,omitempty"`
}

type CategoryGoalCfg struct {
	Category string `yaml:"category"`
	MinLevel int    `yaml:"min_level"`
}
