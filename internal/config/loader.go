package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xtding233/gemcalc/internal/logger"
	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/gemcalc
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Files lists the files a profile is built from, in merge order.
func (p Paths) Files(profile string) []string {
	files := []string{p.DefaultPath()}
	if profile != "" {
		files = append(files, p.ProfilePath(profile))
	}
	return files
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths
	log   *logger.Logger

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string, log *logger.Logger) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		log:   logger.OrNop(log),
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → profile (profile optional) and
// validates the result. Missing files contribute nothing.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(merged, profCfg)
	}
	if err := ValidateRaw(merged); err != nil {
		return RawConfig{}, err
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.mu.Unlock()
	l.log.Debug("config loaded", "base_dir", l.paths.BaseDir, "profile", profile, "version", merged.Version)
	return merged, nil
}

// Load is LoadMerged followed by Resolve.
func (l *Loader) Load(profile string) (Settings, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw)
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where set.
// Map entries merge key by key; a goal or rarity in 'b' replaces the one in 'a'.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if len(b.Weights) > 0 {
		w := make(map[string]float64, len(a.Weights)+len(b.Weights))
		for k, v := range a.Weights {
			w[k] = v
		}
		for k, v := range b.Weights {
			w[k] = v
		}
		out.Weights = w
	}

	// pruning
	switch {
	case out.Pruning == nil && b.Pruning != nil:
		c := *b.Pruning
		out.Pruning = &c
	case out.Pruning != nil && b.Pruning != nil:
		c := *out.Pruning
		if b.Pruning.KeepFraction != nil {
			c.KeepFraction = b.Pruning.KeepFraction
		}
		if b.Pruning.MinKeep != nil {
			c.MinKeep = b.Pruning.MinKeep
		}
		out.Pruning = &c
	}

	// limits
	switch {
	case out.Limits == nil && b.Limits != nil:
		c := *b.Limits
		out.Limits = &c
	case out.Limits != nil && b.Limits != nil:
		c := *out.Limits
		if b.Limits.MaxAttempts != nil {
			c.MaxAttempts = b.Limits.MaxAttempts
		}
		if b.Limits.MaxTokens != nil {
			c.MaxTokens = b.Limits.MaxTokens
		}
		out.Limits = &c
	}

	// pricing
	switch {
	case out.Pricing == nil && b.Pricing != nil:
		c := *b.Pricing
		out.Pricing = &c
	case out.Pricing != nil && b.Pricing != nil:
		c := *out.Pricing
		if b.Pricing.Currency != "" {
			c.Currency = b.Pricing.Currency
		}
		if b.Pricing.GoldPerAttempt != nil {
			c.GoldPerAttempt = b.Pricing.GoldPerAttempt
		}
		out.Pricing = &c
	}

	if len(b.Rarities) > 0 {
		r := make(map[string]RarityCfg, len(a.Rarities)+len(b.Rarities))
		for k, v := range a.Rarities {
			r[k] = v
		}
		for k, v := range b.Rarities {
			r[k] = v
		}
		out.Rarities = r
	}

	if len(b.Goals) > 0 {
		g := make(map[string]GoalCfg, len(a.Goals)+len(b.Goals))
		for k, v := range a.Goals {
			g[k] = v
		}
		for k, v := range b.Goals {
			g[k] = v
		}
		out.Goals = g
	}

	return out
}
