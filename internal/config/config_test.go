package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtding233/gemcalc/internal/gem"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const defaultYAML = `
version: "2025.1"
weights:
  HOLD: 2.0
pruning:
  keep_fraction: 0.99
  min_keep: 12
rarities:
  uncommon: {attempts: 5, tokens: 0}
goals:
  offense:
    min_we: 4
    min_pt: 5
    categories:
      - {category: offense_a, min_level: 5}
`

const profileYAML = `
version: "2025.1-hard"
weights:
  REROLL+2: 0
pruning:
  min_keep: 15
pricing:
  gold_per_attempt: 1200
goals:
  total:
    sum: 17
`

func TestLoaderMergesDefaultAndProfile(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir, nil)
	writeFile(t, l.Paths().DefaultPath(), defaultYAML)
	writeFile(t, l.Paths().ProfilePath("hard"), profileYAML)

	raw, err := l.LoadMerged("hard")
	require.NoError(t, err)
	assert.Equal(t, "2025.1-hard", raw.Version)
	assert.Equal(t, map[string]float64{"HOLD": 2.0, "REROLL+2": 0}, raw.Weights)
	require.NotNil(t, raw.Pruning)
	assert.Equal(t, 0.99, *raw.Pruning.KeepFraction)
	assert.Equal(t, 15, *raw.Pruning.MinKeep)
	assert.Contains(t, raw.Goals, "offense")
	assert.Contains(t, raw.Goals, "total")

	s, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, 1200, s.Pricing.GoldPerAttempt)
	assert.Equal(t, gem.Pruning{KeepFraction: 0.99, MinKeep: 15}, s.Pruning)

	hold, _, err := s.Catalog.Lookup("HOLD")
	require.NoError(t, err)
	assert.Equal(t, 2.0, hold.Weight)
	r2, _, err := s.Catalog.Lookup("REROLL+2")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r2.Weight)

	g, err := s.Goal("offense")
	require.NoError(t, err)
	assert.Equal(t, gem.TargetGoal{MinWE: 4, MinPT: 5, Categories: []gem.CategoryGoal{{Category: gem.OffenseA, MinLevel: 5}}}, g)
	g, err = s.Goal("total")
	require.NoError(t, err)
	assert.Equal(t, gem.SumGoal{Threshold: 17}, g)

	// built-ins survive
	_, err = s.Goal("sum19")
	require.NoError(t, err)
	b, err := s.Rarity(RarityEpic)
	require.NoError(t, err)
	assert.Equal(t, gem.Budget{Attempts: 9, Tokens: 2, Locked: true}, b)
}

func TestLoaderMissingFilesYieldDefaults(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)
	s, err := l.Load("nope")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Pruning, s.Pruning)
	assert.Len(t, s.Catalog, 27)
	b, err := s.Rarity(RarityRare)
	require.NoError(t, err)
	assert.Equal(t, gem.Budget{Attempts: 7, Tokens: 1, Locked: true}, b)
}

func TestLoaderCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir, nil)
	writeFile(t, l.Paths().DefaultPath(), `version: "a"`)

	raw, err := l.LoadMerged("")
	require.NoError(t, err)
	assert.Equal(t, "a", raw.Version)

	writeFile(t, l.Paths().DefaultPath(), `version: "b"`)
	raw, err = l.LoadMerged("")
	require.NoError(t, err)
	assert.Equal(t, "a", raw.Version, "served from cache")

	l.Invalidate()
	raw, err = l.LoadMerged("")
	require.NoError(t, err)
	assert.Equal(t, "b", raw.Version)
}

func TestLoaderRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir, nil)
	writeFile(t, l.Paths().DefaultPath(), "weights: [unclosed")
	_, err := l.LoadMerged("")
	require.Error(t, err)
}

func TestValidateRaw(t *testing.T) {
	neg := -1.0
	zero := 0
	big := 2.0
	sum := 30
	we := 6
	cfg := RawConfig{
		Weights: map[string]float64{"NOPE": 1, "HOLD": neg},
		Pruning: &PruningCfg{KeepFraction: &big, MinKeep: &zero},
		Rarities: map[string]RarityCfg{
			"broken": {Attempts: &zero},
		},
		Goals: map[string]GoalCfg{
			"both":  {Sum: &sum, MinWE: &we},
			"empty": {},
			"sum":   {Sum: &sum},
			"cat":   {Categories: []CategoryGoalCfg{{Category: "healer", MinLevel: 5}}},
		},
	}
	err := ValidateRaw(cfg)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"weights.NOPE: unknown effect",
		"weights.HOLD must be >= 0",
		"pruning.keep_fraction must be in (0,1]",
		"pruning.min_keep must be >= 1",
		"rarities.broken.attempts must be >= 1",
		"goals.both: sum cannot be combined",
		"goals.empty: empty goal",
		"goals.sum:",
		"goals.cat:",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NoError(t, ValidateRaw(RawConfig{}))
}

func TestFileWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, `version: "1"`)

	var fired atomic.Int32
	w := NewFileWatcher([]string{path}, 20*time.Millisecond, func(string) { fired.Add(1) }, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeFile(t, path, `version: "2"`)
	require.Eventually(t, func() bool { return fired.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)

	// unrelated files in the same directory are ignored
	before := fired.Load()
	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, fired.Load())
}
