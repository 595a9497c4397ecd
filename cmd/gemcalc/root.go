package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xtding233/gemcalc/internal/config"
	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/i18n"
	"github.com/xtding233/gemcalc/internal/logger"
	"github.com/xtding233/gemcalc/internal/metrics"
	"golang.org/x/text/message"
)

// app is what PersistentPreRunE prepares for the subcommands.
type app struct {
	env      envConfig
	log      *logger.Logger
	loader   *config.Loader
	settings config.Settings
	metrics  *metrics.Metrics
	printer  *message.Printer
}

func newRootCmd(cfg envConfig) *cobra.Command {
	a := &app{env: cfg}
	root := &cobra.Command{
		Use:           "gemcalc",
		Short:         "Success odds and advice for gem processing",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer a.log.Sync()
			if a.env.MetricsFile == "" {
				return nil
			}
			if err := a.metrics.WriteTextfile(a.env.MetricsFile); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.env.ConfigDir, "config-dir", cfg.ConfigDir, "directory holding default.yaml and profiles/ (GEMCALC_CONFIG_DIR)")
	pf.StringVar(&a.env.Profile, "profile", cfg.Profile, "config profile to merge over default.yaml (GEMCALC_PROFILE)")
	pf.StringVar(&a.env.LogMode, "log-mode", cfg.LogMode, "prod, quiet or dev (GEMCALC_LOG_MODE)")
	pf.StringVar(&a.env.Lang, "lang", cfg.Lang, "report language: en or ko (GEMCALC_LANG)")
	pf.StringVar(&a.env.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics here on exit (GEMCALC_METRICS_FILE)")

	root.AddCommand(
		newAdviseCmd(a),
		newSampleCmd(a),
		newSimulateCmd(a),
		newEffectsCmd(a),
	)
	return root
}

func (a *app) init() error {
	log, err := logger.New(a.env.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log
	a.loader = config.NewLoader(a.env.ConfigDir, log)
	a.metrics = metrics.New()
	a.printer = i18n.Printer(i18n.ResolveTag(a.env.Lang))
	return a.reload()
}

// reload drops the loader cache and resolves the profile again.
func (a *app) reload() error {
	a.loader.Invalidate()
	s, err := a.loader.Load(a.env.Profile)
	if err != nil {
		return err
	}
	a.settings = s
	a.log.Debug("settings loaded", "version", s.Version, "profile", a.env.Profile)
	return nil
}

// gemFlags are the state and budget flags shared by the subcommands.
type gemFlags struct {
	we, pt, o1, o2 int
	swap           bool
	cost           int
	slot1, slot2   string

	attempts int
	tokens   int
	locked   bool
	rarity   string
}

func (f *gemFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.we, "we", 1, "willpower efficiency level (1-5)")
	fs.IntVar(&f.pt, "pt", 1, "points level (1-5)")
	fs.IntVar(&f.o1, "o1", 1, "slot 1 level (1-5)")
	fs.IntVar(&f.o2, "o2", 1, "slot 2 level (1-5)")
	fs.BoolVar(&f.swap, "swap", false, "first named effect refers to slot 2")
	fs.IntVar(&f.cost, "cost", 0, "processing cost adjustment: -100, 0 or 100")
	fs.StringVar(&f.slot1, "slot1", gem.OffenseA.String(), "slot 1 category")
	fs.StringVar(&f.slot2, "slot2", gem.OffenseB.String(), "slot 2 category")
	fs.IntVar(&f.attempts, "attempts", -1, "attempts left (default: the rarity's full budget)")
	fs.IntVar(&f.tokens, "tokens", -1, "redraw tokens left (default: the rarity's budget)")
	fs.BoolVar(&f.locked, "locked", false, "no attempt taken yet, so the offer cannot be redrawn")
	fs.StringVar(&f.rarity, "rarity", config.RarityEpic, "gem rarity: uncommon, rare or epic")
}

func (f *gemFlags) state() (gem.State, error) {
	s1, err := gem.ParseCategory(f.slot1)
	if err != nil {
		return gem.State{}, err
	}
	s2, err := gem.ParseCategory(f.slot2)
	if err != nil {
		return gem.State{}, err
	}
	s := gem.State{WE: f.we, PT: f.pt, O1: f.o1, O2: f.o2, Swap: f.swap, CostAdj: f.cost, Slot1: s1, Slot2: s2}
	return s, s.ValidateEntry()
}

// budget fills unset flags from the rarity. A budget taken whole from the
// rarity is a fresh gem and therefore locked unless --locked says otherwise.
func (f *gemFlags) budget(cmd *cobra.Command, s config.Settings) (gem.Budget, error) {
	b, err := s.Rarity(f.rarity)
	if err != nil {
		return gem.Budget{}, fmt.Errorf("%w: %v", gem.ErrInvalidBudget, err)
	}
	if f.attempts >= 0 {
		b.Attempts = f.attempts
		b.Locked = false
	}
	if f.tokens >= 0 {
		b.Tokens = f.tokens
	}
	if cmd.Flags().Changed("locked") {
		b.Locked = f.locked
	}
	return b, nil
}

func (a *app) newWatcher(onChange func(string)) *config.FileWatcher {
	return config.NewFileWatcher(a.loader.Paths().Files(a.env.Profile), watchDebounce, onChange, a.log)
}
