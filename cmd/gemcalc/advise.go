package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xtding233/gemcalc/internal/advisor"
	"github.com/xtding233/gemcalc/internal/gem"
)

func newAdviseCmd(a *app) *cobra.Command {
	var (
		f     gemFlags
		goal  string
		offer string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Odds for the current gem and whether to roll, redraw or stop",
		Example: `  gemcalc advise --we 3 --pt 4 --attempts 6 --tokens 1 --offer WE+1,PT+2,HOLD,O1chg
  gemcalc advise --rarity rare --goal offense_ab_5 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adv := advisor.New(a.settings, a.log, a.metrics)
			run := func(ctx context.Context) error {
				req, err := a.request(cmd, &f, goal, offer)
				if err != nil {
					return err
				}
				rep, err := adv.Advise(ctx, req)
				if err != nil {
					return err
				}
				return renderReport(cmd.OutOrStdout(), a.printer, rep)
			}
			if err := run(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, func() error {
				adv.SetSettings(a.settings)
				return run(ctx)
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&goal, "goal", "we5_pt5", "goal preset from the config")
	cmd.Flags().StringVar(&offer, "offer", "", "the four shown effect ids, comma separated")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run whenever the config files change")
	return cmd
}

func (a *app) request(cmd *cobra.Command, f *gemFlags, goalName, offer string) (advisor.Request, error) {
	s, err := f.state()
	if err != nil {
		return advisor.Request{}, err
	}
	b, err := f.budget(cmd, a.settings)
	if err != nil {
		return advisor.Request{}, err
	}
	g, err := a.settings.Goal(goalName)
	if err != nil {
		return advisor.Request{}, err
	}
	req := advisor.Request{State: s, Budget: b, Rarity: f.rarity, Goal: g}
	if offer != "" {
		o, err := gem.ParseOffer(a.settings.Catalog, offer)
		if err != nil {
			return advisor.Request{}, err
		}
		req.Offer = &o
	}
	return req, nil
}

// watch reloads the settings whenever a config file changes and calls
// onReload, until ctx is done. Reload failures keep the previous settings.
func (a *app) watch(ctx context.Context, onReload func() error) error {
	changed := make(chan string, 1)
	w := a.newWatcher(func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	a.log.Info("watching config", "files", w.Paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			if err := a.reload(); err != nil {
				a.log.Warn("config reload failed, keeping previous settings", "path", path, "error", err)
				continue
			}
			if err := onReload(); err != nil {
				a.log.Error("re-run after reload failed", "error", err)
			}
		}
	}
}

const watchDebounce = 200 * time.Millisecond
