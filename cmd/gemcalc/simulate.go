package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/session"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		f        gemFlags
		goal     string
		trials   int
		seed     uint64
		noRedraw bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many gems with the recommended policy and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.state()
			if err != nil {
				return err
			}
			b, err := f.budget(cmd, a.settings)
			if err != nil {
				return err
			}
			g, err := a.settings.Goal(goal)
			if err != nil {
				return err
			}
			e, err := gem.NewEngine(g,
				gem.WithCatalog(a.settings.Catalog),
				gem.WithPruning(a.settings.Pruning),
				gem.WithLimits(a.settings.Limits),
			)
			if err != nil {
				return err
			}
			expected, err := e.Compute(s, b.Attempts, b.Tokens, b.Locked)
			if err != nil {
				return err
			}

			res, err := session.RunMonteCarlo(session.SimParams{
				Engine:   e,
				Start:    s,
				Budget:   b,
				Seed:     seed,
				NoRedraw: noRedraw,
			}, trials)
			if err != nil {
				return err
			}
			a.metrics.ObserveEngine(g.Key(), e.Stats())
			a.log.Debug("simulation finished", "goal", g.Key(), "trials", trials, "successes", res.Successes)

			p := a.printer
			var out strings.Builder
			out.WriteString(titleStyle.Render(g.Key()))
			out.WriteString("\n")
			fmt.Fprintf(&out, "trials        %d\n", res.Trials)
			fmt.Fprintf(&out, "success rate  %s\n", percent(p, res.SuccessRate))
			fmt.Fprintf(&out, "engine        %s\n", percent(p, expected))
			fmt.Fprintf(&out, "attempts      mean %.2f  sd %.2f  p50 %.0f  p90 %.0f  p99 %.0f\n",
				res.Attempts.Mean, res.Attempts.StdDev, res.Attempts.P50, res.Attempts.P90, res.Attempts.P99)
			fmt.Fprintf(&out, "redraws       mean %.2f  p90 %.0f\n", res.Redraws.Mean, res.Redraws.P90)
			_, err = fmt.Fprint(cmd.OutOrStdout(), out.String())
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&goal, "goal", "we5_pt5", "goal preset from the config")
	cmd.Flags().IntVar(&trials, "trials", 1000, "number of simulated gems")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "base seed; trial i uses seed+i")
	cmd.Flags().BoolVar(&noRedraw, "no-redraw", false, "never redraw, always process the shown offer")
	return cmd
}
