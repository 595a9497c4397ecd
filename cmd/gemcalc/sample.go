package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xtding233/gemcalc/internal/gem"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		f     gemFlags
		seed  uint64
		count int
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw offers the way the game does",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.state()
			if err != nil {
				return err
			}
			b, err := f.budget(cmd, a.settings)
			if err != nil {
				return err
			}
			rng := gem.DefaultRNG()
			if seed != 0 {
				rng = gem.NewSeededRNG(seed)
			}
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				o, err := gem.SampleOffer(a.settings.Catalog, s, b.Attempts, rng)
				if err != nil {
					return err
				}
				if count > 1 {
					fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("#%d", i+1)))
				}
				if err := renderOffer(out, a.printer, a.settings.Catalog, s, o); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible draws (0 draws from crypto/rand)")
	cmd.Flags().IntVar(&count, "count", 1, "number of offers to draw")
	return cmd
}
