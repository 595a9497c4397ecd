package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/xtding233/gemcalc/internal/i18n"
)

func newEffectsCmd(a *app) *cobra.Command {
	var f gemFlags
	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the effect table with eligibility in the given state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.state()
			if err != nil {
				return err
			}
			b, err := f.budget(cmd, a.settings)
			if err != nil {
				return err
			}
			c := a.settings.Catalog
			eligible := c.EligibleWeights(s, b.Attempts)
			var total float64
			for _, w := range eligible {
				total += w
			}

			rows := make([][]string, 0, len(c))
			for i, e := range c {
				share := "-"
				if eligible[i] > 0 && total > 0 {
					share = fmt.Sprintf("%.2f%%", 100*eligible[i]/total)
				}
				rows = append(rows, []string{
					string(e.ID),
					i18n.EffectLabel(a.printer, e, s),
					strconv.FormatFloat(e.Weight, 'f', 2, 64),
					share,
				})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(mutedStyle).
				Headers("id", "effect", "weight", "share").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					if row >= 0 && row < len(eligible) && eligible[row] == 0 {
						return cellStyle.Foreground(colorMuted)
					}
					return cellStyle
				})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
	f.register(cmd)
	return cmd
}
