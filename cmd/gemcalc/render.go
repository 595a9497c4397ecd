package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/xtding233/gemcalc/internal/advisor"
	"github.com/xtding233/gemcalc/internal/gem"
	"github.com/xtding233/gemcalc/internal/i18n"
	"golang.org/x/text/message"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorWarn   = lipgloss.Color("#F4D03F")
	colorGood   = lipgloss.Color("#2CD7C7")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
)

func adviceStyle(a advisor.Advice) lipgloss.Style {
	switch a {
	case advisor.AdviceStop:
		return lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	}
}

func percent(p *message.Printer, v float64) string {
	return p.Sprintf("%.4f%%", v*100)
}

func gold(p *message.Printer, v float64) string {
	if math.IsInf(v, 1) || math.IsNaN(v) {
		return p.Sprintf("report.unreachable")
	}
	return p.Sprintf("report.gold", int64(math.Round(v)))
}

func adviceText(p *message.Printer, a advisor.Advice) string {
	return p.Sprintf("advice." + string(a))
}

// renderReport writes the advise output: one row per goal and the advice box.
func renderReport(w io.Writer, p *message.Printer, rep advisor.Report) error {
	rows := make([][]string, 0, 1+len(rep.Sums))
	for _, g := range append([]advisor.GoalReport{rep.Primary}, rep.Sums...) {
		redraw := "-"
		if g.CanRedraw {
			redraw = percent(p, g.RedrawNow)
		}
		rows = append(rows, []string{
			g.Key,
			percent(p, g.RollNow),
			redraw,
			percent(p, g.FromScratch),
			percent(p, g.FreshGem),
			gold(p, g.CostCurrent),
			gold(p, g.CostNew),
			string(g.Advice),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(
			p.Sprintf("report.goal"),
			p.Sprintf("report.roll_now"),
			p.Sprintf("report.redraw_now"),
			p.Sprintf("report.from_scratch"),
			p.Sprintf("report.fresh_gem"),
			p.Sprintf("report.cost_current"),
			p.Sprintf("report.cost_new"),
			p.Sprintf("report.advice"),
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Sprintf("report.title")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s | attempts=%d tokens=%d locked=%t | %s",
		rep.State, rep.Budget.Attempts, rep.Budget.Tokens, rep.Budget.Locked, rep.Rarity)))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(adviceStyle(rep.Advice()).Render(adviceText(p, rep.Advice()))))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// renderOffer lists the four shown effects with their display labels.
func renderOffer(w io.Writer, p *message.Printer, c gem.Catalog, s gem.State, o gem.Offer) error {
	var b strings.Builder
	for i, id := range o {
		e, _, err := c.Lookup(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%d. %-9s %s\n", i+1, id, i18n.EffectLabel(p, e, s))
	}
	if !o.Distinct() {
		b.WriteString(mutedStyle.Render("(fewer than four effects eligible)"))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
