package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "category.offense_a", "Offense A")
	message.SetString(lang, "category.offense_b", "Offense B")
	message.SetString(lang, "category.support_a", "Support A")
	message.SetString(lang, "category.support_b", "Support B")

	message.SetString(lang, "effect.we_plus", "Willpower efficiency +%d")
	message.SetString(lang, "effect.we_minus", "Willpower efficiency -1")
	message.SetString(lang, "effect.pt_plus", "Points +%d")
	message.SetString(lang, "effect.pt_minus", "Points -1")
	message.SetString(lang, "effect.name_plus", "%s Lv. +%d")
	message.SetString(lang, "effect.name_minus", "%s Lv. -1")
	message.SetString(lang, "effect.name1_change", "Change first effect")
	message.SetString(lang, "effect.name2_change", "Change second effect")
	message.SetString(lang, "effect.cost_up", "Processing cost +100%%")
	message.SetString(lang, "effect.cost_down", "Processing cost -100%%")
	message.SetString(lang, "effect.hold", "Keep processing state")
	message.SetString(lang, "effect.redraw_gain", "View other options +%d")

	message.SetString(lang, "report.title", "Gem processing odds")
	message.SetString(lang, "report.goal", "Goal")
	message.SetString(lang, "report.roll_now", "Process now")
	message.SetString(lang, "report.redraw_now", "Redraw now")
	message.SetString(lang, "report.from_scratch", "Unseen offer")
	message.SetString(lang, "report.fresh_gem", "Fresh gem")
	message.SetString(lang, "report.cost_current", "Expected gold (this gem)")
	message.SetString(lang, "report.cost_new", "Expected gold (fresh gem)")
	message.SetString(lang, "report.advice", "Advice")
	message.SetString(lang, "report.gold", "%d gold")
	message.SetString(lang, "report.unreachable", "unreachable")

	message.SetString(lang, "advice.roll", "Processing now is the better move.")
	message.SetString(lang, "advice.reroll", "Redrawing the offer is the better move.")
	message.SetString(lang, "advice.stop", "This gem costs more than starting over. Stop processing.")
}
