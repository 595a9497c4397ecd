package i18n

import (
	"strings"

	"github.com/xtding233/gemcalc/internal/gem"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.Korean,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// ResolveTag picks the closest supported tag for a user supplied value such
// as "ko", "ko-KR" or "en_US". Unknown values fall back to English.
func ResolveTag(value string) language.Tag {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return Default()
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default()
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return supportedTags[idx]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// CategoryLabel is the display name of a slot category.
func CategoryLabel(p *message.Printer, c gem.Category) string {
	return p.Sprintf("category." + c.String())
}

// EffectLabel renders an effect the way it appears on the processing
// screen. Named effects show the category their slot currently holds.
func EffectLabel(p *message.Printer, e gem.Effect, s gem.State) string {
	switch e.Kind {
	case gem.WEPlus:
		return p.Sprintf("effect.we_plus", e.Tier)
	case gem.WEMinus:
		return p.Sprintf("effect.we_minus")
	case gem.PTPlus:
		return p.Sprintf("effect.pt_plus", e.Tier)
	case gem.PTMinus:
		return p.Sprintf("effect.pt_minus")
	case gem.Name1Plus:
		return p.Sprintf("effect.name_plus", CategoryLabel(p, s.Name1Category()), e.Tier)
	case gem.Name2Plus:
		return p.Sprintf("effect.name_plus", CategoryLabel(p, s.Name2Category()), e.Tier)
	case gem.Name1Minus:
		return p.Sprintf("effect.name_minus", CategoryLabel(p, s.Name1Category()))
	case gem.Name2Minus:
		return p.Sprintf("effect.name_minus", CategoryLabel(p, s.Name2Category()))
	case gem.Name1Change:
		return p.Sprintf("effect.name1_change")
	case gem.Name2Change:
		return p.Sprintf("effect.name2_change")
	case gem.CostUp:
		return p.Sprintf("effect.cost_up")
	case gem.CostDown:
		return p.Sprintf("effect.cost_down")
	case gem.Hold:
		return p.Sprintf("effect.hold")
	case gem.RedrawGain:
		return p.Sprintf("effect.redraw_gain", e.Amount)
	}
	return string(e.ID)
}
