package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xtding233/gemcalc/internal/gem"
	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	assert.Equal(t, language.English, ResolveTag(""))
	assert.Equal(t, language.English, ResolveTag("en_US"))
	assert.Equal(t, language.Korean, ResolveTag("ko-KR"))
	assert.Equal(t, language.Korean, ResolveTag(" ko "))
	assert.Equal(t, language.English, ResolveTag("not a tag!"))
}

func TestEffectLabel(t *testing.T) {
	en := Printer(language.English)
	s := gem.State{WE: 1, PT: 1, O1: 1, O2: 1, Swap: true, Slot1: gem.OffenseA, Slot2: gem.SupportB}
	c := gem.DefaultCatalog()

	label := func(id gem.EffectID) string {
		e, _, err := c.Lookup(id)
		assert.NoError(t, err)
		return EffectLabel(en, e, s)
	}
	assert.Equal(t, "Willpower efficiency +3", label("WE+3"))
	assert.Equal(t, "Points -1", label("PT-1"))
	// swapped: the first named effect is slot 2
	assert.Equal(t, "Support B Lv. +2", label("O1+2"))
	assert.Equal(t, "Offense A Lv. -1", label("O2-1"))
	assert.Equal(t, "Processing cost +100%", label("COST+100"))
	assert.Equal(t, "View other options +2", label("REROLL+2"))

	ko := Printer(language.Korean)
	e, _, _ := c.Lookup("WE+1")
	assert.Equal(t, "의지력 효율 +1", EffectLabel(ko, e, s))
	assert.Equal(t, "공격형 A", CategoryLabel(ko, gem.OffenseA))
}

func TestEveryKeyTranslated(t *testing.T) {
	en, ko := Printer(language.English), Printer(language.Korean)
	for _, c := range gem.Categories {
		assert.NotEqual(t, CategoryLabel(en, c), CategoryLabel(ko, c), c.String())
	}
	s := gem.FreshState()
	for _, e := range gem.DefaultCatalog() {
		assert.NotEqual(t, EffectLabel(en, e, s), EffectLabel(ko, e, s), string(e.ID))
	}
}
