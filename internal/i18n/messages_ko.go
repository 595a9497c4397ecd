package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Korean

	message.SetString(lang, "category.offense_a", "공격형 A")
	message.SetString(lang, "category.offense_b", "공격형 B")
	message.SetString(lang, "category.support_a", "서포트형 A")
	message.SetString(lang, "category.support_b", "서포트형 B")

	message.SetString(lang, "effect.we_plus", "의지력 효율 +%d")
	message.SetString(lang, "effect.we_minus", "의지력 효율 -1")
	message.SetString(lang, "effect.pt_plus", "포인트 +%d")
	message.SetString(lang, "effect.pt_minus", "포인트 -1")
	message.SetString(lang, "effect.name_plus", "%s Lv. +%d")
	message.SetString(lang, "effect.name_minus", "%s Lv. -1")
	message.SetString(lang, "effect.name1_change", "첫번째 효과 변경")
	message.SetString(lang, "effect.name2_change", "두번째 효과 변경")
	message.SetString(lang, "effect.cost_up", "가공 비용 +100%% 증가")
	message.SetString(lang, "effect.cost_down", "가공 비용 -100%% 감소")
	message.SetString(lang, "effect.hold", "가공 상태 유지")
	message.SetString(lang, "effect.redraw_gain", "다른 항목 보기 +%d회")

	message.SetString(lang, "report.title", "젬 가공 확률")
	message.SetString(lang, "report.goal", "목표")
	message.SetString(lang, "report.roll_now", "지금 가공")
	message.SetString(lang, "report.redraw_now", "지금 가공 효과 변경")
	message.SetString(lang, "report.from_scratch", "새 후보 기준")
	message.SetString(lang, "report.fresh_gem", "새 젬")
	message.SetString(lang, "report.cost_current", "기대 골드 (현재 젬)")
	message.SetString(lang, "report.cost_new", "기대 골드 (새 젬)")
	message.SetString(lang, "report.advice", "추천")
	message.SetString(lang, "report.gold", "%d 골드")
	message.SetString(lang, "report.unreachable", "달성 불가")

	message.SetString(lang, "advice.roll", "지금은 가공 버튼을 누르는 편이 더 유리합니다.")
	message.SetString(lang, "advice.reroll", "지금은 가공 효과 변경을 사용하는 편이 더 유리합니다.")
	message.SetString(lang, "advice.stop", "현재 젬의 기대 비용이 새 젬보다 높습니다. 가공을 중단하실 것을 추천합니다.")
}
