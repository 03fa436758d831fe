package emotion

import (
	"strings"
	"unicode"
)

type stemRule struct {
	label Label
	stems []string
}

// stemRules is evaluated top to bottom. Sadness precedes Joy so that text
// such as "안 좋아서 슬퍼" resolves to Sadness. Neutral has no stems: only an
// exact match yields it, so near misses like 평온함 fall through to Surprise.
var stemRules = []stemRule{
	{label: LabelSadness, stems: []string{"슬프", "슬퍼", "슬픔", "우울", "외로", "서운", "속상", "눈물", "울적", "그리움", "허전", "sad", "lonely", "depress", "unhappy"}},
	{label: LabelJoy, stems: []string{"기쁘", "기뻐", "기쁨", "행복", "즐거", "즐겁", "뿌듯", "만족", "감사", "좋", "happy", "joy", "glad", "pleas"}},
	{label: LabelAnger, stems: []string{"화나", "화남", "화가", "분노", "짜증", "열받", "빡치", "억울", "angry", "anger", "mad", "annoy", "furious"}},
	{label: LabelExcitement, stems: []string{"신나", "신남", "신난", "설레", "설렘", "흥분", "기대", "두근", "excit", "thrill", "eager"}},
	{label: LabelSurprise, stems: []string{"놀라", "놀람", "놀랐", "당황", "깜짝", "황당", "surpris", "shock", "confus", "astonish"}},
}

// MapLabel reconciles a free-form emotion string to the taxonomy. It never
// fails: anything unrecognised maps to LabelUnknown.
func MapLabel(raw string) Label {
	text := strings.ToLower(strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}))
	if text == "" {
		return LabelUnknown
	}

	for _, label := range Labels {
		if text == strings.ToLower(string(label)) || text == label.Display() {
			return label
		}
	}

	for _, rule := range stemRules {
		for _, stem := range rule.stems {
			if strings.Contains(text, stem) {
				return rule.label
			}
		}
	}
	return LabelUnknown
}
