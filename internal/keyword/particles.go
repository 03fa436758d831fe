package keyword

import (
	"strings"
	"unicode/utf8"
)

const (
	hangulFirst = '가'
	hangulLast  = '힣'

	// final consonant indexes inside a precomposed syllable
	jongNone   = 0
	jongRieul  = 8
	jongSsang  = 20
	jongsCount = 28
)

// attach limits a particle to stems ending in a particular sound.
type attach int

const (
	attachAny attach = iota
	// attachBatchim: previous syllable ends in a consonant (을, 은, 이, 과).
	attachBatchim
	// attachVowel: previous syllable ends in a vowel (를, 는, 가, 와).
	attachVowel
	// attachVowelOrRieul: vowel or ㄹ final, the 로 allomorph.
	attachVowelOrRieul
)

type particle struct {
	suffix string
	attach attach
	// stacks marks particles that may sit on top of another particle
	// (에서부터, 한테까지, 에서의, 에서는), so stripping continues after them.
	stacks bool
	// terminalOnly particles are too ambiguous with noun-final syllables
	// (고양이, 아이) to be stripped anywhere but the very end of the token.
	terminalOnly bool
}

// particles is ordered longest first; stripping takes the first match.
var particles = []particle{
	{suffix: "에게서", attach: attachAny},
	{suffix: "으로", attach: attachBatchim},
	{suffix: "이랑", attach: attachBatchim},
	{suffix: "에서", attach: attachAny},
	{suffix: "에게", attach: attachAny},
	{suffix: "한테", attach: attachAny},
	{suffix: "께서", attach: attachAny},
	{suffix: "까지", attach: attachAny, stacks: true},
	{suffix: "부터", attach: attachAny, stacks: true},
	{suffix: "보다", attach: attachAny, stacks: true},
	{suffix: "처럼", attach: attachAny, stacks: true},
	{suffix: "만큼", attach: attachAny, stacks: true},
	{suffix: "조차", attach: attachAny, stacks: true},
	{suffix: "마저", attach: attachAny, stacks: true},
	{suffix: "은", attach: attachBatchim, stacks: true},
	{suffix: "는", attach: attachVowel, stacks: true},
	{suffix: "도", attach: attachAny, stacks: true},
	{suffix: "만", attach: attachAny, stacks: true},
	{suffix: "을", attach: attachBatchim},
	{suffix: "를", attach: attachVowel},
	{suffix: "이", attach: attachBatchim, terminalOnly: true},
	{suffix: "가", attach: attachVowel, terminalOnly: true},
	{suffix: "과", attach: attachBatchim},
	{suffix: "와", attach: attachVowel},
	{suffix: "랑", attach: attachVowel},
	{suffix: "로", attach: attachVowelOrRieul},
	{suffix: "의", attach: attachAny, stacks: true},
	{suffix: "에", attach: attachAny},
	{suffix: "께", attach: attachAny},
}

// nounStems end in a syllable that doubles as a particle or verb ending.
var nounStems = []string{
	"고양이", "떡볶이", "호랑이", "원숭이", "달팽이", "부엉이", "올챙이", "어린이",
	"놀이", "목걸이", "귀걸이", "먹이", "길이", "높이", "깊이", "넓이",
	"휴가", "작가", "화가", "평가", "물가", "요가", "대가",
	// 지-final nouns, which otherwise read as the 지만 connective
	"강아지", "송아지", "망아지", "아버지", "할아버지", "편지", "바지", "돼지",
	"휴지", "잡지", "가지", "거지", "의지", "종지",
}

func isNounStem(token string) bool {
	for _, stem := range nounStems {
		if strings.HasSuffix(token, stem) {
			return true
		}
	}
	return false
}

// stripParticles removes trailing particles, repeating while the particle just
// removed can stack on another one. It reports false when the stem left
// behind is shorter than two syllables. Below the outermost particle a
// one-syllable match that would leave a one-syllable stem (도로의) is taken as
// part of the noun instead.
func stripParticles(token string) (string, bool) {
	terminal := true
	for {
		p, ok := matchParticle(token, terminal)
		if !ok {
			break
		}
		stem := token[:len(token)-len(p.suffix)]
		if utf8.RuneCountInString(stem) < 2 {
			if terminal || utf8.RuneCountInString(p.suffix) > 1 {
				return "", false
			}
			break
		}
		token = stem
		if !p.stacks {
			break
		}
		terminal = false
	}
	return token, true
}

func matchParticle(token string, terminal bool) (particle, bool) {
	for _, p := range particles {
		if p.terminalOnly && (!terminal || isNounStem(token)) {
			continue
		}
		if len(token) <= len(p.suffix) || token[len(token)-len(p.suffix):] != p.suffix {
			continue
		}
		prev, _ := utf8.DecodeLastRuneInString(token[:len(token)-len(p.suffix)])
		if attaches(prev, p.attach) {
			return p, true
		}
	}
	return particle{}, false
}

func attaches(prev rune, a attach) bool {
	jong, ok := finalConsonant(prev)
	if !ok {
		return a == attachAny
	}
	switch a {
	case attachBatchim:
		return jong != jongNone
	case attachVowel:
		return jong == jongNone
	case attachVowelOrRieul:
		return jong == jongNone || jong == jongRieul
	default:
		return true
	}
}

func finalConsonant(r rune) (int, bool) {
	if !isHangulSyllable(r) {
		return 0, false
	}
	return int(r-hangulFirst) % jongsCount, true
}

func isHangulSyllable(r rune) bool {
	return r >= hangulFirst && r <= hangulLast
}
