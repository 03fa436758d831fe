package keyword

import "strings"

// stopwords contains Korean words excluded from keyword ranking.
var stopwords = toSet(
	// particles and function words
	"이", "가", "을", "를", "은", "는", "의", "와", "과", "도", "로", "으로",
	"에서", "에게", "께", "그리고", "그러나", "그래서", "그런데", "하지만", "그러면",
	"그래도", "또는", "혹은", "및", "때문", "때문에", "정도", "경우", "다음", "동안",
	// pronouns and demonstratives
	"그", "그것", "이것", "저것", "거기", "여기", "저기", "그런", "이런", "저런",
	"그렇게", "이렇게", "저렇게", "우리", "저희", "너희", "나는", "내가", "제가",
	"당신", "자기", "누구", "무엇", "뭔가", "어디", "언제", "어떻게", "왜냐하면",
	// intensifiers and fillers
	"잘", "좀", "더", "매우", "너무", "정말", "진짜", "그냥", "아주", "완전", "엄청",
	"되게", "조금", "많이", "약간", "제일", "가장", "아마", "역시", "그냥저냥", "막",
	"이제", "다시", "계속", "자꾸", "혹시", "사실", "아무", "모두", "전부", "다들",
	// temporal deictics
	"오늘", "어제", "내일", "모레", "그제", "지금", "아까", "요즘", "최근", "방금",
	"이번", "저번", "지난", "다음날", "아침", "점심", "저녁", "오전", "오후", "새벽",
	"하루", "주말", "평일", "올해", "작년", "내년", "나중", "항상", "가끔", "매일",
	// generic diary nouns that carry no topic
	"기분", "느낌", "생각", "마음", "하루종일", "얘기", "이야기", "것들", "거의",
	// common verb and adjective forms
	"한", "한다", "하다", "했다", "해서", "하고", "하는", "하면", "했어", "해요",
	"되는", "되다", "된다", "됐다", "있다", "있는", "있어", "있고", "없다", "없는",
	"없어", "같다", "같은", "같아", "같이", "좋다", "좋은", "좋아", "좋아요", "싫다",
	"싫은", "싫어", "나쁜", "나빠", "예쁜", "예뻐", "많은", "많다", "적은", "작은",
	"크다", "큰", "새로운", "이런저런", "그랬다", "그래", "아니", "아니다", "아닌",
	"갔다", "왔다", "봤다", "먹었다", "갔는데", "왔는데", "봤는데", "보고", "가서",
	"와서", "먹고", "싶다", "싶어", "싶은", "않다", "않은", "않아", "못했다",
)

// predicateEndings mark inflected verbs and adjectives that the closed list
// above cannot enumerate.
var predicateEndings = []string{
	"는데", "는다", "습니다", "어요", "아요", "해요", "예요", "에요", "세요",
	"지만", "면서", "니까", "으니", "려고", "어서", "아서", "하다", "했다", "된다",
	"겠다", "싶다", "하게", "스럽다", "스러운", "롭다", "로운",
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// isPredicate reports whether token looks like an inflected verb or
// adjective. A syllable with a ㅆ final (갔, 봤, 했, 있) only occurs in verb
// stems and tense markers.
func isPredicate(token string) bool {
	for _, r := range token {
		if jong, ok := finalConsonant(r); ok && jong == jongSsang {
			return true
		}
	}
	for _, ending := range predicateEndings {
		if strings.HasSuffix(token, ending) && token != ending {
			return true
		}
	}
	return false
}
