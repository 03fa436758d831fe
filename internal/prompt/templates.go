package prompt

import (
	"text/template"
)

const systemInstructionText = `당신은 음성 일기 분석 전문가입니다. 반드시 JSON 형식으로만 답변합니다.`

const promptTemplateText = `다음은 사용자가 음성으로 남긴 일기를 받아 적은 텍스트입니다:

"{{.Transcript}}"

【감정 분류】
텍스트의 전체적인 감정을 다음 중 정확히 하나로 분류하세요: {{join .Emotions ", "}}
{{- range .Triggers}}
- {{.Label}}: {{join .Words ", "}} 같은 표현이 있으면 선택
{{- end}}
- 어느 감정에도 해당하지 않거나 판단하기 어려우면 "{{.Unknown}}"을 선택

【키워드 규칙】
1. 명사만 추출합니다 (장소, 사람, 사물, 음식, 활동).
2. 시간 표현(오늘, 어제, 지금, 아침 등)은 제외합니다.
3. 동사와 형용사(갔다, 봤다, 좋았다, 행복한 등)는 제외합니다.
4. 조사를 뗀 형태로 적습니다 (성북동에 → 성북동).
5. 최대 {{.MaxKeywords}}개, 중요한 순서대로 적습니다.

【예시】
{{- range .Examples}}
입력: "{{.Input}}"
출력: {{.Output}}
{{- end}}

반드시 다음 JSON 형식으로만 답변하세요:
{"emotion": "감정", "keywords": ["키워드1", "키워드2", "키워드3"]}`

var promptTemplate = template.Must(template.New("annotation").Funcs(template.FuncMap{
	"join": join,
}).Parse(promptTemplateText))

type trigger struct {
	Label string
	Words []string
}

type example struct {
	Input  string
	Output string
}

var triggers = []trigger{
	{Label: "기쁨", Words: []string{"행복", "좋았다", "즐거웠다", "뿌듯", "감사"}},
	{Label: "화남", Words: []string{"짜증", "화가 났다", "열받", "억울"}},
	{Label: "슬픔", Words: []string{"슬펐다", "우울", "외로웠다", "속상", "눈물"}},
	{Label: "평온", Words: []string{"평범", "무난", "차분", "그저 그랬다"}},
	{Label: "놀람", Words: []string{"깜짝", "놀랐다", "당황", "황당"}},
	{Label: "신남", Words: []string{"신났다", "설렜다", "기대", "두근"}},
}

var examples = []example{
	{
		Input:  "오늘 성북동에 갔는데 아기고양이를 봤다 기분이 좋아졌다",
		Output: `{"emotion": "기쁨", "keywords": ["성북동", "아기고양이"]}`,
	},
	{
		Input:  "점심에 돈까스를 먹었는데 너무 맛있어서 행복했다",
		Output: `{"emotion": "기쁨", "keywords": ["돈까스"]}`,
	},
	{
		Input:  "회사에서 팀장님한테 혼나서 하루 종일 속상했다",
		Output: `{"emotion": "슬픔", "keywords": ["회사", "팀장님"]}`,
	},
	{
		Input:  "내일 친구들이랑 제주도 여행 간다 너무 설렌다",
		Output: `{"emotion": "신남", "keywords": ["친구", "제주도", "여행"]}`,
	},
}
