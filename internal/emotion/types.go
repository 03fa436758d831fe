package emotion

// Label is a diary emotion from a closed taxonomy.
type Label string

const (
	LabelJoy        Label = "Joy"
	LabelAnger      Label = "Anger"
	LabelSadness    Label = "Sadness"
	LabelNeutral    Label = "Neutral"
	LabelSurprise   Label = "Surprise"
	LabelExcitement Label = "Excitement"

	// LabelUnknown is returned whenever the real emotion cannot be determined.
	LabelUnknown = LabelSurprise
)

// Labels lists the taxonomy in display order.
var Labels = []Label{LabelJoy, LabelAnger, LabelSadness, LabelNeutral, LabelSurprise, LabelExcitement}

var displayNames = map[Label]string{
	LabelJoy:        "기쁨",
	LabelAnger:      "화남",
	LabelSadness:    "슬픔",
	LabelNeutral:    "평온",
	LabelSurprise:   "놀람",
	LabelExcitement: "신남",
}

// Display returns the canonical Korean name stored alongside diary records.
func (l Label) Display() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return displayNames[LabelUnknown]
}

// Result is the annotation produced for one transcript.
type Result struct {
	Emotion  Label
	Keywords []string
}

func unknownResult(keywords []string) Result {
	return Result{Emotion: LabelUnknown, Keywords: keywords}
}
