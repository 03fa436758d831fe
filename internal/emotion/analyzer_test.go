package emotion

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/easeaico/voice-diary/internal/config"
	"github.com/easeaico/voice-diary/internal/keyword"
)

const sevenNouns = "바다 모래 하늘 구름 갈매기 등대 소나무"

func TestAnalyzeWithoutCapabilityUsesLocalPath(t *testing.T) {
	a := NewAnalyzer(nil, nil)

	got := a.Analyze(context.Background(), sevenNouns)
	if got.Emotion != LabelUnknown {
		t.Fatalf("expected sentinel emotion, got %s", got.Emotion)
	}
	want := []string{"바다", "모래", "하늘", "구름", "갈매기"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Fatalf("expected local keywords capped at 5, got %v", got.Keywords)
	}
}

func TestAnalyzeDelegatesToClassifier(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"놀람","keywords":["성북동","아기고양이"]}`}
	a := NewAnalyzer(NewClassifier(staticFactory(llm), ClassifierOptions{}), nil)

	got := a.Analyze(context.Background(), diaryEntry)
	if got.Emotion != LabelSurprise || !reflect.DeepEqual(got.Keywords, []string{"성북동", "아기고양이"}) {
		t.Fatalf("unexpected result: %#v", got)
	}
	if llm.callCount() != 1 {
		t.Fatalf("expected one model call, got %d", llm.callCount())
	}
}

func TestAnalyzeFailureHasSameShapeAsUnconfigured(t *testing.T) {
	failing := NewAnalyzer(NewClassifier(staticFactory(&fakeLLM{err: errors.New("503")}), ClassifierOptions{}), nil)
	local := NewAnalyzer(nil, nil)

	for _, text := range []string{diaryEntry, sevenNouns} {
		a := failing.Analyze(context.Background(), text)
		b := local.Analyze(context.Background(), text)
		if a.Emotion != LabelUnknown || b.Emotion != LabelUnknown {
			t.Fatalf("expected sentinel on both paths, got %s and %s", a.Emotion, b.Emotion)
		}
		if a.Keywords == nil || b.Keywords == nil {
			t.Fatalf("keywords must always be populated")
		}
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"기쁨","keywords":["x"]}`}
	for _, a := range []*Analyzer{
		NewAnalyzer(nil, nil),
		NewAnalyzer(NewClassifier(staticFactory(llm), ClassifierOptions{}), nil),
		nil,
	} {
		got := a.Analyze(context.Background(), "")
		if got.Emotion != LabelUnknown || got.Keywords == nil || len(got.Keywords) != 0 {
			t.Fatalf("unexpected empty transcript result: %#v", got)
		}
	}
	if llm.callCount() != 0 {
		t.Fatalf("expected no model call for empty transcript")
	}
}

func TestAnalyzeTopicFilterOnLocalPath(t *testing.T) {
	a := NewAnalyzer(nil, keyword.NewTopicSet("아기고양이"))
	got := a.Analyze(context.Background(), diaryEntry)
	if !reflect.DeepEqual(got.Keywords, []string{"아기고양이"}) {
		t.Fatalf("unexpected filtered keywords: %v", got.Keywords)
	}
}

func TestNewAnalyzerFromConfigWithoutCredential(t *testing.T) {
	a := NewAnalyzerFromConfig(config.Config{
		LLM:    config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-3.5-turbo"},
		Topics: []string{"성북동"},
	})
	if a.classifier != nil {
		t.Fatalf("expected no classifier without a credential")
	}
	got := a.Analyze(context.Background(), diaryEntry)
	if !reflect.DeepEqual(got.Keywords, []string{"성북동"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestNewAnalyzerFromConfigWithCredential(t *testing.T) {
	a := NewAnalyzerFromConfig(config.Config{
		LLM: config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-3.5-turbo", APIKey: "sk-test"},
	})
	if a.classifier == nil {
		t.Fatalf("expected classifier when a credential is configured")
	}
}
