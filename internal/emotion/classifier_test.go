package emotion

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type fakeLLM struct {
	response string
	err      error
	block    bool

	mu      sync.Mutex
	calls   int
	lastReq *model.LLMRequest
}

func (f *fakeLLM) Name() string {
	return "fake"
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		f.mu.Lock()
		f.calls++
		f.lastReq = req
		f.mu.Unlock()

		if f.block {
			<-ctx.Done()
			yield(nil, ctx.Err())
			return
		}
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(f.response, "model")}, nil)
	}
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func staticFactory(llm model.LLM) ModelFactory {
	return func(ctx context.Context) (model.LLM, error) {
		return llm, nil
	}
}

const diaryEntry = "오늘 성북동에 갔는데 아기고양이를 봤다 기분이 좋아졌다"

func TestClassifySuccess(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"행복","keywords":["돈까스","친구","학교","집"]}`}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{})

	got := c.Classify(context.Background(), "점심에 친구랑 돈까스를 먹었다")
	if got.Emotion != LabelJoy {
		t.Fatalf("expected joy, got %s", got.Emotion)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"돈까스", "친구", "학교"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}
}

func TestClassifyFencedResponse(t *testing.T) {
	llm := &fakeLLM{response: "```json\n{\"emotion\":\"너무 외로워요\",\"keywords\":[\"자취방\"]}\n```"}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{})

	got := c.Classify(context.Background(), "자취방에 혼자 있었다")
	if got.Emotion != LabelSadness || !reflect.DeepEqual(got.Keywords, []string{"자취방"}) {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestClassifyEmptyKeywordsUsesLocalExtraction(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"기쁨","keywords":[]}`}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{})

	got := c.Classify(context.Background(), diaryEntry)
	if got.Emotion != LabelJoy {
		t.Fatalf("expected model emotion to be kept, got %s", got.Emotion)
	}
	if !reflect.DeepEqual(got.Keywords, []string{"성북동", "아기고양이"}) {
		t.Fatalf("unexpected local keywords: %v", got.Keywords)
	}
}

func TestClassifyFallbacks(t *testing.T) {
	cases := []struct {
		name string
		llm  *fakeLLM
	}{
		{name: "transport", llm: &fakeLLM{err: errors.New("connection refused")}},
		{name: "prose", llm: &fakeLLM{response: "오늘 하루는 기쁨으로 가득했네요!"}},
		{name: "wrong shape", llm: &fakeLLM{response: `{"mood":"기쁨"}`}},
		{name: "empty", llm: &fakeLLM{response: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(staticFactory(tc.llm), ClassifierOptions{})
			got := c.Classify(context.Background(), "바다 모래 하늘 구름 갈매기")
			if got.Emotion != LabelUnknown {
				t.Fatalf("expected sentinel emotion, got %s", got.Emotion)
			}
			if !reflect.DeepEqual(got.Keywords, []string{"바다", "모래", "하늘"}) {
				t.Fatalf("expected local keywords capped at 3, got %v", got.Keywords)
			}
		})
	}
}

func TestClassifyTimeout(t *testing.T) {
	llm := &fakeLLM{block: true}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := c.Classify(context.Background(), diaryEntry)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
	if got.Emotion != LabelUnknown || len(got.Keywords) != 2 {
		t.Fatalf("unexpected timeout result: %#v", got)
	}
}

func TestClassifyFactoryFailureRetriesNextCall(t *testing.T) {
	var attempts atomic.Int32
	llm := &fakeLLM{response: `{"emotion":"화남","keywords":["회사"]}`}
	factory := func(ctx context.Context) (model.LLM, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("API key is required")
		}
		return llm, nil
	}
	c := NewClassifier(factory, ClassifierOptions{})

	first := c.Classify(context.Background(), "회사에서 짜증났다")
	if first.Emotion != LabelUnknown {
		t.Fatalf("expected fallback on factory failure, got %s", first.Emotion)
	}
	second := c.Classify(context.Background(), "회사에서 짜증났다")
	if second.Emotion != LabelAnger || !reflect.DeepEqual(second.Keywords, []string{"회사"}) {
		t.Fatalf("unexpected second result: %#v", second)
	}
}

func TestClassifyBuildsModelOnce(t *testing.T) {
	var builds atomic.Int32
	llm := &fakeLLM{response: `{"emotion":"신남","keywords":["여행"]}`}
	factory := func(ctx context.Context) (model.LLM, error) {
		builds.Add(1)
		time.Sleep(5 * time.Millisecond)
		return llm, nil
	}
	c := NewClassifier(factory, ClassifierOptions{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Classify(context.Background(), "제주도 여행"); got.Emotion != LabelExcitement {
				t.Errorf("unexpected emotion: %s", got.Emotion)
			}
		}()
	}
	wg.Wait()

	if builds.Load() != 1 {
		t.Fatalf("expected a single model build, got %d", builds.Load())
	}
	if llm.callCount() != 16 {
		t.Fatalf("expected 16 model calls, got %d", llm.callCount())
	}
}

func TestClassifyEmptyTranscriptSkipsModel(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"기쁨","keywords":["x"]}`}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{})

	got := c.Classify(context.Background(), "  ")
	if got.Emotion != LabelUnknown || got.Keywords == nil || len(got.Keywords) != 0 {
		t.Fatalf("unexpected empty transcript result: %#v", got)
	}
	if llm.callCount() != 0 {
		t.Fatalf("expected no model call, got %d", llm.callCount())
	}
}

func TestClassifyRequestShape(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"기쁨","keywords":["성북동"]}`}
	c := NewClassifier(staticFactory(llm), ClassifierOptions{})
	c.Classify(context.Background(), diaryEntry)

	req := llm.lastReq
	if req == nil || req.Config == nil {
		t.Fatalf("expected a request with config")
	}
	if req.Config.Temperature == nil || *req.Config.Temperature != float32(0.3) {
		t.Fatalf("unexpected temperature: %v", req.Config.Temperature)
	}
	if req.Config.MaxOutputTokens != 200 {
		t.Fatalf("unexpected max tokens: %d", req.Config.MaxOutputTokens)
	}
	if req.Config.ResponseMIMEType != "application/json" {
		t.Fatalf("unexpected mime type: %s", req.Config.ResponseMIMEType)
	}
	if req.Config.SystemInstruction == nil {
		t.Fatalf("expected system instruction")
	}
	if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, diaryEntry) {
		t.Fatalf("expected transcript in user content")
	}
}

func TestClassifyZeroTemperature(t *testing.T) {
	llm := &fakeLLM{response: `{"emotion":"기쁨","keywords":["성북동"]}`}
	zero := 0.0
	c := NewClassifier(staticFactory(llm), ClassifierOptions{Temperature: &zero})
	c.Classify(context.Background(), diaryEntry)

	req := llm.lastReq
	if req == nil || req.Config == nil || req.Config.Temperature == nil {
		t.Fatalf("expected a request with temperature")
	}
	if *req.Config.Temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", *req.Config.Temperature)
	}
}
