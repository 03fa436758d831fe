package emotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/voice-diary/internal/keyword"
	"github.com/easeaico/voice-diary/internal/prompt"
	"github.com/easeaico/voice-diary/internal/utils"
)

const (
	defaultTimeout         = 15 * time.Second
	defaultMaxOutputTokens = 200
	defaultTemperature     = 0.3
)

// ModelFactory builds the completion model on first use.
type ModelFactory func(ctx context.Context) (model.LLM, error)

// ClassifierOptions tunes the model-assisted path.
type ClassifierOptions struct {
	Timeout         time.Duration
	MaxOutputTokens int
	// Temperature defaults to 0.3 when nil; zero is a valid setting.
	Temperature *float64
	// Topics restricts keywords produced by the local fallback.
	Topics keyword.TopicSet
}

// Classifier annotates transcripts with the completion model and degrades to
// local keyword extraction whenever the model cannot be used.
type Classifier struct {
	handle      *modelHandle
	builder     *prompt.Builder
	topics      keyword.TopicSet
	timeout     time.Duration
	maxTokens   int32
	temperature float32
}

// NewClassifier returns a Classifier that builds its model lazily with factory.
func NewClassifier(factory ModelFactory, opts ClassifierOptions) *Classifier {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = defaultMaxOutputTokens
	}
	temperature := defaultTemperature
	if opts.Temperature != nil && *opts.Temperature >= 0 {
		temperature = *opts.Temperature
	}

	names := make([]string, 0, len(Labels))
	for _, label := range Labels {
		names = append(names, label.Display())
	}

	return &Classifier{
		handle:      &modelHandle{factory: factory},
		builder:     prompt.NewBuilder(names, LabelUnknown.Display(), keyword.ModelPathLimit),
		topics:      opts.Topics,
		timeout:     opts.Timeout,
		maxTokens:   int32(opts.MaxOutputTokens),
		temperature: float32(temperature),
	}
}

// Classify returns the emotion and keywords for transcript. It never fails.
func (c *Classifier) Classify(ctx context.Context, transcript string) Result {
	if strings.TrimSpace(transcript) == "" {
		return unknownResult([]string{})
	}

	output, err := c.complete(ctx, transcript)
	if err != nil {
		slog.Warn("emotion classification fell back to local keywords",
			"reason", failureKind(err), "error", err.Error())
		return unknownResult(c.localKeywords(transcript))
	}

	keywords := output.Keywords
	if output.EmptyKeywords {
		slog.Debug("model returned no keywords, using local extraction")
		keywords = c.localKeywords(transcript)
	}
	return Result{
		Emotion:  MapLabel(output.Emotion),
		Keywords: keywords,
	}
}

func (c *Classifier) localKeywords(transcript string) []string {
	return keyword.Extract(transcript, keyword.ModelPathLimit, c.topics)
}

type completion struct {
	text string
	err  error
}

func (c *Classifier) complete(ctx context.Context, transcript string) (utils.AnnotationOutput, error) {
	llm, err := c.handle.get(ctx)
	if err != nil {
		return utils.AnnotationOutput{}, err
	}

	system, contents, err := c.builder.Build(transcript)
	if err != nil {
		return utils.AnnotationOutput{}, err
	}

	temperature := c.temperature
	req := &model.LLMRequest{
		Contents: contents,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: system,
			Temperature:       &temperature,
			MaxOutputTokens:   c.maxTokens,
			ResponseMIMEType:  "application/json",
			ResponseSchema:    annotationResponseSchema(),
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// buffered so a model that ignores ctx cannot leak the goroutine forever
	done := make(chan completion, 1)
	go func() {
		text, err := generateText(ctx, llm, req)
		done <- completion{text: text, err: err}
	}()

	var result completion
	select {
	case result = <-done:
	case <-ctx.Done():
		return utils.AnnotationOutput{}, fmt.Errorf("%w: %w", ErrTransportFailure, ctx.Err())
	}
	if result.err != nil {
		return utils.AnnotationOutput{}, fmt.Errorf("%w: %w", ErrTransportFailure, result.err)
	}

	return utils.ParseAnnotationOutput(result.text)
}

func generateText(ctx context.Context, llm model.LLM, req *model.LLMRequest) (string, error) {
	var resp *model.LLMResponse
	var err error
	seq := llm.GenerateContent(ctx, req, false)
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("empty model response")
	}
	return utils.ExtractContentText(resp.Content), nil
}

func annotationResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"emotion": {
				Type: genai.TypeString,
			},
			"keywords": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"emotion", "keywords"},
	}
}

// modelHandle owns the lazily built completion model. Concurrent first
// calls serialise on mu, so the factory runs once per successful build.
type modelHandle struct {
	mu      sync.Mutex
	llm     model.LLM
	factory ModelFactory
}

func (h *modelHandle) get(ctx context.Context) (model.LLM, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.llm != nil {
		return h.llm, nil
	}
	if h.factory == nil {
		return nil, ErrCredentialMissing
	}

	llm, err := h.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialMissing, err)
	}
	if llm == nil {
		return nil, fmt.Errorf("%w: model factory returned nil", ErrCredentialMissing)
	}
	h.llm = llm
	return llm, nil
}
