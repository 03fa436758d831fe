// Package emotion annotates diary transcripts with an emotion label and
// ranked keywords.
package emotion

import (
	"context"
	"log/slog"

	"google.golang.org/adk/model"

	"github.com/easeaico/voice-diary/internal/config"
	"github.com/easeaico/voice-diary/internal/keyword"
	"github.com/easeaico/voice-diary/internal/models"
)

// Analyzer decides whether the model-assisted path is available at all.
type Analyzer struct {
	classifier *Classifier
	topics     keyword.TopicSet
}

// NewAnalyzer returns an Analyzer. A nil classifier means no completion
// capability is configured and every call takes the local path.
func NewAnalyzer(classifier *Classifier, topics keyword.TopicSet) *Analyzer {
	return &Analyzer{classifier: classifier, topics: topics}
}

// NewAnalyzerFromConfig wires the configured provider, if it has a credential.
func NewAnalyzerFromConfig(cfg config.Config) *Analyzer {
	topics := keyword.NewTopicSet(cfg.Topics...)
	if !cfg.LLM.HasCredential() {
		slog.Info("no completion credential configured, using local keyword extraction", "provider", cfg.LLM.Provider)
		return NewAnalyzer(nil, topics)
	}

	llmCfg := cfg.LLM
	temperature := llmCfg.Temperature
	factory := func(ctx context.Context) (model.LLM, error) {
		return models.NewModel(ctx, llmCfg)
	}
	classifier := NewClassifier(factory, ClassifierOptions{
		Timeout:         llmCfg.Timeout,
		MaxOutputTokens: llmCfg.MaxOutputTokens,
		Temperature:     &temperature,
		Topics:          topics,
	})
	return NewAnalyzer(classifier, topics)
}

// Analyze returns the annotation for transcript. It never fails; a degraded
// result carries LabelUnknown.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) Result {
	if a == nil || a.classifier == nil {
		var topics keyword.TopicSet
		if a != nil {
			topics = a.topics
		}
		return unknownResult(keyword.Extract(transcript, keyword.LocalPathLimit, topics))
	}
	return a.classifier.Classify(ctx, transcript)
}
