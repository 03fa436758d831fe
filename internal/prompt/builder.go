// Package prompt assembles the annotation instruction sent to the completion model.
package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Builder assembles the annotation prompt for one transcript.
type Builder struct {
	emotions    []string
	unknown     string
	maxKeywords int
}

// NewBuilder creates a prompt Builder. emotions are the display names the
// model may answer with; unknown is the one to use when it cannot decide.
func NewBuilder(emotions []string, unknown string, maxKeywords int) *Builder {
	if maxKeywords <= 0 {
		maxKeywords = 3
	}
	return &Builder{
		emotions:    emotions,
		unknown:     unknown,
		maxKeywords: maxKeywords,
	}
}

// Build returns the system instruction and the user content for transcript.
func (b *Builder) Build(transcript string) (*genai.Content, []*genai.Content, error) {
	data := struct {
		Transcript  string
		Emotions    []string
		Unknown     string
		Triggers    []trigger
		Examples    []example
		MaxKeywords int
	}{
		Transcript:  sanitizeTranscript(transcript),
		Emotions:    b.emotions,
		Unknown:     b.unknown,
		Triggers:    triggers,
		Examples:    examples,
		MaxKeywords: b.maxKeywords,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return nil, nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	system := genai.NewContentFromText(systemInstructionText, "system")
	user := genai.NewContentFromText(buf.String(), "user")
	return system, []*genai.Content{user}, nil
}

// sanitizeTranscript keeps the transcript from closing the quoted block early.
func sanitizeTranscript(text string) string {
	text = strings.TrimSpace(text)
	return strings.ReplaceAll(text, `"`, `'`)
}

func join(items []string, sep string) string {
	return strings.Join(items, sep)
}
