package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	// MaxModelKeywords caps keywords accepted from a model response.
	MaxModelKeywords = 3
	minKeywordLength = 2
)

// ErrMalformedResponse reports model output that does not carry the annotation shape.
var ErrMalformedResponse = errors.New("malformed model response")

// AnnotationOutput is the structured response from the annotation model.
type AnnotationOutput struct {
	Emotion  string   `json:"emotion"`
	Keywords []string `json:"keywords"`
	// EmptyKeywords is set when the model supplied no usable keywords.
	EmptyKeywords bool `json:"-"`
}

var annotationSchemaDef = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"emotion": {Type: "string"},
		"keywords": {
			Type:  "array",
			Items: &jsonschema.Schema{Type: "string"},
		},
	},
	Required: []string{"emotion"},
}

var annotationSchema = mustResolve(annotationSchemaDef)

func mustResolve(schema *jsonschema.Schema) *jsonschema.Resolved {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("invalid annotation schema: %v", err))
	}
	return resolved
}

// ParseAnnotationOutput extracts and validates structured annotation output.
func ParseAnnotationOutput(raw string) (AnnotationOutput, error) {
	clean := StripCodeFence(raw)

	var instance any
	if err := json.Unmarshal([]byte(clean), &instance); err != nil {
		return AnnotationOutput{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return AnnotationOutput{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}
	// a null keyword list counts as absent
	if kws, present := object["keywords"]; present && kws == nil {
		delete(object, "keywords")
	}
	if err := annotationSchema.Validate(object); err != nil {
		return AnnotationOutput{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var output AnnotationOutput
	if err := json.Unmarshal([]byte(clean), &output); err != nil {
		return AnnotationOutput{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	output.Emotion = strings.TrimSpace(output.Emotion)
	keywords := make([]string, 0, MaxModelKeywords)
	seen := make(map[string]struct{}, MaxModelKeywords)
	for _, kw := range output.Keywords {
		if len(keywords) == MaxModelKeywords {
			break
		}
		kw = strings.TrimSpace(kw)
		if utf8.RuneCountInString(kw) < minKeywordLength {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}
	output.Keywords = keywords
	output.EmptyKeywords = len(keywords) == 0

	return output, nil
}

// StripCodeFence returns the interior of a markdown code fence, dropping the
// fence markers and an optional language tag. Unfenced text is returned as is.
func StripCodeFence(raw string) string {
	clean := strings.TrimSpace(raw)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}

	body := strings.TrimPrefix(clean, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && isFenceInfo(body[:nl]) {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func isFenceInfo(line string) bool {
	return !strings.ContainsAny(line, "{}[]\"")
}
