// Package keyword extracts ranked Korean noun keywords from transcripts
// without any network dependency.
package keyword

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// ModelPathLimit caps keywords on the model-assisted path.
	ModelPathLimit = 3
	// LocalPathLimit caps keywords when no completion capability is configured.
	LocalPathLimit = 5

	minTokenLength = 2
)

// TopicSet restricts extracted keywords to a known vocabulary.
// A nil or empty set applies no restriction.
type TopicSet map[string]struct{}

// NewTopicSet builds a TopicSet from topics, ignoring blanks.
func NewTopicSet(topics ...string) TopicSet {
	if len(topics) == 0 {
		return nil
	}
	set := make(TopicSet, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// Contains reports whether token is allowed by the set.
func (s TopicSet) Contains(token string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[token]
	return ok
}

// Extract returns up to limit keywords from text, ranked by frequency and
// then by first occurrence. limit <= 0 means no cap. The result is never nil.
func Extract(text string, limit int, topics TopicSet) []string {
	counts := make(map[string]int)
	var order []string

	for _, raw := range hangulRuns(text) {
		if isStopword(raw) {
			continue
		}
		token, ok := stripParticles(raw)
		if !ok || isStopword(token) || isPredicate(token) {
			continue
		}
		// a predicate ending can also be a noun plus particle (강아지만)
		if isPredicate(raw) && !isNounStem(token) {
			continue
		}
		if !topics.Contains(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// order is already first-occurrence order, so a stable sort keeps ties in place.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}

// hangulRuns splits text into runs of Hangul syllables at least two long.
func hangulRuns(text string) []string {
	runs := strings.FieldsFunc(text, func(r rune) bool {
		return !isHangulSyllable(r)
	})
	tokens := runs[:0]
	for _, run := range runs {
		if utf8.RuneCountInString(run) >= minTokenLength {
			tokens = append(tokens, run)
		}
	}
	return tokens
}
