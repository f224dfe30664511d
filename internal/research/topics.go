// Copyright Draftwise Labs, 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"unicode"

	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/llm"
)

// maxFallbackTopics caps the keyword-derived topic list.
const maxFallbackTopics = 5

const topicsSystem = `You derive scholarly search topics from a writer's draft. Respond with a single JSON array of strings and no text outside it.`

// topicsPromptTmpl asks the model for 3-5 academic search topics.
var topicsPromptTmpl = template.Must(template.New("topics").Parse(`Read the following draft and produce 3-5 search topics suitable for querying academic paper indexes. Each topic is a short phrase (2-5 words) naming a research area the draft touches.

Respond with a JSON array of strings only.

Example response:
["user interface accessibility", "dark mode usability", "visual ergonomics"]

Draft:
{{.Draft}}
`))

// fallbackKeywords is the static vocabulary matched against the draft when
// topic extraction degrades.
var fallbackKeywords = []string{
	"artificial intelligence", "machine learning", "climate change",
	"public health", "mental health", "education", "economics",
	"social media", "privacy", "security", "accessibility",
	"sustainability", "productivity", "remote work", "healthcare",
	"energy", "transportation", "nutrition", "psychology", "technology",
}

// ExtractTopics derives scholarly search topics from the draft via one
// completion call. On any failure it soft-fails to keyword matching
// against a static vocabulary plus a capitalized-word heuristic, capped at
// five terms.
func ExtractTopics(ctx context.Context, completer llm.Completer, draft string) []string {
	var buf bytes.Buffer
	if err := topicsPromptTmpl.Execute(&buf, struct{ Draft string }{Draft: draft}); err != nil {
		zap.L().Warn("topics: rendering prompt", zap.Error(err))
		return fallbackTopics(draft)
	}

	reply, err := completer.Complete(ctx, llm.Request{
		System:      topicsSystem,
		Prompt:      buf.String(),
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		zap.L().Warn("topics: completion failed, using keyword fallback", zap.Error(err))
		return fallbackTopics(draft)
	}

	var topics []string
	if err := llm.UnmarshalArray(reply, &topics); err != nil {
		zap.L().Warn("topics: unparsable reply, using keyword fallback", zap.Error(err))
		return fallbackTopics(draft)
	}

	cleaned := topics[:0]
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return fallbackTopics(draft)
	}
	return cleaned
}

// fallbackTopics matches the static vocabulary case-insensitively against
// the draft, then adds capitalized words as a heuristic for proper-noun
// subjects. Any English input of reasonable length yields at least one term.
func fallbackTopics(draft string) []string {
	lower := strings.ToLower(draft)
	var topics []string
	seen := make(map[string]bool)

	add := func(t string) {
		key := strings.ToLower(t)
		if !seen[key] && len(topics) < maxFallbackTopics {
			seen[key] = true
			topics = append(topics, t)
		}
	}

	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			add(kw)
		}
	}

	for _, word := range strings.Fields(draft) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) > 3 && unicode.IsUpper([]rune(word)[0]) {
			add(word)
		}
	}

	// Last resort so the caller always has something to search.
	if len(topics) == 0 {
		for _, word := range strings.Fields(draft) {
			if len(word) > 4 {
				add(word)
			}
		}
	}
	return topics
}
