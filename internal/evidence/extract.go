// Copyright Draftwise Labs, 2026. All rights reserved.

// Package evidence implements the extraction, scoring, ranking, and
// recommendation pipeline over a secondary source document.
package evidence

import (
	"context"

	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// defaultMaxSourceChars bounds the source prefix placed in the extraction
// prompt. Truncation is silent; it is a documented prompt-size limitation,
// not an error.
const defaultMaxSourceChars = 8000

// extractionReply mirrors the JSON shape requested from the model.
type extractionReply struct {
	Statistics []extractionItem `json:"statistics"`
	Quotes     []extractionItem `json:"quotes"`
}

type extractionItem struct {
	Text     string `json:"text"`
	Context  string `json:"context"`
	Source   string `json:"source"`
	Position string `json:"position"`
}

// ExtractCandidates scans the source blob for statistics and quotes via one
// completion call. When the call fails or its reply does not parse, the
// deterministic pattern extractor takes over, so a malformed generative
// reply alone never yields zero candidates if pattern matches exist.
func ExtractCandidates(ctx context.Context, completer llm.Completer, blob string, maxChars int) []types.EvidenceCandidate {
	if maxChars <= 0 {
		maxChars = defaultMaxSourceChars
	}
	if len(blob) > maxChars {
		blob = blob[:maxChars]
	}

	reply, err := generativeExtract(ctx, completer, blob)
	if err != nil {
		zap.L().Warn("extract: generative extraction failed, falling back to patterns", zap.Error(err))
		return patternExtract(blob)
	}

	var candidates []types.EvidenceCandidate
	for _, item := range reply.Statistics {
		if item.Text == "" {
			continue
		}
		candidates = append(candidates, toCandidate(item, types.KindStatistic))
	}
	for _, item := range reply.Quotes {
		if item.Text == "" {
			continue
		}
		candidates = append(candidates, toCandidate(item, types.KindQuote))
	}
	return candidates
}

func generativeExtract(ctx context.Context, completer llm.Completer, blob string) (*extractionReply, error) {
	prompt, err := render(extractionPromptTmpl, struct{ Source string }{Source: blob})
	if err != nil {
		return nil, err
	}

	text, err := completer.Complete(ctx, llm.Request{
		System:      extractionSystem,
		Prompt:      prompt,
		MaxTokens:   4096,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var reply extractionReply
	if err := llm.UnmarshalObject(text, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func toCandidate(item extractionItem, kind types.EvidenceKind) types.EvidenceCandidate {
	return types.EvidenceCandidate{
		Text:     item.Text,
		Context:  item.Context,
		Source:   item.Source,
		Position: item.Position,
		Kind:     kind,
	}
}
