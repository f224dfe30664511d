// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"context"

	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// noEvidenceGuidance is returned without a completion call when nothing
// survived filtering.
const noEvidenceGuidance = "No sufficiently relevant statistics or quotes were found in this source. Try a source document that covers your topic more directly, or lower the relevance threshold."

// Recommend produces free-text guidance on integrating the retained
// evidence into the draft. With nothing retained it returns fixed guidance
// and skips the completion call entirely; a failed call soft-fails to the
// same fixed guidance.
func Recommend(ctx context.Context, completer llm.Completer, draft string, stats, quotes []types.ScoredEvidence) string {
	items := make([]types.ScoredEvidence, 0, len(stats)+len(quotes))
	items = append(items, stats...)
	items = append(items, quotes...)
	if len(items) == 0 {
		return noEvidenceGuidance
	}

	prompt, err := render(recommendationPromptTmpl, struct {
		Draft string
		Items []types.ScoredEvidence
	}{Draft: draft, Items: items})
	if err != nil {
		zap.L().Warn("recommend: rendering prompt", zap.Error(err))
		return noEvidenceGuidance
	}

	reply, err := completer.Complete(ctx, llm.Request{
		System:      recommendationSystem,
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.4,
	})
	if err != nil {
		zap.L().Warn("recommend: completion failed, using fixed guidance", zap.Error(err))
		return noEvidenceGuidance
	}
	return reply
}
