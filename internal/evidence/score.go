// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// defaultScoringConcurrency bounds in-flight relevance calls.
const defaultScoringConcurrency = 8

// neutralScore is substituted when a candidate's scoring call fails.
// Absence of signal is never represented as zero relevance.
const neutralScore = 0.5

const neutralReason = "Could not determine relevance"

// scoreReply mirrors the JSON shape requested from the model.
type scoreReply struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// ScoreCandidates rates every candidate against the user's intent with
// independent, concurrently issued completion calls. Results are
// reassembled by candidate index, so completion order is irrelevant. A
// single failed call degrades only its own candidate to the neutral score
// and never aborts siblings.
func ScoreCandidates(ctx context.Context, completer llm.Completer, candidates []types.EvidenceCandidate, intent types.UserIntent, concurrency int) []types.ScoredEvidence {
	if concurrency <= 0 {
		concurrency = defaultScoringConcurrency
	}

	scored := make([]types.ScoredEvidence, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			scored[i] = scoreOne(gctx, completer, cand, intent)
			return nil
		})
	}
	// Tasks always return nil; failures are absorbed per candidate.
	_ = g.Wait()

	return scored
}

// scoreOne rates one candidate, soft-failing to the neutral score.
func scoreOne(ctx context.Context, completer llm.Completer, cand types.EvidenceCandidate, intent types.UserIntent) types.ScoredEvidence {
	result := types.ScoredEvidence{
		EvidenceCandidate: cand,
		RelevanceScore:    neutralScore,
		RelevanceReason:   neutralReason,
	}

	prompt, err := render(scoringPromptTmpl, struct {
		Argument, Topics, Needs, Kind, Text, Context string
	}{
		Argument: intent.MainArgument,
		Topics:   strings.Join(intent.KeyTopics, ", "),
		Needs:    strings.Join(intent.EvidenceNeeds, ", "),
		Kind:     string(cand.Kind),
		Text:     cand.Text,
		Context:  cand.Context,
	})
	if err != nil {
		zap.L().Warn("score: rendering prompt", zap.Error(err))
		return result
	}

	reply, err := completer.Complete(ctx, llm.Request{
		System:      scoringSystem,
		Prompt:      prompt,
		MaxTokens:   256,
		Temperature: 0.1,
	})
	if err != nil {
		zap.L().Warn("score: completion failed, keeping neutral score",
			zap.String("candidate", cand.Text), zap.Error(err))
		return result
	}

	var sr scoreReply
	if err := llm.UnmarshalObject(reply, &sr); err != nil {
		zap.L().Warn("score: unparsable reply, keeping neutral score",
			zap.String("candidate", cand.Text), zap.Error(err))
		return result
	}

	result.RelevanceScore = clamp01(sr.Score)
	if sr.Reason != "" {
		result.RelevanceReason = sr.Reason
	}
	return result
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
