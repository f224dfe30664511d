// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// neutralIntent is the placeholder returned when intent analysis degrades.
// The pipeline still produces ranked evidence against it.
func neutralIntent() types.UserIntent {
	return types.UserIntent{
		MainArgument:  "Could not determine main argument",
		KeyTopics:     []string{"general topic"},
		EvidenceNeeds: []string{"supporting evidence"},
		Gaps:          []string{"unknown"},
		Audience:      "general",
	}
}

// AnalyzeIntent derives a structured summary of the user's draft: main
// argument, topics, evidence needs, gaps, audience. Any failure, upstream
// or unparsable reply, soft-fails to the neutral placeholder.
func AnalyzeIntent(ctx context.Context, completer llm.Completer, draft string) types.UserIntent {
	prompt, err := render(intentPromptTmpl, struct{ Draft string }{Draft: draft})
	if err != nil {
		zap.L().Warn("intent: rendering prompt", zap.Error(err))
		return neutralIntent()
	}

	reply, err := completer.Complete(ctx, llm.Request{
		System:      intentSystem,
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		zap.L().Warn("intent: completion failed, using neutral intent", zap.Error(err))
		return neutralIntent()
	}

	var intent types.UserIntent
	if err := llm.UnmarshalObject(reply, &intent); err != nil {
		zap.L().Warn("intent: unparsable reply, using neutral intent", zap.Error(err))
		return neutralIntent()
	}

	if strings.TrimSpace(intent.MainArgument) == "" {
		intent.MainArgument = "Could not determine main argument"
	}
	if len(intent.KeyTopics) == 0 {
		intent.KeyTopics = []string{"general topic"}
	}
	if intent.Audience == "" {
		intent.Audience = "general"
	}
	return intent
}
