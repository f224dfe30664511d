// Copyright Draftwise Labs, 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/pkg/types"
)

// AnthropicCompleter implements Completer using the official SDK.
type AnthropicCompleter struct {
	client sdk.Client
	model  string
}

// NewAnthropic creates a Completer backed by the Anthropic Messages API.
func NewAnthropic(cfg types.CompletionConfig) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
	}
}

// Complete issues one Messages call and returns the concatenated text
// blocks of the reply. Upstream failures wrap ErrUnavailable without
// masking the cause.
func (c *AnthropicCompleter) Complete(ctx context.Context, req Request) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: req.MaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := b.String()
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUnavailable)
	}

	zap.L().Debug("completion",
		zap.String("model", c.model),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return text, nil
}
