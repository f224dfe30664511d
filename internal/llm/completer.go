// Copyright Draftwise Labs, 2026. All rights reserved.

// Package llm wraps the hosted text-generation capability behind a single
// interface. Every other pipeline component talks to the model through
// Completer; tests supply a mock.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable marks a completion failure caused by the upstream API:
// network error, auth failure, rate limit. Wrapped errors keep the cause;
// callers decide fallback behavior individually.
var ErrUnavailable = errors.New("completion unavailable")

// Request carries one completion call's parameters.
type Request struct {
	// System is the system instruction framing the task.
	System string

	// Prompt is the user content.
	Prompt string

	// MaxTokens bounds the generated output length.
	MaxTokens int64

	// Temperature controls sampling randomness in [0, 1].
	Temperature float64
}

// Completer is the opaque text-generation capability: given a system
// instruction and a user prompt, return generated text. No internal retry
// is performed.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
