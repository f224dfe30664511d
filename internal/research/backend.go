// Copyright Draftwise Labs, 2026. All rights reserved.

// Package research finds scholarly papers relevant to a user's draft. It
// derives search topics from the draft, fans the topics out to three
// academic index providers, deduplicates the combined results, and
// optionally re-scores each paper's domain relevance.
package research

import (
	"context"
	"net/http"

	"github.com/draftwise/evidence-engine/pkg/types"
)

// Backend searches a single academic index provider. Each provider
// (arXiv, Semantic Scholar, OpenAlex) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.ResearchPaper, error)
}

// NewBackends builds the enabled providers from config. The shared client
// carries the provider-level timeout; the completion API is deliberately
// not subject to it.
func NewBackends(cfg types.ResearchConfig) []Backend {
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []Backend
	if cfg.EnableArxiv {
		backends = append(backends, &ArxivBackend{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableSemanticScholar {
		backends = append(backends, &SemanticScholarBackend{
			Client:    client,
			UserAgent: cfg.UserAgent,
			APIKey:    cfg.SemanticScholarAPIKey,
		})
	}
	if cfg.EnableOpenAlex {
		backends = append(backends, &OpenAlexBackend{
			Client:    client,
			UserAgent: cfg.UserAgent,
			Email:     cfg.OpenAlexEmail,
		})
	}
	return backends
}
