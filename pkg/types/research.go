// Copyright Draftwise Labs, 2026. All rights reserved.

package types

import "time"

// ResearchPaper is one scholarly work returned by the research aggregator.
// Papers from different providers describing the same work are collapsed by
// DOI and by normalized title; the first-seen entry wins.
type ResearchPaper struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract, possibly empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Published is the publication date; zero when the provider reported none.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// URL is the landing page for the paper.
	URL string `json:"url" yaml:"url"`

	// DOI is the bare DOI (no https://doi.org/ prefix) when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source is the provider that contributed the entry
	// ("arxiv", "semantic_scholar", "openalex").
	Source string `json:"source" yaml:"source"`

	// Subjects lists provider-supplied subject or category labels.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// RelevanceScore is the enhanced-mode 1-10 domain relevance rating.
	// Zero when enhanced scoring did not run.
	RelevanceScore float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`

	// RelevanceAnalysis is the enhanced-mode justification for the score.
	RelevanceAnalysis string `json:"relevance_analysis,omitempty" yaml:"relevance_analysis,omitempty"`

	// PDFURL is a direct link to a full-text PDF when the provider exposes one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}
