// Copyright Draftwise Labs, 2026. All rights reserved.

// Package types holds the value objects shared across the evidence and
// research pipelines. Every entity here is request-scoped: constructed
// fresh per pipeline invocation, never persisted, owned by the caller
// once returned.
package types

// EvidenceKind categorizes an evidence candidate.
type EvidenceKind string

const (
	KindStatistic EvidenceKind = "statistic"
	KindQuote     EvidenceKind = "quote"
)

// EvidenceCandidate is a statistic or quote lifted from a secondary source
// document, not yet scored. Immutable once created.
type EvidenceCandidate struct {
	// Text is the exact extracted statement or figure.
	Text string `json:"text" yaml:"text"`

	// Context is the surrounding prose (2-3 sentences, or a character
	// window for pattern-extracted candidates).
	Context string `json:"context" yaml:"context"`

	// Source names where the candidate came from: a speaker or cited
	// origin when the extractor identified one, or an extractor label
	// ("Pattern extraction", "Quotation marks") otherwise.
	Source string `json:"source" yaml:"source"`

	// Position is the approximate location in the document
	// (e.g. "beginning", "middle", "paragraph 4").
	Position string `json:"position" yaml:"position"`

	// Kind is statistic or quote.
	Kind EvidenceKind `json:"kind" yaml:"kind"`
}

// ScoredEvidence is an EvidenceCandidate enriched with a relevance rating
// against the user's draft. A failed scoring call yields the neutral score
// 0.5, never zero: absence of signal is not low relevance.
type ScoredEvidence struct {
	EvidenceCandidate `yaml:",inline"`

	// RelevanceScore is in [0, 1].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// RelevanceReason is a one-sentence justification for the score.
	RelevanceReason string `json:"relevance_reason" yaml:"relevance_reason"`
}

// UserIntent is a structured summary of the user's draft, derived once per
// request and consumed read-only by the scorer and recommender.
type UserIntent struct {
	// MainArgument is the draft's central claim.
	MainArgument string `json:"main_argument" yaml:"main_argument"`

	// KeyTopics lists the subjects the draft covers.
	KeyTopics []string `json:"key_topics" yaml:"key_topics"`

	// EvidenceNeeds lists the kinds of support the argument would benefit from.
	EvidenceNeeds []string `json:"evidence_needs" yaml:"evidence_needs"`

	// Gaps lists weaknesses or unsupported claims in the draft.
	Gaps []string `json:"gaps" yaml:"gaps"`

	// Audience describes who the draft appears to be written for.
	Audience string `json:"audience" yaml:"audience"`
}

// SourceInfo describes the secondary document a result was built from.
type SourceInfo struct {
	// Filename is the document's base name.
	Filename string `json:"filename" yaml:"filename"`

	// CandidatesFound counts all candidates the extractor produced.
	CandidatesFound int `json:"candidates_found" yaml:"candidates_found"`

	// CandidatesRetained counts candidates that survived filtering.
	CandidatesRetained int `json:"candidates_retained" yaml:"candidates_retained"`
}

// EvidenceResult is the terminal artifact of the evidence pipeline.
type EvidenceResult struct {
	// UserContext is the intent summary the candidates were scored against.
	UserContext UserIntent `json:"user_context" yaml:"user_context"`

	// Statistics holds the retained statistic candidates, best first.
	Statistics []ScoredEvidence `json:"statistics" yaml:"statistics"`

	// Quotes holds the retained quote candidates, best first.
	Quotes []ScoredEvidence `json:"quotes" yaml:"quotes"`

	// SourceInfo describes the document the evidence came from.
	SourceInfo SourceInfo `json:"source_info" yaml:"source_info"`

	// Recommendations is free-text guidance on integrating the evidence.
	Recommendations string `json:"recommendations" yaml:"recommendations"`

	// Message is set when the pipeline short-circuited (e.g. the source
	// contained no extractable candidates). Empty on the normal path.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
