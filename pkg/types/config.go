// Copyright Draftwise Labs, 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout for search providers. The
	// completion API is not subject to this timeout; its calls run to
	// completion or error.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with provider requests
	// (e.g. "evidence-engine/0.1").
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// CompletionConfig holds settings for the text-completion capability.
type CompletionConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey authenticates against the completion API. Required; the
	// pipeline aborts without it.
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// EvidenceConfig holds settings for the evidence pipeline.
type EvidenceConfig struct {
	// MaxSourceChars bounds the source prefix sent to the extractor
	// (default 8000). Longer documents are silently truncated.
	MaxSourceChars int `yaml:"max_source_chars" mapstructure:"max_source_chars"`

	// RelevanceThreshold is the minimum score a candidate must reach to be
	// retained (default 0.6). Caller-overridable per request.
	RelevanceThreshold float64 `yaml:"relevance_threshold" mapstructure:"relevance_threshold"`

	// MaxStatistics and MaxQuotes cap the retained candidates per kind (default 5).
	MaxStatistics int `yaml:"max_statistics" mapstructure:"max_statistics"`
	MaxQuotes     int `yaml:"max_quotes" mapstructure:"max_quotes"`

	// ScoringConcurrency bounds the number of in-flight relevance scoring
	// calls (default 8).
	ScoringConcurrency int `yaml:"scoring_concurrency" mapstructure:"scoring_concurrency"`
}

// ResearchConfig holds settings for the research aggregator.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxTopics caps how many extracted topics are fanned out to the
	// providers (default 2). A latency/cost knob, not a correctness one.
	MaxTopics int `yaml:"max_topics" mapstructure:"max_topics"`

	// EnableArxiv, EnableSemanticScholar, and EnableOpenAlex toggle the
	// individual providers.
	EnableArxiv           bool `yaml:"enable_arxiv" mapstructure:"enable_arxiv"`
	EnableSemanticScholar bool `yaml:"enable_semantic_scholar" mapstructure:"enable_semantic_scholar"`
	EnableOpenAlex        bool `yaml:"enable_openalex" mapstructure:"enable_openalex"`

	// SemanticScholarAPIKey raises Semantic Scholar rate limits (optional).
	SemanticScholarAPIKey string `yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`
}

// CacheConfig holds settings for the optional search response cache.
// The cache is time-bounded and keyed by provider + normalized query, so
// repeated identical lookups within the TTL skip the network.
type CacheConfig struct {
	// Enabled turns the cache on. Off by default.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ".cache/search.db").
	Path string `yaml:"path" mapstructure:"path"`

	// TTL is how long a cached response stays valid (default 24h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `yaml:"format" mapstructure:"format"`
}

// Config groups all component configurations.
type Config struct {
	Completion CompletionConfig `yaml:"completion" mapstructure:"completion"`
	Evidence   EvidenceConfig   `yaml:"evidence" mapstructure:"evidence"`
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}
