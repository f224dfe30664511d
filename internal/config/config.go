// Copyright Draftwise Labs, 2026. All rights reserved.

// Package config loads the tool configuration from file, environment, and
// defaults, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/draftwise/evidence-engine/internal/secrets"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// Load reads configuration from evidence-engine.yaml (optional, searched in
// the working directory), the EVIDENCE_* environment, and defaults.
func Load(cfgFile string) (*types.Config, error) {
	v := viper.New()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("evidence-engine")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("EVIDENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("completion.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("evidence.max_source_chars", 8000)
	v.SetDefault("evidence.relevance_threshold", 0.6)
	v.SetDefault("evidence.max_statistics", 5)
	v.SetDefault("evidence.max_quotes", 5)
	v.SetDefault("evidence.scoring_concurrency", 8)
	v.SetDefault("research.timeout", "30s")
	v.SetDefault("research.user_agent", "evidence-engine/0.1")
	v.SetDefault("research.max_topics", 2)
	v.SetDefault("research.enable_arxiv", true)
	v.SetDefault("research.enable_semantic_scholar", true)
	v.SetDefault("research.enable_openalex", true)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", ".cache/search.db")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless explicitly named)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ApplySecrets fills credential fields that the config file left empty from
// the secrets map. File and environment values win over key files.
func ApplySecrets(cfg *types.Config, s map[string]string) {
	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = s[secrets.KeyAnthropic]
	}
	if cfg.Research.SemanticScholarAPIKey == "" {
		cfg.Research.SemanticScholarAPIKey = s[secrets.KeySemanticScholar]
	}
	if cfg.Research.OpenAlexEmail == "" {
		cfg.Research.OpenAlexEmail = s[secrets.KeyOpenAlexEmail]
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg types.LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
