// Copyright Draftwise Labs, 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/evidence-engine/internal/secrets"
	"github.com/draftwise/evidence-engine/pkg/types"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Evidence.MaxSourceChars)
	assert.Equal(t, 0.6, cfg.Evidence.RelevanceThreshold)
	assert.Equal(t, 5, cfg.Evidence.MaxStatistics)
	assert.Equal(t, 5, cfg.Evidence.MaxQuotes)
	assert.Equal(t, 8, cfg.Evidence.ScoringConcurrency)
	assert.Equal(t, 2, cfg.Research.MaxTopics)
	assert.Equal(t, 30*time.Second, cfg.Research.Timeout)
	assert.True(t, cfg.Research.EnableArxiv)
	assert.True(t, cfg.Research.EnableSemanticScholar)
	assert.True(t, cfg.Research.EnableOpenAlex)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `
evidence:
  relevance_threshold: 0.75
  max_quotes: 3
research:
  enable_openalex: false
cache:
  enabled: true
  ttl: 1h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "evidence-engine.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Evidence.RelevanceThreshold)
	assert.Equal(t, 3, cfg.Evidence.MaxQuotes)
	// Defaults survive partial overrides.
	assert.Equal(t, 5, cfg.Evidence.MaxStatistics)
	assert.False(t, cfg.Research.EnableOpenAlex)
	assert.True(t, cfg.Research.EnableArxiv)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplySecrets(t *testing.T) {
	cfg := &types.Config{}
	cfg.Research.SemanticScholarAPIKey = "from-config"

	ApplySecrets(cfg, map[string]string{
		secrets.KeyAnthropic:       "sk-ant-file",
		secrets.KeySemanticScholar: "sk-s2-file",
		secrets.KeyOpenAlexEmail:   "dev@draftwise.example",
	})

	assert.Equal(t, "sk-ant-file", cfg.Completion.APIKey)
	// Config value wins over the key file.
	assert.Equal(t, "from-config", cfg.Research.SemanticScholarAPIKey)
	assert.Equal(t, "dev@draftwise.example", cfg.Research.OpenAlexEmail)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}
