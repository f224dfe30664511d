// Copyright Draftwise Labs, 2026. All rights reserved.

// Package main is the entry point for the evidence-engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/config"
	"github.com/draftwise/evidence-engine/internal/secrets"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is populated before any subcommand runs.
var cfg *types.Config

// rootCmd is the base command for the evidence-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "evidence-engine",
	Short: "Find supporting evidence and research for a draft",
	Long: `evidence-engine helps writers back up their drafts. The evidence command
extracts statistics and quotes from a source document and ranks them by
relevance to the draft. The research command finds recent scholarly papers
related to the draft's topics across arXiv, Semantic Scholar, and OpenAlex.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		config.ApplySecrets(c, s)

		if err := config.InitLogger(c.Log); err != nil {
			return err
		}

		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./evidence-engine.yaml)")
}

// readDraft returns the draft text from the --draft flag, reading a file
// when the value names one and treating it as literal text otherwise.
func readDraft(cmd *cobra.Command) (string, error) {
	draft, _ := cmd.Flags().GetString("draft")
	if draft == "" {
		return "", fmt.Errorf("draft is empty: provide text or a file with --draft")
	}
	if info, err := os.Stat(draft); err == nil && !info.IsDir() {
		data, err := os.ReadFile(draft)
		if err != nil {
			return "", fmt.Errorf("reading draft file: %w", err)
		}
		return string(data), nil
	}
	return draft, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
