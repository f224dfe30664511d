// Copyright Draftwise Labs, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/draftwise/evidence-engine/internal/evidence"
	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Extract and rank supporting evidence from a source document",
	Long: `Evidence reads a source document, extracts statistics and quotes from it,
scores each one for relevance against the draft, and reports the candidates
that clear the relevance threshold together with usage recommendations.

The draft may be given inline or as a path to a text file. Sources may be
plain text, Markdown, JSON, or CSV.`,
	RunE: runEvidence,
}

func runEvidence(cmd *cobra.Command, args []string) error {
	userText, err := readDraft(cmd)
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		return fmt.Errorf("source is empty: provide a document with --source")
	}

	if cfg.Completion.APIKey == "" {
		return fmt.Errorf("no Anthropic API key: set completion.api_key or .secrets/anthropic-api-key")
	}

	opts := evidence.DefaultOptions()
	opts.RelevanceThreshold = cfg.Evidence.RelevanceThreshold
	if cfg.Evidence.MaxStatistics > 0 {
		opts.MaxStats = cfg.Evidence.MaxStatistics
	}
	if cfg.Evidence.MaxQuotes > 0 {
		opts.MaxQuotes = cfg.Evidence.MaxQuotes
	}
	if v, _ := cmd.Flags().GetFloat64("threshold"); cmd.Flags().Changed("threshold") {
		opts.RelevanceThreshold = v
	}
	if v, _ := cmd.Flags().GetInt("max-stats"); cmd.Flags().Changed("max-stats") {
		opts.MaxStats = v
	}
	if v, _ := cmd.Flags().GetInt("max-quotes"); cmd.Flags().Changed("max-quotes") {
		opts.MaxQuotes = v
	}

	pipeline := evidence.NewPipeline(llm.NewAnthropic(cfg.Completion), cfg.Evidence)
	result, err := pipeline.ExtractEvidence(context.Background(), userText, source, opts)
	if err != nil {
		return err
	}

	return formatEvidenceOutput(cmd, result)
}

func formatEvidenceOutput(cmd *cobra.Command, result *types.EvidenceResult) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(result)
	}

	if result.Message != "" {
		fmt.Println(result.Message)
	}

	printKind := func(header string, items []types.ScoredEvidence) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("\n%s\n%s\n", header, strings.Repeat("-", len(header)))
		for i, item := range items {
			fmt.Printf("%d. [%.2f] %s\n", i+1, item.RelevanceScore, item.Text)
			if item.RelevanceReason != "" {
				fmt.Printf("   %s\n", item.RelevanceReason)
			}
		}
	}
	printKind("Statistics", result.Statistics)
	printKind("Quotes", result.Quotes)

	if result.Recommendations != "" {
		fmt.Printf("\nRecommendations\n---------------\n%s\n", result.Recommendations)
	}
	fmt.Printf("\n%s: %d candidates found, %d retained\n",
		result.SourceInfo.Filename,
		result.SourceInfo.CandidatesFound,
		result.SourceInfo.CandidatesRetained)
	return nil
}

func init() {
	evidenceCmd.Flags().String("draft", "", "draft text or path to a draft file")
	evidenceCmd.Flags().String("source", "", "source document to mine for evidence")
	evidenceCmd.Flags().Float64("threshold", 0.6, "minimum relevance score to retain a candidate")
	evidenceCmd.Flags().Int("max-stats", 5, "maximum statistics to retain")
	evidenceCmd.Flags().Int("max-quotes", 5, "maximum quotes to retain")
	evidenceCmd.Flags().Bool("json", false, "output results as JSON")
	evidenceCmd.Flags().Bool("yaml", false, "output results as YAML")
	evidenceCmd.MarkFlagRequired("draft")
	evidenceCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(evidenceCmd)
}
