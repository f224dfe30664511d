// Copyright Draftwise Labs, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftwise/evidence-engine/internal/cache"
	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/internal/research"
	"github.com/draftwise/evidence-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Find scholarly papers related to a draft",
	Long: `Research derives search topics from the draft and queries arXiv, Semantic
Scholar, and OpenAlex for matching papers. Results are deduplicated across
sources by DOI and title.

With --enhanced, each paper is additionally rated 1-10 for relevance to the
draft and the list is re-sorted by that rating. With --csl, results are
written as a CSL-YAML bibliography consumable by Pandoc.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	userText, err := readDraft(cmd)
	if err != nil {
		return err
	}
	if cfg.Completion.APIKey == "" {
		return fmt.Errorf("no Anthropic API key: set completion.api_key or .secrets/anthropic-api-key")
	}

	backends := research.NewBackends(cfg.Research)
	if len(backends) == 0 {
		return fmt.Errorf("all search providers are disabled in config")
	}

	var searchCache *cache.Cache
	if cfg.Cache.Enabled {
		searchCache, err = cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			zap.L().Warn("research: cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer searchCache.Close()
		}
	}

	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	enhanced, _ := cmd.Flags().GetBool("enhanced")

	agg := research.NewAggregator(llm.NewAnthropic(cfg.Completion), backends, searchCache, cfg.Research.MaxTopics)
	papers, err := agg.FindRelevantResearch(context.Background(), userText, research.SearchOptions{
		MaxPapers: maxPapers,
		Enhanced:  enhanced,
	})
	if err != nil {
		return err
	}

	return formatResearchOutput(cmd, papers, enhanced)
}

func formatResearchOutput(cmd *cobra.Command, papers []types.ResearchPaper, enhanced bool) error {
	if cslOut, _ := cmd.Flags().GetBool("csl"); cslOut {
		return research.FormatCSL(papers, os.Stdout)
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	for i, p := range papers {
		fmt.Printf("%d. %s\n", i+1, p.Title)
		if len(p.Authors) > 0 {
			fmt.Printf("   %s\n", strings.Join(p.Authors, ", "))
		}
		if !p.Published.IsZero() {
			fmt.Printf("   Published %s via %s\n", p.Published.Format("2006-01-02"), p.Source)
		} else {
			fmt.Printf("   Via %s\n", p.Source)
		}
		if p.URL != "" {
			fmt.Printf("   %s\n", p.URL)
		}
		if enhanced {
			fmt.Printf("   Relevance %.0f/10: %s\n", p.RelevanceScore, p.RelevanceAnalysis)
		}
		fmt.Println()
	}
	return nil
}

func init() {
	researchCmd.Flags().String("draft", "", "draft text or path to a draft file")
	researchCmd.Flags().Int("max-papers", 3, "maximum papers to return")
	researchCmd.Flags().Bool("enhanced", false, "rate each paper's relevance with the model")
	researchCmd.Flags().Bool("json", false, "output results as JSON")
	researchCmd.Flags().Bool("csl", false, "output results as a CSL-YAML bibliography")
	researchCmd.MarkFlagRequired("draft")

	rootCmd.AddCommand(researchCmd)
}
