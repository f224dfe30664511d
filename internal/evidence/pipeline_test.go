// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// completerFunc adapts a function to llm.Completer. Tests route on the
// system instruction to answer each pipeline stage differently.
type completerFunc func(ctx context.Context, req llm.Request) (string, error)

func (f completerFunc) Complete(ctx context.Context, req llm.Request) (string, error) {
	return f(ctx, req)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- intent ---

func TestAnalyzeIntentParsesReply(t *testing.T) {
	c := completerFunc(func(_ context.Context, req llm.Request) (string, error) {
		return `{"main_argument": "Dark mode aids accessibility.", "key_topics": ["accessibility"], "evidence_needs": ["usage statistics"], "gaps": [], "audience": "designers"}`, nil
	})
	intent := AnalyzeIntent(context.Background(), c, "I'm writing about UI accessibility preferences.")
	if intent.MainArgument != "Dark mode aids accessibility." {
		t.Errorf("main argument = %q", intent.MainArgument)
	}
	if intent.Audience != "designers" {
		t.Errorf("audience = %q", intent.Audience)
	}
}

func TestAnalyzeIntentSoftFails(t *testing.T) {
	tests := []struct {
		name string
		c    completerFunc
	}{
		{"completion error", func(_ context.Context, _ llm.Request) (string, error) {
			return "", errors.New("rate limited")
		}},
		{"unparsable reply", func(_ context.Context, _ llm.Request) (string, error) {
			return "I'd be happy to analyze this draft for you!", nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := AnalyzeIntent(context.Background(), tt.c, "some draft")
			if intent.MainArgument != "Could not determine main argument" {
				t.Errorf("main argument = %q, want neutral placeholder", intent.MainArgument)
			}
			if intent.Audience != "general" {
				t.Errorf("audience = %q, want general", intent.Audience)
			}
		})
	}
}

// --- extraction ---

func TestExtractCandidatesGenerative(t *testing.T) {
	c := completerFunc(func(_ context.Context, req llm.Request) (string, error) {
		return `{"statistics": [{"text": "75% of users prefer dark mode", "context": "Studies show 75% of users prefer dark mode.", "source": "usability study", "position": "beginning"}], "quotes": []}`, nil
	})
	got := ExtractCandidates(context.Background(), c, "Studies show 75% of users prefer dark mode.", 0)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if got[0].Kind != types.KindStatistic || got[0].Source != "usability study" {
		t.Errorf("unexpected candidate: %+v", got[0])
	}
}

func TestExtractCandidatesFallbackOnUnparsableReply(t *testing.T) {
	c := completerFunc(func(_ context.Context, _ llm.Request) (string, error) {
		return "Here are some thoughts about the document, with no JSON at all.", nil
	})
	got := ExtractCandidates(context.Background(), c, "In total, 42% of respondents agreed with the finding.", 0)
	if len(got) == 0 {
		t.Fatal("fallback extractor yielded no candidates despite a pattern match")
	}
	if got[0].Source != "Pattern extraction" {
		t.Errorf("source = %q, want Pattern extraction", got[0].Source)
	}
}

func TestExtractCandidatesTruncatesSource(t *testing.T) {
	var seen string
	c := completerFunc(func(_ context.Context, req llm.Request) (string, error) {
		seen = req.Prompt
		return `{"statistics": [], "quotes": []}`, nil
	})
	blob := strings.Repeat("x", 500) + " 99% of the tail is cut "
	ExtractCandidates(context.Background(), c, blob, 200)
	if strings.Contains(seen, "99%") {
		t.Error("source was not truncated to the configured prefix")
	}
}

// --- scoring ---

func TestScoreCandidatesIsolatesFailures(t *testing.T) {
	candidates := []types.EvidenceCandidate{
		{Text: "alpha", Kind: types.KindStatistic},
		{Text: "broken", Kind: types.KindStatistic},
		{Text: "gamma", Kind: types.KindQuote},
	}
	c := completerFunc(func(_ context.Context, req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "broken") {
			return "", errors.New("connection reset")
		}
		return `{"score": 0.8, "reason": "on topic"}`, nil
	})

	scored := ScoreCandidates(context.Background(), c, candidates, neutralIntent(), 2)
	if len(scored) != len(candidates) {
		t.Fatalf("scored = %d, want %d (failure must not drop siblings)", len(scored), len(candidates))
	}
	for i, s := range scored {
		if s.Text != candidates[i].Text {
			t.Errorf("order broken at %d: %q", i, s.Text)
		}
	}
	if scored[1].RelevanceScore != 0.5 || scored[1].RelevanceReason != "Could not determine relevance" {
		t.Errorf("failed candidate = %+v, want neutral default", scored[1])
	}
	if scored[0].RelevanceScore != 0.8 || scored[2].RelevanceScore != 0.8 {
		t.Errorf("siblings affected: %v", scored)
	}
}

func TestScoreCandidatesClampsRange(t *testing.T) {
	c := completerFunc(func(_ context.Context, _ llm.Request) (string, error) {
		return `{"score": 3.7, "reason": "enthusiastic model"}`, nil
	})
	scored := ScoreCandidates(context.Background(), c, []types.EvidenceCandidate{{Text: "x"}}, neutralIntent(), 1)
	if scored[0].RelevanceScore != 1.0 {
		t.Errorf("score = %f, want clamped to 1.0", scored[0].RelevanceScore)
	}
}

// --- recommendation ---

func TestRecommendShortCircuitsWhenEmpty(t *testing.T) {
	var calls atomic.Int32
	c := completerFunc(func(_ context.Context, _ llm.Request) (string, error) {
		calls.Add(1)
		return "should not be called", nil
	})
	got := Recommend(context.Background(), c, "draft", nil, nil)
	if got != noEvidenceGuidance {
		t.Errorf("guidance = %q", got)
	}
	if calls.Load() != 0 {
		t.Errorf("completion called %d times for empty evidence", calls.Load())
	}
}

// --- full pipeline ---

// scenarioCompleter answers each stage by its system instruction.
func scenarioCompleter(scoreCalls *atomic.Int32) completerFunc {
	return func(_ context.Context, req llm.Request) (string, error) {
		switch req.System {
		case intentSystem:
			return `{"main_argument": "UI accessibility matters.", "key_topics": ["accessibility", "dark mode"], "evidence_needs": ["usage data"], "gaps": [], "audience": "product teams"}`, nil
		case extractionSystem:
			return `{"statistics": [{"text": "75% of users prefer dark mode", "context": "Studies show 75% of users prefer dark mode.", "source": "", "position": "beginning"}], "quotes": []}`, nil
		case scoringSystem:
			if scoreCalls != nil {
				scoreCalls.Add(1)
			}
			return `{"score": 0.85, "reason": "directly about dark mode preferences"}`, nil
		case recommendationSystem:
			return "Open your second paragraph with the 75% figure.", nil
		}
		return "", errors.New("unexpected call")
	}
}

func TestPipelineDarkModeScenario(t *testing.T) {
	var scoreCalls atomic.Int32
	p := NewPipeline(scenarioCompleter(&scoreCalls), types.EvidenceConfig{})
	src := writeSource(t, "study.txt", "Studies show 75% of users prefer dark mode.")

	result, err := p.ExtractEvidence(context.Background(),
		"I'm writing about UI accessibility preferences.", src,
		Options{RelevanceThreshold: 0.2, MaxStats: 5, MaxQuotes: 5})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Statistics) != 1 {
		t.Fatalf("statistics = %d, want 1", len(result.Statistics))
	}
	if result.Statistics[0].RelevanceScore < 0.2 {
		t.Errorf("score = %f, below threshold", result.Statistics[0].RelevanceScore)
	}
	if result.Message != "" {
		t.Errorf("message should be empty on the normal path, got %q", result.Message)
	}
	if result.SourceInfo.CandidatesFound != 1 || result.SourceInfo.CandidatesRetained != 1 {
		t.Errorf("source info = %+v", result.SourceInfo)
	}
	if scoreCalls.Load() != 1 {
		t.Errorf("score calls = %d, want 1", scoreCalls.Load())
	}
}

func TestPipelineEmptySourceShortCircuits(t *testing.T) {
	var scoreCalls atomic.Int32
	c := completerFunc(func(_ context.Context, req llm.Request) (string, error) {
		switch req.System {
		case intentSystem:
			return `{"main_argument": "something", "key_topics": ["t"], "evidence_needs": [], "gaps": [], "audience": "general"}`, nil
		case extractionSystem:
			return `{"statistics": [], "quotes": []}`, nil
		case scoringSystem:
			scoreCalls.Add(1)
			return `{"score": 1.0, "reason": ""}`, nil
		}
		return "", errors.New("unexpected call")
	})

	p := NewPipeline(c, types.EvidenceConfig{})
	src := writeSource(t, "empty.txt", "")

	result, err := p.ExtractEvidence(context.Background(), "my draft text", src, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if result.Message == "" || !strings.Contains(result.Message, "No statistics or quotes were found") {
		t.Errorf("message = %q", result.Message)
	}
	if len(result.Statistics) != 0 || len(result.Quotes) != 0 {
		t.Errorf("expected empty evidence lists, got %d/%d", len(result.Statistics), len(result.Quotes))
	}
	if scoreCalls.Load() != 0 {
		t.Errorf("scorer called %d times for an empty source", scoreCalls.Load())
	}
}

func TestPipelineEmptyUserTextFatal(t *testing.T) {
	p := NewPipeline(scenarioCompleter(nil), types.EvidenceConfig{})
	src := writeSource(t, "s.txt", "content")
	if _, err := p.ExtractEvidence(context.Background(), "   ", src, DefaultOptions()); err == nil {
		t.Fatal("empty user text must be fatal")
	}
}

func TestPipelineUnreadableSourceFatal(t *testing.T) {
	p := NewPipeline(scenarioCompleter(nil), types.EvidenceConfig{})
	missing := filepath.Join(t.TempDir(), "absent.txt")
	if _, err := p.ExtractEvidence(context.Background(), "draft", missing, DefaultOptions()); err == nil {
		t.Fatal("unreadable source must be fatal")
	}
}
