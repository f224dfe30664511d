// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"strings"
	"testing"

	"github.com/draftwise/evidence-engine/pkg/types"
)

func TestPatternExtractPercentage(t *testing.T) {
	blob := "The annual report was thorough. It found that 42% of respondents had switched tools during the year. Adoption continues to climb."
	candidates := patternExtract(blob)

	var stat *types.EvidenceCandidate
	for i := range candidates {
		if candidates[i].Kind == types.KindStatistic {
			stat = &candidates[i]
			break
		}
	}
	if stat == nil {
		t.Fatal("no statistic extracted from percentage text")
	}
	if !strings.HasPrefix(stat.Text, "42%") {
		t.Errorf("text = %q, want to start with 42%%", stat.Text)
	}
	if stat.Source != "Pattern extraction" {
		t.Errorf("source = %q, want Pattern extraction", stat.Source)
	}
	if !strings.Contains(stat.Context, "42% of respondents") {
		t.Errorf("context window missing the match: %q", stat.Context)
	}
}

func TestPatternExtractCurrencyAndComparative(t *testing.T) {
	blob := "The program cost $3.5 billion over a decade. Separately, 9 out of 10 surveyed clinics reported shortages."
	candidates := patternExtract(blob)

	texts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind == types.KindStatistic {
			texts = append(texts, c.Text)
		}
	}
	joined := strings.Join(texts, " | ")
	if !strings.Contains(joined, "$3.5 billion") {
		t.Errorf("currency magnitude not extracted: %s", joined)
	}
	if !strings.Contains(joined, "9 out of 10") {
		t.Errorf("comparative not extracted: %s", joined)
	}
}

func TestPatternExtractNoDoubleCount(t *testing.T) {
	// "$2 million" also matches the bare-magnitude pattern; it must be
	// extracted once.
	blob := "Funding reached $2 million this quarter."
	count := 0
	for _, c := range patternExtract(blob) {
		if c.Kind == types.KindStatistic {
			count++
		}
	}
	if count != 1 {
		t.Errorf("overlapping patterns produced %d candidates, want 1", count)
	}
}

func TestPatternExtractQuotes(t *testing.T) {
	blob := `The director was blunt. "We simply cannot keep pace with current staffing levels," she said. Others disagreed. "No" was the short answer.`
	candidates := patternExtract(blob)

	var quotes []types.EvidenceCandidate
	for _, c := range candidates {
		if c.Kind == types.KindQuote {
			quotes = append(quotes, c)
		}
	}
	if len(quotes) != 1 {
		t.Fatalf("quotes = %d, want 1 (short quote must be ignored)", len(quotes))
	}
	if quotes[0].Source != "Quotation marks" {
		t.Errorf("source = %q, want Quotation marks", quotes[0].Source)
	}
	if strings.Contains(quotes[0].Text, `"`) {
		t.Errorf("quote text should exclude the quote marks: %q", quotes[0].Text)
	}
}

func TestPatternExtractEmpty(t *testing.T) {
	if got := patternExtract("Nothing numeric or quotable here."); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestPositionBuckets(t *testing.T) {
	tests := []struct {
		offset, total int
		want          string
	}{
		{0, 300, "beginning"},
		{150, 300, "middle"},
		{280, 300, "end"},
		{0, 0, "beginning"},
	}
	for _, tt := range tests {
		if got := position(tt.offset, tt.total); got != tt.want {
			t.Errorf("position(%d, %d) = %q, want %q", tt.offset, tt.total, got, tt.want)
		}
	}
}
