// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"reflect"
	"testing"

	"github.com/draftwise/evidence-engine/pkg/types"
)

func scoredWith(scores ...float64) []types.ScoredEvidence {
	out := make([]types.ScoredEvidence, len(scores))
	for i, s := range scores {
		out[i] = types.ScoredEvidence{
			EvidenceCandidate: types.EvidenceCandidate{
				Text: string(rune('a' + i)),
				Kind: types.KindStatistic,
			},
			RelevanceScore: s,
		}
	}
	return out
}

func TestRankFiltersAndSorts(t *testing.T) {
	in := scoredWith(0.3, 0.9, 0.6, 0.7)
	got := Rank(in, 0.6, 5)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].RelevanceScore > got[i-1].RelevanceScore {
			t.Errorf("not sorted descending at %d: %v", i, got)
		}
	}
}

func TestRankThresholdMonotonic(t *testing.T) {
	in := scoredWith(0.2, 0.5, 0.6, 0.8, 0.95)

	loose := Rank(in, 0.3, 100)
	tight := Rank(in, 0.7, 100)

	// Everything retained at the higher threshold must also be retained
	// at the lower one.
	inLoose := make(map[string]bool)
	for _, s := range loose {
		inLoose[s.Text] = true
	}
	for _, s := range tight {
		if !inLoose[s.Text] {
			t.Errorf("item %q retained at 0.7 but not at 0.3", s.Text)
		}
	}
	if len(tight) > len(loose) {
		t.Errorf("tight result larger than loose: %d > %d", len(tight), len(loose))
	}
}

func TestRankTiesKeepExtractionOrder(t *testing.T) {
	in := []types.ScoredEvidence{
		{EvidenceCandidate: types.EvidenceCandidate{Text: "first"}, RelevanceScore: 0.7},
		{EvidenceCandidate: types.EvidenceCandidate{Text: "second"}, RelevanceScore: 0.7},
		{EvidenceCandidate: types.EvidenceCandidate{Text: "third"}, RelevanceScore: 0.7},
	}
	got := Rank(in, 0.6, 5)
	want := []string{"first", "second", "third"}
	for i, s := range got {
		if s.Text != want[i] {
			t.Fatalf("tie order broken: got[%d] = %q, want %q", i, s.Text, want[i])
		}
	}
}

func TestRankTruncatesToMax(t *testing.T) {
	in := scoredWith(0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9)
	for _, max := range []int{0, 1, 3, 5, 100} {
		got := Rank(in, 0.5, max)
		if max < len(in) && len(got) != max {
			t.Errorf("max=%d: len = %d", max, len(got))
		}
		if len(got) > max && max >= 0 {
			t.Errorf("max=%d: len %d exceeds cap", max, len(got))
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	in := scoredWith(0.4, 0.9, 0.6, 0.6, 0.8)
	first := Rank(in, 0.5, 3)
	second := Rank(first, 0.5, 3)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ranking is not idempotent:\nfirst  %v\nsecond %v", first, second)
	}
}

func TestSplitByKind(t *testing.T) {
	in := []types.ScoredEvidence{
		{EvidenceCandidate: types.EvidenceCandidate{Text: "s1", Kind: types.KindStatistic}},
		{EvidenceCandidate: types.EvidenceCandidate{Text: "q1", Kind: types.KindQuote}},
		{EvidenceCandidate: types.EvidenceCandidate{Text: "s2", Kind: types.KindStatistic}},
	}
	stats, quotes := splitByKind(in)
	if len(stats) != 2 || len(quotes) != 1 {
		t.Fatalf("split = %d stats, %d quotes", len(stats), len(quotes))
	}
	if stats[0].Text != "s1" || stats[1].Text != "s2" {
		t.Errorf("statistic order not preserved: %v", stats)
	}
}
