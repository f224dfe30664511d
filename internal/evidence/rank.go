// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"sort"

	"github.com/draftwise/evidence-engine/pkg/types"
)

// Rank filters scored evidence to score >= threshold, sorts descending by
// score, and truncates to max. Pure and idempotent. The sort is stable, so
// equal scores keep their original extraction order.
func Rank(scored []types.ScoredEvidence, threshold float64, max int) []types.ScoredEvidence {
	kept := make([]types.ScoredEvidence, 0, len(scored))
	for _, s := range scored {
		if s.RelevanceScore >= threshold {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	if max >= 0 && len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

// splitByKind partitions scored evidence into statistics and quotes,
// preserving order within each kind.
func splitByKind(scored []types.ScoredEvidence) (stats, quotes []types.ScoredEvidence) {
	for _, s := range scored {
		switch s.Kind {
		case types.KindStatistic:
			stats = append(stats, s)
		case types.KindQuote:
			quotes = append(quotes, s)
		}
	}
	return stats, quotes
}
