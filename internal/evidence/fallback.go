// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"regexp"
	"strings"

	"github.com/draftwise/evidence-engine/pkg/types"
)

// contextWindow is the number of characters taken on each side of a
// pattern match as its context.
const contextWindow = 100

// statPatterns match numeric statistics in rough order of specificity.
// Overlapping later matches are dropped.
var statPatterns = []*regexp.Regexp{
	// Percentages, with the phrase they quantify when one follows.
	regexp.MustCompile(`\d+(?:\.\d+)?%(?:\s+of\s+[A-Za-z][A-Za-z\s,'-]{0,60}[A-Za-z])?`),
	// Currency with a magnitude word.
	regexp.MustCompile(`(?i)\$\d+(?:\.\d+)?\s*(?:thousand|million|billion|trillion)`),
	// Bare magnitude phrases.
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:thousand|million|billion|trillion)\b`),
	// Comparatives like "9 out of 10" or "1 in 5".
	regexp.MustCompile(`(?i)\b\d+\s+(?:out\s+of|in)\s+\d+\b`),
}

// quotePattern matches a double-quoted span of 20-300 characters.
var quotePattern = regexp.MustCompile(`"([^"]{20,300})"`)

// patternExtract is the deterministic fallback extractor. It scans the blob
// for numeric statistics and quoted spans so a malformed generative reply
// never leaves the pipeline without candidates when matches exist.
func patternExtract(blob string) []types.EvidenceCandidate {
	var candidates []types.EvidenceCandidate
	var taken [][2]int

	for _, re := range statPatterns {
		for _, loc := range re.FindAllStringIndex(blob, -1) {
			if overlaps(taken, loc[0], loc[1]) {
				continue
			}
			taken = append(taken, [2]int{loc[0], loc[1]})
			candidates = append(candidates, types.EvidenceCandidate{
				Text:     strings.TrimSpace(blob[loc[0]:loc[1]]),
				Context:  window(blob, loc[0], loc[1]),
				Source:   "Pattern extraction",
				Position: position(loc[0], len(blob)),
				Kind:     types.KindStatistic,
			})
		}
	}

	for _, loc := range quotePattern.FindAllStringSubmatchIndex(blob, -1) {
		// loc[2]:loc[3] is the capture group without the quote marks.
		candidates = append(candidates, types.EvidenceCandidate{
			Text:     strings.TrimSpace(blob[loc[2]:loc[3]]),
			Context:  window(blob, loc[0], loc[1]),
			Source:   "Quotation marks",
			Position: position(loc[0], len(blob)),
			Kind:     types.KindQuote,
		})
	}

	return candidates
}

// overlaps reports whether [start,end) intersects any span in taken.
func overlaps(taken [][2]int, start, end int) bool {
	for _, span := range taken {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// window returns the ±contextWindow characters around [start,end).
func window(blob string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(blob) {
		hi = len(blob)
	}
	return strings.TrimSpace(blob[lo:hi])
}

// position buckets an offset into a coarse document location.
func position(offset, total int) string {
	if total == 0 {
		return "beginning"
	}
	switch {
	case offset < total/3:
		return "beginning"
	case offset < 2*total/3:
		return "middle"
	default:
		return "end"
	}
}
