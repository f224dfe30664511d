// Copyright Draftwise Labs, 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftwise/evidence-engine/internal/cache"
	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/pkg/types"
)

const (
	// defaultMaxPapers is the result cap when the caller passes none.
	defaultMaxPapers = 3

	// defaultMaxTopics caps how many topics fan out to the providers.
	// A latency and cost knob rather than a correctness requirement.
	defaultMaxTopics = 2

	// enhancedScoringConcurrency bounds in-flight per-paper scoring calls.
	enhancedScoringConcurrency = 8

	// neutralPaperScore is substituted when a paper's re-scoring call fails.
	neutralPaperScore = 5

	neutralPaperAnalysis = "Analysis unavailable"
)

const paperScoringSystem = `You rate how relevant a scholarly paper is to a writer's topic. Respond with a single JSON object and no text outside it.`

var paperScoringPromptTmpl = template.Must(template.New("paperscore").Parse(`The writer is working on:
{{.Draft}}

Candidate paper:
Title: {{.Title}}
Abstract: {{.Abstract}}

Rate the paper's relevance to the writer's topic from 1 (unrelated) to 10 (central), and give a one-sentence analysis.

Respond with a JSON object: {"score": <1-10>, "analysis": "<sentence>"}.
`))

// SearchOptions are the caller-facing knobs of one research request.
type SearchOptions struct {
	// MaxPapers caps the returned list. Values <= 0 take the default 3.
	MaxPapers int

	// Enhanced re-scores each paper's domain relevance with one
	// completion call per paper and re-sorts by the result.
	Enhanced bool
}

// Aggregator fans search topics out to the academic index providers and
// merges their results.
type Aggregator struct {
	completer llm.Completer
	backends  []Backend
	cache     *cache.Cache
	maxTopics int
}

// NewAggregator creates a research aggregator. The cache is optional; pass
// nil to always hit the providers.
func NewAggregator(completer llm.Completer, backends []Backend, c *cache.Cache, maxTopics int) *Aggregator {
	if maxTopics <= 0 {
		maxTopics = defaultMaxTopics
	}
	return &Aggregator{completer: completer, backends: backends, cache: c, maxTopics: maxTopics}
}

// FindRelevantResearch derives search topics from the user's draft,
// queries every enabled provider for each topic concurrently, deduplicates
// the combined list, and truncates it to MaxPapers. A provider's failure
// is isolated: it is logged and contributes zero results. With Enhanced
// set, each surviving paper is re-scored for domain relevance and the list
// is re-sorted.
func (a *Aggregator) FindRelevantResearch(ctx context.Context, userText string, opts SearchOptions) ([]types.ResearchPaper, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, fmt.Errorf("user text is empty: provide the draft being written")
	}
	if len(a.backends) == 0 {
		return nil, fmt.Errorf("no search providers enabled")
	}
	maxPapers := opts.MaxPapers
	if maxPapers <= 0 {
		maxPapers = defaultMaxPapers
	}

	topics := ExtractTopics(ctx, a.completer, userText)
	if len(topics) > a.maxTopics {
		topics = topics[:a.maxTopics]
	}
	zap.L().Info("research: searching", zap.Strings("topics", topics), zap.Int("max_papers", maxPapers))

	// Distribute the budget evenly across providers, rounding up.
	perSource := (maxPapers + len(a.backends) - 1) / len(a.backends)

	// One slot per (topic, provider) pair keeps the combined order
	// deterministic regardless of completion order, which in turn keeps
	// first-seen-wins dedup deterministic.
	slots := make([][]types.ResearchPaper, len(topics)*len(a.backends))
	var wg sync.WaitGroup
	for ti, topic := range topics {
		for bi, b := range a.backends {
			wg.Add(1)
			go func() {
				defer wg.Done()
				slots[ti*len(a.backends)+bi] = a.searchOne(ctx, b, topic, perSource)
			}()
		}
	}
	wg.Wait()

	var combined []types.ResearchPaper
	for _, papers := range slots {
		combined = append(combined, papers...)
	}

	papers := deduplicate(combined)
	if len(papers) > maxPapers {
		papers = papers[:maxPapers]
	}

	if opts.Enhanced {
		a.scorePapers(ctx, userText, papers)
		sort.SliceStable(papers, func(i, j int) bool {
			return papers[i].RelevanceScore > papers[j].RelevanceScore
		})
		if len(papers) > maxPapers {
			papers = papers[:maxPapers]
		}
	}

	return papers, nil
}

// searchOne queries a single provider, consulting the cache first. A
// failed provider logs a warning and contributes nothing.
func (a *Aggregator) searchOne(ctx context.Context, b Backend, topic string, limit int) []types.ResearchPaper {
	key := cache.Key(b.Name(), topic, strconv.Itoa(limit))
	if a.cache != nil {
		var cached []types.ResearchPaper
		if a.cache.Get(key, &cached) {
			zap.L().Debug("research: cache hit", zap.String("provider", b.Name()), zap.String("topic", topic))
			return cached
		}
	}

	papers, err := b.Search(ctx, topic, limit)
	if err != nil {
		zap.L().Warn("research: provider failed",
			zap.String("provider", b.Name()), zap.String("topic", topic), zap.Error(err))
		return nil
	}
	if a.cache != nil && len(papers) > 0 {
		a.cache.Put(key, papers)
	}
	return papers
}

// deduplicate drops papers whose DOI or normalized title was already seen.
// The first occurrence wins; later matches on either key are discarded.
func deduplicate(papers []types.ResearchPaper) []types.ResearchPaper {
	seenDOI := make(map[string]bool)
	seenTitle := make(map[string]bool)
	deduped := make([]types.ResearchPaper, 0, len(papers))

	for _, p := range papers {
		doi := strings.ToLower(p.DOI)
		title := normalizeTitle(p.Title)
		if doi != "" && seenDOI[doi] {
			continue
		}
		if title != "" && seenTitle[title] {
			continue
		}
		if doi != "" {
			seenDOI[doi] = true
		}
		if title != "" {
			seenTitle[title] = true
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// paperScoreReply mirrors the JSON shape requested from the model.
type paperScoreReply struct {
	Score    float64 `json:"score"`
	Analysis string  `json:"analysis"`
}

// scorePapers rates each paper 1-10 against the draft with independent,
// concurrently issued completion calls. A failed call degrades only its
// own paper to the neutral score.
func (a *Aggregator) scorePapers(ctx context.Context, userText string, papers []types.ResearchPaper) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enhancedScoringConcurrency)
	for i := range papers {
		g.Go(func() error {
			score, analysis := a.scoreOne(gctx, userText, papers[i])
			papers[i].RelevanceScore = score
			papers[i].RelevanceAnalysis = analysis
			return nil
		})
	}
	_ = g.Wait()
}

func (a *Aggregator) scoreOne(ctx context.Context, userText string, paper types.ResearchPaper) (float64, string) {
	var buf strings.Builder
	err := paperScoringPromptTmpl.Execute(&buf, struct {
		Draft, Title, Abstract string
	}{Draft: userText, Title: paper.Title, Abstract: paper.Abstract})
	if err != nil {
		zap.L().Warn("research: rendering scoring prompt", zap.Error(err))
		return neutralPaperScore, neutralPaperAnalysis
	}

	reply, err := a.completer.Complete(ctx, llm.Request{
		System:      paperScoringSystem,
		Prompt:      buf.String(),
		MaxTokens:   256,
		Temperature: 0.1,
	})
	if err != nil {
		zap.L().Warn("research: paper scoring failed, keeping neutral score",
			zap.String("title", paper.Title), zap.Error(err))
		return neutralPaperScore, neutralPaperAnalysis
	}

	var sr paperScoreReply
	if err := llm.UnmarshalObject(reply, &sr); err != nil {
		zap.L().Warn("research: unparsable scoring reply, keeping neutral score",
			zap.String("title", paper.Title), zap.Error(err))
		return neutralPaperScore, neutralPaperAnalysis
	}

	score := sr.Score
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	analysis := sr.Analysis
	if analysis == "" {
		analysis = neutralPaperAnalysis
	}
	return score, analysis
}
