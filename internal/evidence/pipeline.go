// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftwise/evidence-engine/internal/llm"
	"github.com/draftwise/evidence-engine/internal/source"
	"github.com/draftwise/evidence-engine/pkg/types"
)

// noCandidatesMessage is set on the result when the source yielded nothing
// to score.
const noCandidatesMessage = "No statistics or quotes were found in the source document."

// Options are the caller-facing knobs of one evidence request.
type Options struct {
	// MaxStats and MaxQuotes cap the retained candidates per kind.
	// Values <= 0 take the default 5.
	MaxStats  int
	MaxQuotes int

	// RelevanceThreshold is the minimum retained score. Values <= 0 take
	// the documented default 0.6.
	RelevanceThreshold float64
}

// DefaultOptions returns the documented defaults: five statistics, five
// quotes, threshold 0.6.
func DefaultOptions() Options {
	return Options{MaxStats: 5, MaxQuotes: 5, RelevanceThreshold: 0.6}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxStats <= 0 {
		o.MaxStats = d.MaxStats
	}
	if o.MaxQuotes <= 0 {
		o.MaxQuotes = d.MaxQuotes
	}
	if o.RelevanceThreshold <= 0 {
		o.RelevanceThreshold = d.RelevanceThreshold
	}
	return o
}

// Pipeline wires the evidence components around one Completer.
type Pipeline struct {
	completer llm.Completer
	cfg       types.EvidenceConfig
}

// NewPipeline creates an evidence pipeline.
func NewPipeline(completer llm.Completer, cfg types.EvidenceConfig) *Pipeline {
	return &Pipeline{completer: completer, cfg: cfg}
}

// ExtractEvidence runs the full pipeline: load the source document and
// analyze the draft's intent in parallel, extract candidates, score them
// concurrently, rank and filter per kind, and generate integration
// guidance. Empty user text and an unreadable source are fatal; every
// other sub-step soft-fails per its component contract, so the caller
// always receives a best-effort result once the inputs are valid.
func (p *Pipeline) ExtractEvidence(ctx context.Context, userText, sourcePath string, opts Options) (*types.EvidenceResult, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, fmt.Errorf("user text is empty: provide the draft being written")
	}
	opts = opts.normalized()

	var blob string
	var intent types.UserIntent

	// The source read and the intent analysis depend only on raw inputs;
	// run both before extraction needs either.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blob, err = source.Read(sourcePath)
		return err
	})
	g.Go(func() error {
		intent = AnalyzeIntent(gctx, p.completer, userText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &types.EvidenceResult{
		UserContext: intent,
		Statistics:  []types.ScoredEvidence{},
		Quotes:      []types.ScoredEvidence{},
		SourceInfo:  types.SourceInfo{Filename: filepath.Base(sourcePath)},
	}

	candidates := ExtractCandidates(ctx, p.completer, blob, p.cfg.MaxSourceChars)
	result.SourceInfo.CandidatesFound = len(candidates)
	if len(candidates) == 0 {
		result.Message = noCandidatesMessage
		result.Recommendations = noEvidenceGuidance
		return result, nil
	}

	scored := ScoreCandidates(ctx, p.completer, candidates, intent, p.cfg.ScoringConcurrency)

	stats, quotes := splitByKind(scored)
	result.Statistics = Rank(stats, opts.RelevanceThreshold, opts.MaxStats)
	result.Quotes = Rank(quotes, opts.RelevanceThreshold, opts.MaxQuotes)
	result.SourceInfo.CandidatesRetained = len(result.Statistics) + len(result.Quotes)

	result.Recommendations = Recommend(ctx, p.completer, userText, result.Statistics, result.Quotes)

	zap.L().Info("evidence: pipeline complete",
		zap.String("source", result.SourceInfo.Filename),
		zap.Int("found", result.SourceInfo.CandidatesFound),
		zap.Int("retained", result.SourceInfo.CandidatesRetained),
	)
	return result, nil
}
