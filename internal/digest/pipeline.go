// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs one end-to-end digest: fetch recent papers, select
// the relevant ones through the threshold cascade, summarize them, compute
// trends over the whole batch, compare against the previous run, and post
// the result.
package digest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/relevance"
	"github.com/pdiddy/paper-digest/internal/trend"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// DefaultTopN is the number of selected papers summarized when TopN is unset.
const DefaultTopN = 5

var (
	// ErrNoPapers is returned when the feed yields an empty batch.
	ErrNoPapers = eris.New("digest: no papers fetched")

	// ErrNothingSelected is returned when no tier of the cascade selects a paper.
	ErrNothingSelected = eris.New("digest: no papers selected")
)

// Fetcher retrieves the batch of candidate documents.
type Fetcher interface {
	Fetch(ctx context.Context) ([]types.Document, error)
}

// Summarizer returns one summary per document, in input order.
type Summarizer interface {
	SummarizeAll(ctx context.Context, docs []types.Document) ([]string, error)
}

// Deliverer posts digest text and error notifications.
type Deliverer interface {
	Send(ctx context.Context, text string) error
	SendError(ctx context.Context, message string) error
}

// History stores run records and returns the latest trend report.
type History interface {
	Latest(ctx context.Context) (*types.TrendReport, error)
	Record(ctx context.Context, rec types.RunRecord) error
}

// Pipeline wires the collaborators of a digest run. History and Metrics
// are optional.
type Pipeline struct {
	Fetcher    Fetcher
	Summarizer Summarizer
	Deliverer  Deliverer
	History    History
	Metrics    *metrics.Metrics

	Scoring *types.ScoringTables
	Trend   *types.TrendTables
	Tiers   []types.CascadeTier // empty means relevance.DefaultTiers
	TopN    int

	// Now is read once per run. Defaults to time.Now.
	Now func() time.Time
}

// Result describes a completed run.
type Result struct {
	Record  types.RunRecord
	Message string
}

// Run executes one digest. Any failure before delivery is reported once
// through Deliverer.SendError; the run record is stored either way.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	asOf := now()
	rec := types.RunRecord{ID: uuid.NewString(), StartedAt: asOf, Tier: -1}
	log := zap.L().With(zap.String("run_id", rec.ID))

	log.Info("digest: run started")

	docs, err := p.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, p.fail(ctx, &rec, "Failed to fetch papers", eris.Wrap(err, "digest: fetch"))
	}
	rec.Fetched = len(docs)
	if len(docs) == 0 {
		return nil, p.fail(ctx, &rec, "No papers were found", ErrNoPapers)
	}

	res := relevance.Cascade(docs, p.Scoring, p.tiers(), asOf)
	rec.Tier, rec.Threshold = res.Tier, res.Threshold
	if len(res.Documents) == 0 {
		p.Metrics.ObserveSelection(len(docs), 0, res.Tier)
		return nil, p.fail(ctx, &rec, "No relevant papers were selected", ErrNothingSelected)
	}

	selected := res.Documents
	if n := p.topN(); len(selected) > n {
		selected = selected[:n]
	}
	rec.Selections = selections(selected)
	p.Metrics.ObserveSelection(len(docs), len(selected), res.Tier)

	log.Info("digest: papers selected",
		zap.Int("fetched", len(docs)),
		zap.Int("selected", len(selected)),
		zap.Int("tier", res.Tier),
		zap.Float64("threshold", res.Threshold),
		zap.Bool("relaxed", res.Relaxed()))

	summaries, err := p.Summarizer.SummarizeAll(ctx, selected)
	if err != nil {
		return nil, p.fail(ctx, &rec, "Failed to generate paper summaries", eris.Wrap(err, "digest: summarize"))
	}

	report := trend.Extract(docs, p.Trend, asOf)
	rec.Report = &report

	prior := p.priorReport(ctx)
	text := Compose(Message{
		Date:      asOf,
		Summaries: summaries,
		Trends:    trend.Render(report, p.Trend),
		Delta:     trend.RenderDelta(trend.Delta(report, prior), prior != nil),
	})

	err = p.Deliverer.Send(ctx, text)
	p.Metrics.ObserveNotification("digest", err)
	if err != nil {
		return nil, p.fail(ctx, &rec, "Failed to post the digest", eris.Wrap(err, "digest: deliver"))
	}

	rec.Status = types.RunOK
	rec.FinishedAt = now()
	p.record(ctx, rec)
	p.Metrics.ObserveRun(true, rec.StartedAt, rec.FinishedAt)

	log.Info("digest: run finished",
		zap.Int("summaries", len(summaries)),
		zap.Duration("elapsed", rec.FinishedAt.Sub(rec.StartedAt)))

	return &Result{Record: rec, Message: text}, nil
}

// fail notifies, records, and returns cause. Notification and history
// errors are logged and never replace cause.
func (p *Pipeline) fail(ctx context.Context, rec *types.RunRecord, notice string, cause error) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	rec.Status = types.RunFailed
	rec.Error = cause.Error()
	rec.FinishedAt = now()

	zap.L().Error("digest: run failed", zap.String("run_id", rec.ID), zap.Error(cause))

	err := p.Deliverer.SendError(ctx, notice)
	p.Metrics.ObserveNotification("error", err)
	if err != nil {
		zap.L().Warn("digest: error notification failed", zap.String("run_id", rec.ID), zap.Error(err))
	}

	p.record(ctx, *rec)
	p.Metrics.ObserveRun(false, rec.StartedAt, rec.FinishedAt)
	return cause
}

func (p *Pipeline) priorReport(ctx context.Context) *types.TrendReport {
	if p.History == nil {
		return nil
	}
	prior, err := p.History.Latest(ctx)
	if err != nil {
		zap.L().Warn("digest: could not load previous trends", zap.Error(err))
		return nil
	}
	return prior
}

func (p *Pipeline) record(ctx context.Context, rec types.RunRecord) {
	if p.History == nil {
		return
	}
	// Store the record even when the run context was cancelled.
	if err := p.History.Record(context.WithoutCancel(ctx), rec); err != nil {
		zap.L().Warn("digest: could not record run", zap.String("run_id", rec.ID), zap.Error(err))
	}
}

// tiers returns the configured cascade, or relevance.DefaultTiers when
// none is set.
func (p *Pipeline) tiers() []types.CascadeTier {
	if len(p.Tiers) > 0 {
		return p.Tiers
	}
	return relevance.DefaultTiers
}

func (p *Pipeline) topN() int {
	if p.TopN > 0 {
		return p.TopN
	}
	return DefaultTopN
}

func selections(docs []types.Document) []types.Selection {
	out := make([]types.Selection, len(docs))
	for i, d := range docs {
		out[i] = types.Selection{Rank: i + 1, PaperID: d.ID, Title: d.Title, Score: d.RelevanceScore}
	}
	return out
}
