// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/paper-digest/internal/deliver"
	"github.com/pdiddy/paper-digest/internal/digest"
	"github.com/pdiddy/paper-digest/internal/feed"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/internal/tables"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// loadTables returns the scoring and trend tables named by cfg, or the
// built-ins.
func loadTables(c *types.DigestConfig) (*types.ScoringTables, *types.TrendTables, error) {
	scoring, err := tables.LoadScoring(c.Tables.ScoringFile)
	if err != nil {
		return nil, nil, err
	}
	trendTables, err := tables.LoadTrend(c.Tables.TrendFile)
	if err != nil {
		return nil, nil, err
	}
	return &scoring, &trendTables, nil
}

// openHistory opens the run store, or returns nil when history is disabled.
func openHistory(c *types.DigestConfig) (*history.Store, error) {
	if !c.History.Enabled {
		return nil, nil
	}
	return history.Open(c.History.DBPath)
}

// newPipeline builds a digest pipeline from cfg. The returned close
// function releases the history store.
func newPipeline(c *types.DigestConfig, m *metrics.Metrics) (*digest.Pipeline, func(), error) {
	scoring, trendTables, err := loadTables(c)
	if err != nil {
		return nil, nil, err
	}

	svc := summarize.New(summarize.NewAnthropic(c.Summary), c.Summary)
	svc.OnResult = m.ObserveSummary

	p := &digest.Pipeline{
		Fetcher:    feed.NewArxivFetcher(c.Feed),
		Summarizer: svc,
		Deliverer:  deliver.NewSlack(c.Delivery),
		Metrics:    m,
		Scoring:    scoring,
		Trend:      trendTables,
		Tiers:      c.Selection.Tiers,
		TopN:       c.Selection.TopN,
	}

	closeFn := func() {}
	store, err := openHistory(c)
	if err != nil {
		return nil, nil, err
	}
	if store != nil {
		p.History = store
		closeFn = func() { _ = store.Close() }
	}
	return p, closeFn, nil
}
