// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns selected documents into digest summaries with a
// generative-text backend. Documents whose call fails get a fallback
// summary built from the abstract.
package summarize

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Backend abstracts the generative-text API so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrAllFailed is returned when no document could be summarized.
var ErrAllFailed = eris.New("summarize: every summary request failed")

// backoffBase is the base delay between retries. Tests override it.
var backoffBase = 2 * time.Second

const (
	defaultConcurrency = 2
	defaultExcerpt     = 500
)

// Service summarizes documents concurrently.
type Service struct {
	Backend Backend
	Config  types.SummaryConfig

	// OnResult, when set, is called once per document with whether the
	// backend produced the summary.
	OnResult func(ok bool)
}

// New returns a Service using backend.
func New(backend Backend, cfg types.SummaryConfig) *Service {
	return &Service{Backend: backend, Config: cfg}
}

// SummarizeAll returns one summary per document in input order. A failed
// document gets a fallback summary. When every document fails it returns
// nil and ErrAllFailed. Cancelling ctx aborts the batch.
func (s *Service) SummarizeAll(ctx context.Context, docs []types.Document) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}

	concurrency := s.Config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	var limiter *rate.Limiter
	if rps := s.Config.RequestsPerSecond; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	summaries := make([]string, len(docs))
	var failed int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}

			text, err := s.summarizeOne(gctx, doc)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("summarize: falling back to abstract",
					zap.String("id", doc.ID), zap.Error(err))
				atomic.AddInt32(&failed, 1)
				text = Fallback(doc, s.excerpt())
			}
			if s.OnResult != nil {
				s.OnResult(err == nil)
			}
			summaries[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "summarize: batch")
	}

	if int(failed) == len(docs) {
		return nil, ErrAllFailed
	}
	zap.L().Info("summarize: batch complete",
		zap.Int("documents", len(docs)), zap.Int32("fallbacks", failed))
	return summaries, nil
}

func (s *Service) summarizeOne(ctx context.Context, doc types.Document) (string, error) {
	prompt, err := renderPrompt(doc)
	if err != nil {
		return "", err
	}
	return callWithRetry(ctx, s.Backend, prompt, s.Config.MaxRetries)
}

func (s *Service) excerpt() int {
	if s.Config.AbstractExcerpt > 0 {
		return s.Config.AbstractExcerpt
	}
	return defaultExcerpt
}

// callWithRetry calls the backend with exponential backoff. An empty
// completion counts as a failure.
func callWithRetry(ctx context.Context, backend Backend, prompt string, maxRetries int) (string, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Complete(ctx, systemPrompt, prompt)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			err = eris.New("summarize: empty completion")
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", eris.Wrapf(lastErr, "summarize: after %d attempts", maxRetries+1)
}
