// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the feed and delivery
// clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff step. Tests override this to avoid
// real sleeps.
var RetryBaseDelay = 3 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After value.
var MaxRetryAfter = 2 * time.Minute

const defaultMaxRetries = 5

// DoWithRetry executes req and retries HTTP 429 (Too Many Requests) with
// exponential backoff starting at RetryBaseDelay. A Retry-After header in seconds
// replaces the computed delay, capped at MaxRetryAfter.
//
// Request bodies are replayed through req.GetBody. When maxRetries is 0
// the default (5) is used. After exhausting retries
// the last response is returned so the caller can inspect it. A context
// cancelled during a wait returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, eris.Wrap(err, "httputil: rewind request body")
			}
			r.Body = body
		}

		resp, err := client.Do(r)
		if err != nil {
			return nil, eris.Wrapf(err, "httputil: %s %s", req.Method, req.URL.Host)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := backoffFor(attempt, resp.Header.Get("Retry-After"))
		zap.L().Warn("httputil: rate limited, retrying",
			zap.String("host", req.URL.Host),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func backoffFor(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > MaxRetryAfter {
			d = MaxRetryAfter
		}
		return d
	}
	return RetryBaseDelay << attempt
}
