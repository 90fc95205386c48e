// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/schedule"
	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestHealthz(t *testing.T) {
	sched, err := schedule.Parse("")
	require.NoError(t, err)
	state := &runState{}
	state.set(&types.RunRecord{ID: "run-1", Status: types.RunOK, Fetched: 12}, nil)

	srv := httptest.NewServer(newRouter(metrics.New(), state, sched))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	require.NotNil(t, body.LastRun)
	assert.Equal(t, "run-1", body.LastRun.ID)
	assert.True(t, body.Next.After(time.Now()))
	assert.Empty(t, body.Error)
}

func TestHealthzReportsLastError(t *testing.T) {
	sched, err := schedule.Parse("")
	require.NoError(t, err)
	state := &runState{}
	state.set(nil, errors.New("digest: fetch: timeout"))

	rec := httptest.NewRecorder()
	newRouter(metrics.New(), state, sched).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Nil(t, body.LastRun)
	assert.Equal(t, "digest: fetch: timeout", body.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	sched, err := schedule.Parse("")
	require.NoError(t, err)
	m := metrics.New()
	m.ObserveRun(true, time.Now().Add(-time.Second), time.Now())

	rec := httptest.NewRecorder()
	newRouter(m, &runState{}, sched).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `paper_digest_runs_total{status="ok"} 1`)
}

func TestFormatRuns(t *testing.T) {
	var buf bytes.Buffer
	formatRuns(nil, &buf)
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	formatRuns([]types.RunRecord{
		{
			ID: "a", Status: types.RunOK, Fetched: 40,
			Selections: []types.Selection{{Rank: 1, Title: "A Copilot for Code Generation and Much, Much More"}},
		},
		{ID: "b", Status: types.RunFailed, Tier: -1, Error: "digest: no papers fetched"},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "A Copilot for Code Generation and Muc...")
	assert.Contains(t, out, "digest: no papers fetched")
	assert.Contains(t, out, "failed")
}

func TestRequireCredentials(t *testing.T) {
	var c types.DigestConfig
	assert.ErrorContains(t, requireCredentials(&c), "Anthropic API key")

	c.Summary.APIKey = "key"
	assert.ErrorContains(t, requireCredentials(&c), "Slack webhook")

	c.Delivery.WebhookURL = "https://hooks.example/x"
	assert.NoError(t, requireCredentials(&c))
}

func TestLoadDocumentsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"2610.00001","title":"Agents"}]`), 0o644))

	docs, err := loadDocuments(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Agents", docs[0].Title)

	_, err = loadDocuments(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadTablesDefaults(t *testing.T) {
	scoring, trendTables, err := loadTables(&types.DigestConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, scoring.Tiers)
	assert.NotEmpty(t, trendTables.Categories)
}
