// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// weightTables scores "alpha" 6, "beta" 4 and "gamma" 1.5 with no other
// contributions, so tests can dial in exact scores.
func weightTables() *types.ScoringTables {
	return &types.ScoringTables{
		Tiers: []types.KeywordTier{
			{Name: "a", Keywords: []string{"alpha"}, Weight: 6},
			{Name: "b", Keywords: []string{"beta"}, Weight: 4},
			{Name: "g", Keywords: []string{"gamma"}, Weight: 1.5},
		},
	}
}

func doc(id, abstract string) types.Document {
	return types.Document{ID: id, Abstract: abstract}
}

func ids(docs []types.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestSelectOrdering(t *testing.T) {
	docs := []types.Document{
		doc("g1", "gamma"),
		doc("a1", "alpha"),
		doc("none", "nothing here"),
		doc("g2", "gamma"),
		doc("b1", "beta"),
	}

	got := Select(docs, weightTables(), 0, asOf)
	assert.Equal(t, []string{"a1", "b1", "g1", "g2", "none"}, ids(got))

	// Input keeps its order but carries scores.
	assert.Equal(t, "g1", docs[0].ID)
	for _, d := range docs {
		assert.True(t, d.Scored)
	}
	assert.Equal(t, 6.0, docs[1].RelevanceScore)
}

func TestSelectThreshold(t *testing.T) {
	tests := []struct {
		name     string
		minScore float64
		want     []string
	}{
		{"inclusive boundary", 4, []string{"a1", "b1"}},
		{"strict", 5, []string{"a1"}},
		{"above all", 10, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := []types.Document{doc("b1", "beta"), doc("a1", "alpha"), doc("g1", "gamma")}
			assert.Equal(t, tt.want, ids(Select(docs, weightTables(), tt.minScore, asOf)))
		})
	}
}

func TestSelectEmpty(t *testing.T) {
	assert.Empty(t, Select(nil, weightTables(), 0, asOf))
}

func TestSelectLooserThresholdIsSuperset(t *testing.T) {
	docs := []types.Document{
		doc("1", "alpha beta"), doc("2", "beta gamma"), doc("3", "gamma"),
		doc("4", "alpha"), doc("5", ""),
	}
	strict := Select(docs, weightTables(), 5, asOf)
	loose := Select(docs, weightTables(), 3, asOf)

	assert.Subset(t, ids(loose), ids(strict))
	assert.GreaterOrEqual(t, len(loose), len(strict))
}

func TestCascade(t *testing.T) {
	tiers := []types.CascadeTier{
		{MinScore: 5, MinCount: 3},
		{MinScore: 3, MinCount: 1},
		{MinScore: 1, MinCount: 0, Limit: 5},
	}

	tests := []struct {
		name      string
		docs      []types.Document
		wantTier  int
		wantIDs   []string
		threshold float64
	}{
		{
			name: "strict tier accepted",
			docs: []types.Document{
				doc("a1", "alpha"), doc("a2", "alpha"), doc("a3", "alpha beta"), doc("b1", "beta"),
			},
			wantTier:  0,
			wantIDs:   []string{"a3", "a1", "a2"},
			threshold: 5,
		},
		{
			name:      "relaxed when strict is short",
			docs:      []types.Document{doc("a1", "alpha"), doc("b1", "beta"), doc("g1", "gamma")},
			wantTier:  1,
			wantIDs:   []string{"a1", "b1"},
			threshold: 3,
		},
		{
			name: "last resort truncates",
			docs: []types.Document{
				doc("g1", "gamma"), doc("g2", "gamma"), doc("g3", "gamma"), doc("g4", "gamma"),
				doc("g5", "gamma"), doc("g6", "gamma"), doc("g7", "gamma"),
			},
			wantTier:  2,
			wantIDs:   []string{"g1", "g2", "g3", "g4", "g5"},
			threshold: 1,
		},
		{
			name:      "nothing qualifies",
			docs:      []types.Document{doc("x", "unrelated"), doc("y", "")},
			wantTier:  2,
			wantIDs:   []string{},
			threshold: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Cascade(tt.docs, weightTables(), tiers, asOf)
			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, tt.threshold, res.Threshold)
			assert.Equal(t, tt.wantIDs, ids(res.Documents))
			assert.Equal(t, tt.wantTier > 0, res.Relaxed())
		})
	}
}

func TestCascadeNoTiers(t *testing.T) {
	res := Cascade([]types.Document{doc("a1", "alpha")}, weightTables(), nil, asOf)
	assert.Equal(t, -1, res.Tier)
	assert.Nil(t, res.Documents)
	assert.False(t, res.Relaxed())
}

func TestCascadeDefaultTiers(t *testing.T) {
	require.Len(t, DefaultTiers, 3)
	res := Cascade([]types.Document{doc("b1", "beta")}, weightTables(), DefaultTiers, asOf)
	assert.Equal(t, 1, res.Tier)
	assert.Equal(t, []string{"b1"}, ids(res.Documents))
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No documents selected.\n", buf.String())

	buf.Reset()
	docs := []types.Document{{
		ID:             "2610.00001",
		Title:          "A Copilot for Everything",
		Authors:        []string{"Ada Lovelace", "Alan Turing"},
		PublishedAt:    "2026-10-13T17:59:59Z",
		Categories:     []string{"cs.SE", "cs.AI"},
		RelevanceScore: 7.5,
	}}
	FormatTable(docs, &buf)
	out := buf.String()
	assert.Contains(t, out, "A Copilot for Everything")
	assert.Contains(t, out, "Ada Lovelace et al.")
	assert.Contains(t, out, "2026-10-13 ")
	assert.Contains(t, out, "7.50")
	assert.Contains(t, out, "cs.SE,cs.AI")
	assert.Contains(t, out, "1 documents")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON([]types.Document{doc("a1", "alpha")}, &buf))

	var got []types.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestFormatBreakdown(t *testing.T) {
	d := types.Document{ID: "2610.00001", Title: "Copilot agents", Abstract: "clinical"}
	b := Explain(d, testTables(), asOf)

	var buf bytes.Buffer
	FormatBreakdown(d, b, &buf)
	out := buf.String()
	assert.Contains(t, out, "2610.00001  Copilot agents")
	assert.Contains(t, out, "keywords")
	assert.Contains(t, out, "-2.00")
	assert.Contains(t, out, "matched: copilot, agent")
	assert.NotContains(t, out, "recency")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
