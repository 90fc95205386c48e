// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, ValidateScoring(DefaultScoring()))
	require.NoError(t, ValidateTrend(DefaultTrend()))
}

func TestDefaultsAreIndependentCopies(t *testing.T) {
	a := DefaultScoring()
	a.Tiers[0].Keywords[0] = "mutated"
	b := DefaultScoring()
	assert.NotEqual(t, "mutated", b.Tiers[0].Keywords[0])
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := LoadScoring("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScoring(), s)

	tr, err := LoadTrend("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTrend(), tr)
}

func TestWriteThenLoadScoring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, WriteYAML(path, DefaultScoring()))

	got, err := LoadScoring(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultScoring(), got)
}

func TestLoadScoringReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	yml := `
tiers:
  - name: only
    keywords: [rust]
    weight: 5
author_bands:
  sweet_min: 1
  sweet_max: 3
recency:
  - max_age_days: 7
    bonus: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	got, err := LoadScoring(path)
	require.NoError(t, err)
	require.Len(t, got.Tiers, 1)
	assert.Equal(t, []string{"rust"}, got.Tiers[0].Keywords)
	assert.Equal(t, 5.0, got.Tiers[0].Weight)
	assert.Empty(t, got.Affiliations.Phrases)
	assert.Equal(t, []types.RecencyBand{{MaxAgeDays: 7, Bonus: 2}}, got.Recency)
}

func TestLoadScoringErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no tiers", "exclusions:\n  weight: 1\n", "at least one keyword tier"},
		{"unnamed tier", "tiers:\n  - keywords: [x]\n    weight: 1\n", "name is required"},
		{"negative weight", "tiers:\n  - name: a\n    weight: -1\n", "weights must be >= 0"},
		{"inverted sweet spot", "tiers:\n  - name: a\n    weight: 1\nauthor_bands:\n  sweet_min: 5\n  sweet_max: 2\n", "sweet_min <= sweet_max"},
		{"crowd below sweet spot", "tiers:\n  - name: a\n    weight: 1\nauthor_bands:\n  sweet_min: 2\n  sweet_max: 8\n  crowd_max: 4\n", "crowd_max"},
		{"bad yaml", "tiers: [unterminated\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadScoring(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadScoring(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tables: read")

	_, err = LoadTrend(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.yaml")
	yml := `
categories:
  - name: lang
    display: Languages
    keywords: [rust, go]
emerging: [wasm]
institutions: ["  ETH Zurich ", MIT]
category_names:
  cs.PL: Programming Languages
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	got, err := LoadTrend(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"eth zurich", "mit"}, got.Institutions)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Languages", got.Categories[0].Display)
	assert.Equal(t, "Programming Languages", got.CategoryNames["cs.PL"])
}

func TestValidateTrend(t *testing.T) {
	tests := []struct {
		name    string
		tables  types.TrendTables
		wantErr string
	}{
		{
			name:    "missing name",
			tables:  types.TrendTables{Categories: []types.TrendCategory{{Keywords: []string{"x"}}}},
			wantErr: "name is required",
		},
		{
			name: "duplicate name",
			tables: types.TrendTables{Categories: []types.TrendCategory{
				{Name: "a", Keywords: []string{"x"}},
				{Name: "a", Keywords: []string{"y"}},
			}},
			wantErr: "duplicate name",
		},
		{
			name:    "no keywords",
			tables:  types.TrendTables{Categories: []types.TrendCategory{{Name: "a"}}},
			wantErr: "no keywords",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrend(tt.tables)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, ValidateTrend(types.TrendTables{}))
}
