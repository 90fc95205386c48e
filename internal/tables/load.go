// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// LoadScoring returns the scoring tables from the YAML file at path, or
// the built-in tables when path is empty. A file replaces the built-ins
// entirely; it is not merged.
func LoadScoring(path string) (types.ScoringTables, error) {
	if path == "" {
		return DefaultScoring(), nil
	}
	var t types.ScoringTables
	if err := readYAML(path, &t); err != nil {
		return types.ScoringTables{}, err
	}
	if err := ValidateScoring(t); err != nil {
		return types.ScoringTables{}, eris.Wrapf(err, "tables: %s", path)
	}
	return t, nil
}

// LoadTrend returns the trend tables from the YAML file at path, or the
// built-in tables when path is empty. Institution fragments are
// lowercased on load.
func LoadTrend(path string) (types.TrendTables, error) {
	if path == "" {
		return DefaultTrend(), nil
	}
	var t types.TrendTables
	if err := readYAML(path, &t); err != nil {
		return types.TrendTables{}, err
	}
	for i, inst := range t.Institutions {
		t.Institutions[i] = strings.ToLower(strings.TrimSpace(inst))
	}
	if err := ValidateTrend(t); err != nil {
		return types.TrendTables{}, eris.Wrapf(err, "tables: %s", path)
	}
	return t, nil
}

// WriteYAML marshals v to path. Used to dump the built-in tables as a
// starting point for overrides.
func WriteYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "tables: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "tables: write %s", path)
	}
	return nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "tables: read %s", path)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "tables: parse %s", path)
	}
	return nil
}

// ValidateScoring checks that a ScoringTables is internally consistent.
func ValidateScoring(t types.ScoringTables) error {
	var errs []string

	if len(t.Tiers) == 0 {
		errs = append(errs, "at least one keyword tier is required")
	}
	for i, tier := range t.Tiers {
		if tier.Name == "" {
			errs = append(errs, fmt.Sprintf("tier %d: name is required", i))
		}
		if tier.Weight < 0 || tier.TitleBonus < 0 {
			errs = append(errs, fmt.Sprintf("tier %q: weights must be >= 0", tier.Name))
		}
	}
	if t.Exclusions.Weight < 0 {
		errs = append(errs, "exclusions weight must be >= 0 (it is subtracted)")
	}
	if t.Affiliations.Weight < 0 || t.Practical.Weight < 0 || t.BonusCategories.Bonus < 0 {
		errs = append(errs, "bonus weights must be >= 0")
	}

	b := t.AuthorBands
	if b.SweetMin < 0 || b.SweetMax < b.SweetMin {
		errs = append(errs, "author_bands: need 0 <= sweet_min <= sweet_max")
	}
	if b.CrowdMax > 0 && b.CrowdMax < b.SweetMax {
		errs = append(errs, "author_bands: crowd_max must be >= sweet_max")
	}
	if b.SweetBonus < 0 || b.CrowdPenalty < 0 {
		errs = append(errs, "author_bands: bonus and penalty must be >= 0")
	}

	for i, r := range t.Recency {
		if r.MaxAgeDays < 0 {
			errs = append(errs, fmt.Sprintf("recency band %d: max_age_days must be >= 0", i))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("tables: scoring validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateTrend checks that a TrendTables is internally consistent.
func ValidateTrend(t types.TrendTables) error {
	var errs []string

	seen := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("category %d: name is required", i))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Sprintf("category %q: duplicate name", c.Name))
		}
		seen[c.Name] = true
		if len(c.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("category %q: no keywords", c.Name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("tables: trend validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
