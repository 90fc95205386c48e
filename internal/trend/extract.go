// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trend aggregates keyword, institution, and category frequencies
// across a document batch, renders the result as digest text, and compares
// a report against the previous run's.
package trend

import (
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Report sizes.
const (
	TopKeywords      = 10
	TopEmerging      = 5
	TopInstitutions  = 5
	TopSourceTags    = 8
	DeltaKeywords    = 5
	renderedKeywords = 5
	renderedAreas    = 5
)

// Extract aggregates trend statistics over docs. Every count is a presence
// count: one per document per matching label, however often it occurs.
// generatedAt is stamped on the report and has no effect on the counts.
func Extract(docs []types.Document, tables *types.TrendTables, generatedAt time.Time) types.TrendReport {
	report := types.TrendReport{
		TotalDocuments: len(docs),
		GeneratedAt:    generatedAt,
	}
	if tables == nil {
		return report
	}

	keywords := newCounter()
	emerging := newCounter()
	institutions := newCounter()
	sourceTags := newCounter()
	perCategory := make([]*counter, len(tables.Categories))
	for i := range perCategory {
		perCategory[i] = newCounter()
	}

	for _, doc := range docs {
		text := strings.ToLower(doc.Title) + " " + strings.ToLower(doc.Abstract)

		for i, cat := range tables.Categories {
			for _, kw := range cat.Keywords {
				kw = strings.ToLower(kw)
				if kw != "" && strings.Contains(text, kw) {
					perCategory[i].inc(kw)
					keywords.inc(kw)
				}
			}
		}

		for _, kw := range tables.Emerging {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(text, kw) {
				emerging.inc(kw)
			}
		}

		for _, author := range doc.Authors {
			if inst, ok := matchInstitution(author, tables.Institutions); ok {
				institutions.inc(inst)
			}
		}

		for _, tag := range doc.Categories {
			sourceTags.inc(tag)
		}
	}

	report.TopKeywords = keywords.top(TopKeywords)
	report.Emerging = emerging.top(TopEmerging)
	report.Institutions = institutions.top(TopInstitutions)
	report.SourceCategories = sourceTags.top(TopSourceTags)

	for i, cat := range tables.Categories {
		c := perCategory[i]
		leaders := c.top(1)
		if len(leaders) == 0 {
			continue
		}
		report.Categories = append(report.Categories, types.CategoryTrend{
			Name:        cat.Name,
			Display:     cat.Display,
			Leader:      leaders[0].Label,
			LeaderCount: leaders[0].Count,
			Total:       c.total(),
		})
	}

	return report
}

// matchInstitution returns the first institution fragment contained in
// the author's name.
func matchInstitution(author string, institutions []string) (string, bool) {
	lower := strings.ToLower(author)
	for _, inst := range institutions {
		if inst != "" && strings.Contains(lower, strings.ToLower(inst)) {
			return inst, true
		}
	}
	return "", false
}
