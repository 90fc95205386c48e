// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Render formats a report as Slack mrkdwn text. Source tags without a
// display name in tables are shown as-is. tables may be nil.
func Render(report types.TrendReport, tables *types.TrendTables) string {
	title := cases.Title(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, ":bar_chart: *Research trends today* (%d papers)\n\n", report.TotalDocuments)

	if len(report.TopKeywords) > 0 {
		b.WriteString(":fire: *Top keywords*\n")
		for i, kw := range head(report.TopKeywords, renderedKeywords) {
			fmt.Fprintf(&b, "  %d. *%s* (%d)\n", i+1, title.String(kw.Label), kw.Count)
		}
		b.WriteString("\n")
	}

	if len(report.Categories) > 0 {
		b.WriteString(":chart_with_upwards_trend: *By area*\n")
		for _, c := range report.Categories {
			name := c.Display
			if name == "" {
				name = c.Name
			}
			fmt.Fprintf(&b, "  %s: *%s* (%d)\n", name, title.String(c.Leader), c.Total)
		}
		b.WriteString("\n")
	}

	if len(report.Emerging) > 0 {
		b.WriteString(":rocket: *Emerging technology*\n")
		for _, e := range report.Emerging {
			fmt.Fprintf(&b, "  • *%s* (%d)\n", title.String(e.Label), e.Count)
		}
		b.WriteString("\n")
	}

	if len(report.Institutions) > 0 {
		b.WriteString(":classical_building: *Active institutions*\n")
		for _, inst := range report.Institutions {
			fmt.Fprintf(&b, "  • *%s* (%d)\n", title.String(inst.Label), inst.Count)
		}
		b.WriteString("\n")
	}

	if len(report.SourceCategories) > 0 {
		b.WriteString(":books: *Active research areas*\n")
		for _, area := range head(report.SourceCategories, renderedAreas) {
			fmt.Fprintf(&b, "  • *%s* (%d)\n", displayName(area.Label, tables), area.Count)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderDelta formats keyword changes. hasPrior is false on the first run,
// when there is nothing to compare against.
func RenderDelta(changes []types.KeywordChange, hasPrior bool) string {
	if !hasPrior {
		return ":date: *Trend changes*: not enough history yet, comparison starts next run"
	}
	if len(changes) == 0 {
		return ":date: *Trend changes*: no notable movement"
	}

	title := cases.Title(language.English)
	var b strings.Builder
	b.WriteString(":date: *Trend changes*")
	for _, c := range changes {
		kw := title.String(c.Keyword)
		switch c.Kind {
		case types.ChangeNew:
			fmt.Fprintf(&b, "\n  :new: *%s* (new)", kw)
		case types.ChangeUp:
			fmt.Fprintf(&b, "\n  :chart_with_upwards_trend: *%s* (+%d)", kw, c.Amount)
		case types.ChangeDown:
			fmt.Fprintf(&b, "\n  :chart_with_downwards_trend: *%s* (-%d)", kw, c.Amount)
		}
	}
	return b.String()
}

func displayName(tag string, tables *types.TrendTables) string {
	if tables != nil {
		if name, ok := tables.CategoryNames[tag]; ok && name != "" {
			return name
		}
	}
	return tag
}

func head(counts []types.Count, n int) []types.Count {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
