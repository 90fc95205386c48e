// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// FormatTable writes ranked documents as a human-readable table to w.
func FormatTable(docs []types.Document, w io.Writer) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents selected.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Published", "Score", "Categories")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, d := range docs {
		published := d.PublishedAt
		if len(published) > 10 {
			published = published[:10]
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %-6.2f  %s\n",
			i+1, truncate(d.Title, 60), formatAuthors(d.Authors), published,
			d.RelevanceScore, strings.Join(d.Categories, ","))
	}

	fmt.Fprintf(w, "\n%d documents\n", len(docs))
}

// FormatJSON writes documents as indented JSON to w.
func FormatJSON(docs []types.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// FormatBreakdown writes one document's score contributions to w.
func FormatBreakdown(d types.Document, b Breakdown, w io.Writer) {
	fmt.Fprintf(w, "%s  %s\n", d.ID, d.Title)
	rows := []struct {
		label string
		value float64
	}{
		{"keywords", b.Keywords},
		{"title bonus", b.TitleBonus},
		{"affiliation", b.Affiliation},
		{"exclusions", b.Exclusions},
		{"practical", b.Practical},
		{"category", b.Category},
		{"author count", b.AuthorCount},
		{"recency", b.Recency},
	}
	for _, r := range rows {
		if r.value == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-13s %+6.2f\n", r.label, r.value)
	}
	if len(b.Matched) > 0 {
		fmt.Fprintf(w, "  matched: %s\n", strings.Join(b.Matched, ", "))
	}
	fmt.Fprintf(w, "  %-13s %6.2f\n", "total", b.Total)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
