// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores fetched documents against weighted keyword
// tables, ranks them, and applies the threshold cascade that guarantees a
// usable selection when few documents score well.
//
// Everything here is pure: the only notion of time is the asOf instant
// supplied by the caller.
package relevance

import (
	"math"
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// dateLayout is the calendar-date prefix of arXiv timestamps.
const dateLayout = "2006-01-02"

// Breakdown records each contribution to a document's score.
type Breakdown struct {
	Keywords    float64 `json:"keywords"`
	TitleBonus  float64 `json:"title_bonus"`
	Affiliation float64 `json:"affiliation"`
	Exclusions  float64 `json:"exclusions"`
	Practical   float64 `json:"practical"`
	Category    float64 `json:"category"`
	AuthorCount float64 `json:"author_count"`
	Recency     float64 `json:"recency"`

	// Matched lists the tier keywords found, in table order.
	Matched []string `json:"matched,omitempty"`

	// Total is the rounded sum of all contributions.
	Total float64 `json:"total"`
}

// Score returns the relevance score of doc under tables as of asOf,
// rounded to two decimals. The score may be negative.
func Score(doc types.Document, tables *types.ScoringTables, asOf time.Time) float64 {
	return Explain(doc, tables, asOf).Total
}

// Explain computes the same score as Score and returns every contribution.
func Explain(doc types.Document, tables *types.ScoringTables, asOf time.Time) Breakdown {
	var b Breakdown
	if tables == nil {
		return b
	}

	title := strings.ToLower(doc.Title)
	text := searchText(doc)
	authors := strings.ToLower(strings.Join(doc.Authors, ", "))

	for _, tier := range tables.Tiers {
		seen := make(map[string]bool, len(tier.Keywords))
		for _, kw := range tier.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" || seen[kw] || !strings.Contains(text, kw) {
				continue
			}
			seen[kw] = true
			b.Keywords += tier.Weight
			b.Matched = append(b.Matched, kw)
			if strings.Contains(title, kw) {
				b.TitleBonus += tier.TitleBonus
			}
		}
	}

	// First affiliation only.
	for _, aff := range tables.Affiliations.Phrases {
		if containsPhrase(authors, aff) {
			b.Affiliation = tables.Affiliations.Weight
			break
		}
	}

	for _, ex := range tables.Exclusions.Phrases {
		if containsPhrase(text, ex) {
			b.Exclusions -= tables.Exclusions.Weight
		}
	}

	for _, p := range tables.Practical.Phrases {
		if containsPhrase(text, p) {
			b.Practical += tables.Practical.Weight
		}
	}

	if hasAnyCategory(doc.Categories, tables.BonusCategories.Tags) {
		b.Category = tables.BonusCategories.Bonus
	}

	b.AuthorCount = authorAdjustment(len(doc.Authors), tables.AuthorBands)
	b.Recency = recencyBonus(doc.PublishedAt, tables.Recency, asOf)

	sum := b.Keywords + b.TitleBonus + b.Affiliation + b.Exclusions +
		b.Practical + b.Category + b.AuthorCount + b.Recency
	b.Total = round2(sum)
	return b
}

// searchText is the lowercase title and abstract joined by a space.
func searchText(doc types.Document) string {
	return strings.ToLower(doc.Title) + " " + strings.ToLower(doc.Abstract)
}

func containsPhrase(haystack, phrase string) bool {
	phrase = strings.ToLower(phrase)
	return phrase != "" && strings.Contains(haystack, phrase)
}

func hasAnyCategory(categories, bonus []string) bool {
	if len(bonus) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(bonus))
	for _, tag := range bonus {
		set[tag] = struct{}{}
	}
	for _, c := range categories {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// authorAdjustment applies the sweet-spot bonus or the crowd penalty.
// Papers without authors are left alone.
func authorAdjustment(n int, bands types.AuthorBands) float64 {
	switch {
	case n == 0:
		return 0
	case n >= bands.SweetMin && n <= bands.SweetMax:
		return bands.SweetBonus
	case bands.CrowdMax > 0 && n > bands.CrowdMax:
		return -bands.CrowdPenalty
	default:
		return 0
	}
}

// recencyBonus parses the date prefix of published and returns the bonus
// of the nearest band the age falls into. Unparseable dates earn nothing.
func recencyBonus(published string, bands []types.RecencyBand, asOf time.Time) float64 {
	if len(published) < len(dateLayout) || len(bands) == 0 {
		return 0
	}
	day, err := time.Parse(dateLayout, published[:len(dateLayout)])
	if err != nil {
		return 0
	}

	age := AgeDays(day, asOf)
	nearest := -1
	for i, band := range bands {
		if age > band.MaxAgeDays {
			continue
		}
		if nearest < 0 || band.MaxAgeDays < bands[nearest].MaxAgeDays {
			nearest = i
		}
	}
	if nearest < 0 {
		return 0
	}
	return bands[nearest].Bonus
}

// AgeDays returns the whole days between day and asOf, measured in UTC
// calendar terms. Future dates count as zero days old.
func AgeDays(day, asOf time.Time) int {
	u := asOf.UTC()
	asOfDay := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	days := int(asOfDay.Sub(day.UTC()).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
