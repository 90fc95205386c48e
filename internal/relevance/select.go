// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"sort"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// DefaultTiers is the cascade used when configuration supplies none:
// a strict pass that needs three documents, a relaxed pass that needs
// one, and a last-resort pass capped at five.
var DefaultTiers = []types.CascadeTier{
	{MinScore: 5.0, MinCount: 3},
	{MinScore: 3.0, MinCount: 1},
	{MinScore: 1.0, MinCount: 0, Limit: 5},
}

// ScoreAll assigns RelevanceScore to every document in place.
func ScoreAll(docs []types.Document, tables *types.ScoringTables, asOf time.Time) {
	for i := range docs {
		docs[i].RelevanceScore = Score(docs[i], tables, asOf)
		docs[i].Scored = true
	}
}

// Select scores docs in place and returns the documents scoring at least
// minScore, ordered by score descending. Ties keep their input order.
func Select(docs []types.Document, tables *types.ScoringTables, minScore float64, asOf time.Time) []types.Document {
	ScoreAll(docs, tables, asOf)
	return filterRanked(docs, minScore)
}

// filterRanked returns a sorted copy of the scored documents at or above
// minScore. The input slice is left in its original order.
func filterRanked(docs []types.Document, minScore float64) []types.Document {
	out := make([]types.Document, 0, len(docs))
	for _, d := range docs {
		if d.RelevanceScore >= minScore {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

// CascadeResult is the outcome of a threshold cascade.
type CascadeResult struct {
	Documents []types.Document

	// Tier is the index of the accepted tier; -1 when no tiers were given.
	Tier int

	// Threshold is the accepted tier's MinScore.
	Threshold float64
}

// Relaxed reports whether a tier other than the strictest was accepted.
func (r CascadeResult) Relaxed() bool {
	return r.Tier > 0
}

// Cascade scores docs once, then walks tiers in order and accepts the
// first whose result holds at least MinCount documents. When none
// qualifies the last tier is accepted. Each tier re-filters the same
// scored batch, so a looser tier always returns a superset of a stricter
// one (before truncation).
func Cascade(docs []types.Document, tables *types.ScoringTables, tiers []types.CascadeTier, asOf time.Time) CascadeResult {
	ScoreAll(docs, tables, asOf)
	if len(tiers) == 0 {
		return CascadeResult{Tier: -1}
	}

	var res CascadeResult
	for i, tier := range tiers {
		selected := filterRanked(docs, tier.MinScore)
		res = CascadeResult{Documents: selected, Tier: i, Threshold: tier.MinScore}
		if len(selected) >= tier.MinCount {
			break
		}
	}

	if limit := tiers[res.Tier].Limit; limit > 0 && len(res.Documents) > limit {
		res.Documents = res.Documents[:limit]
	}
	return res
}
