// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import "github.com/pdiddy/paper-digest/pkg/types"

// Delta compares the current report's leading keywords with a prior
// report. Keywords missing from the prior top list are new; unchanged
// counts are omitted. A nil prior yields no changes.
func Delta(current types.TrendReport, prior *types.TrendReport) []types.KeywordChange {
	if prior == nil {
		return nil
	}

	before := make(map[string]int, len(prior.TopKeywords))
	for _, kw := range prior.TopKeywords {
		before[kw.Label] = kw.Count
	}

	var changes []types.KeywordChange
	for _, kw := range head(current.TopKeywords, DeltaKeywords) {
		was, ok := before[kw.Label]
		switch {
		case !ok || was == 0:
			changes = append(changes, types.KeywordChange{Keyword: kw.Label, Kind: types.ChangeNew})
		case kw.Count > was:
			changes = append(changes, types.KeywordChange{Keyword: kw.Label, Kind: types.ChangeUp, Amount: kw.Count - was})
		case kw.Count < was:
			changes = append(changes, types.KeywordChange{Keyword: kw.Label, Kind: types.ChangeDown, Amount: was - kw.Count})
		}
	}
	return changes
}
