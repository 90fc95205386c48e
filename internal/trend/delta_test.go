// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func report(counts ...types.Count) types.TrendReport {
	return types.TrendReport{TopKeywords: counts}
}

func TestDelta(t *testing.T) {
	prior := report(
		types.Count{Label: "llm", Count: 4},
		types.Count{Label: "agent", Count: 5},
		types.Count{Label: "rag", Count: 3},
		types.Count{Label: "gone", Count: 0},
	)
	current := report(
		types.Count{Label: "llm", Count: 7},
		types.Count{Label: "rag", Count: 3},
		types.Count{Label: "agent", Count: 2},
		types.Count{Label: "diffusion", Count: 2},
		types.Count{Label: "gone", Count: 1},
		types.Count{Label: "sixth", Count: 1},
	)

	got := Delta(current, &prior)
	assert.Equal(t, []types.KeywordChange{
		{Keyword: "llm", Kind: types.ChangeUp, Amount: 3},
		{Keyword: "agent", Kind: types.ChangeDown, Amount: 3},
		{Keyword: "diffusion", Kind: types.ChangeNew},
		{Keyword: "gone", Kind: types.ChangeNew},
	}, got)
}

func TestDeltaNoPrior(t *testing.T) {
	assert.Nil(t, Delta(report(types.Count{Label: "llm", Count: 1}), nil))
}

func TestDeltaUnchanged(t *testing.T) {
	r := report(types.Count{Label: "llm", Count: 2})
	assert.Empty(t, Delta(r, &r))
}
