// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestCounter(t *testing.T) {
	c := newCounter()
	for _, l := range []string{"b", "a", "c", "a", "c", "d"} {
		c.inc(l)
	}

	assert.Equal(t, 6, c.total())
	assert.Equal(t, []types.Count{{Label: "a", Count: 2}, {Label: "c", Count: 2}}, c.top(2))
	assert.Len(t, c.top(0), 4)
	assert.Equal(t, "b", c.top(0)[2].Label)
	assert.Empty(t, newCounter().top(3))
}
