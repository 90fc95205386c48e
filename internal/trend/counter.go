// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"sort"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// counter counts labels and remembers the order each label was first seen,
// so rankings break ties deterministically.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) inc(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// top returns the k most frequent labels, count descending, first-seen
// order among equal counts. k <= 0 returns every label.
func (c *counter) top(k int) []types.Count {
	out := make([]types.Count, len(c.order))
	for i, label := range c.order {
		out[i] = types.Count{Label: label, Count: c.counts[label]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
