package report

import (
	"slices"
	"strings"

	"finboard/internal/core"
)

// group sums amounts per key and remembers the order keys were first seen.
type group[K comparable] struct {
	keys   []K
	totals map[K]core.Money
}

func newGroup[K comparable]() *group[K] {
	return &group[K]{totals: make(map[K]core.Money)}
}

func (g *group[K]) add(k K, m core.Money) {
	cur, ok := g.totals[k]
	if !ok {
		g.keys = append(g.keys, k)
		cur = core.Zero
	}
	g.totals[k] = cur.Add(m)
}

func (g *group[K]) total(k K) core.Money {
	return g.totals[k]
}

// ranked returns keys by total descending. Ties keep first-seen order.
func (g *group[K]) ranked() []K {
	out := slices.Clone(g.keys)
	slices.SortStableFunc(out, func(a, b K) int {
		return g.totals[b].Cmp(g.totals[a])
	})
	return out
}

// sortedKeys returns string keys in ascending byte order.
func sortedKeys(g *group[string]) []string {
	out := slices.Clone(g.keys)
	slices.SortFunc(out, strings.Compare)
	return out
}
