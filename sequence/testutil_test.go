// Package sequence_test provides fixtures shared across the *_test.go files of
// this package: the canonical four-item scenario and a seeded generator of
// random universes for property checks.
package sequence_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/setlist/sequence"
	"github.com/stretchr/testify/require"
)

// Item IDs of the canonical scenario.
const (
	ItemA = "A"
	ItemB = "B"
	ItemC = "C"
	ItemD = "D"
)

// seedDet is the fixed seed for generated universes; tests never use time.
const seedDet = int64(7)

// scenarioItems returns A:{x,y} B:{y} C:{z} D:{}.
func scenarioItems() []sequence.Item {
	return []sequence.Item{
		{ID: ItemA, Tags: []string{"x", "y"}},
		{ID: ItemB, Tags: []string{"y"}},
		{ID: ItemC, Tags: []string{"z"}},
		{ID: ItemD},
	}
}

// randomItems builds n items named S0..S(n-1), each carrying up to maxTags
// tags drawn from a pool of poolSize dancers.
func randomItems(rng *rand.Rand, n, poolSize, maxTags int) []sequence.Item {
	items := make([]sequence.Item, n)
	for i := 0; i < n; i++ {
		k := rng.Intn(maxTags + 1)
		tags := make([]string, k)
		for j := 0; j < k; j++ {
			tags[j] = fmt.Sprintf("d%d", rng.Intn(poolSize))
		}
		items[i] = sequence.Item{ID: fmt.Sprintf("S%d", i), Tags: tags}
	}

	return items
}

// mustIndex builds an Index or fails the test.
func mustIndex(t testing.TB, items []sequence.Item) *sequence.Index {
	t.Helper()
	idx, err := sequence.NewIndex(items)
	require.NoError(t, err)

	return idx
}

// orders extracts the orderings of cands in result order.
func orders(cands []sequence.Candidate) [][]string {
	out := make([][]string, len(cands))
	for i, c := range cands {
		out[i] = c.Order
	}

	return out
}

// countAdjacentOverlaps recomputes the number of conflicting neighbours
// without going through Evaluate.
func countAdjacentOverlaps(idx *sequence.Index, order []string) int {
	var n int
	for i := 0; i+1 < len(order); i++ {
		if idx.Tags(order[i]).IntersectLen(idx.Tags(order[i+1])) > 0 {
			n++
		}
	}

	return n
}
