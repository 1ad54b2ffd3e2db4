// SPDX-License-Identifier: MIT

package sequence

// Evaluate scores a completed ordering: every adjacent pair (order[i],
// order[i+1]) whose tag sets intersect yields one Conflict, in positional
// order. The returned count always equals len(conflicts).
//
// Complexity: O(n·t) for n items with t tags each.
func Evaluate(idx *Index, order []string) (int, []Conflict) {
	var conflicts []Conflict
	for i := 0; i+1 < len(order); i++ {
		shared := idx.Tags(order[i]).Intersect(idx.Tags(order[i+1]))
		if shared.Empty() {
			continue
		}
		conflicts = append(conflicts, Conflict{Shared: shared, From: order[i], To: order[i+1]})
	}

	return len(conflicts), conflicts
}
