// SPDX-License-Identifier: MIT

package sequence

import (
	"sort"
	"strings"
)

// Rank sorts cands in place by ascending ConflictCount. The sort is stable:
// candidates with equal counts keep their generation (rotation) order.
// Nothing is dropped; presentation layers decide how many to show.
//
// Complexity: O(n log n) comparisons.
func Rank(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].ConflictCount < cands[j].ConflictCount
	})
}

// Distinct returns the candidates whose ordering has not appeared earlier in
// cands, preserving their relative order. Different rotations often converge
// on the same running order; Distinct is for displays that want each once.
//
// Complexity: O(n·m) for n candidates of m items.
func Distinct(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	seen := make(map[string]struct{}, len(cands))

	var key string
	for _, c := range cands {
		// Unit separator cannot clash with printable IDs.
		key = strings.Join(c.Order, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	return out
}
