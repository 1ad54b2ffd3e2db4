// SPDX-License-Identifier: MIT

package sequence

import (
	"math"

	"github.com/katalvlaran/setlist/tagset"
)

// Sequence extends placed with every item of pool using the greedy
// minimum-overlap rule and returns the completed ordering.
//
// Algorithm:
//  1. ref = tags of the last placed item (empty set when nothing is placed).
//  2. Scan pool in its current order; score(c) = |ref ∩ tags(c)|.
//  3. Take the first c whose score is strictly below the best seen so far
//     (best starts at +∞). Equal scores never replace an earlier candidate,
//     so encounter order is the only tie-break.
//  4. Append c, remove it from pool keeping the order of the rest, repeat.
//
// The pool order therefore matters: callers pass it exactly as rotated.
// Items unknown to idx are treated as carrying no tags.
// Neither placed nor pool is modified.
//
// Complexity: O(p²·t) for p pool items with t tags each; exactly p steps.
func Sequence(idx *Index, placed, pool []string) []string {
	order := make([]string, len(placed), len(placed)+len(pool))
	copy(order, placed)
	rest := make([]string, len(pool))
	copy(rest, pool)

	var (
		ref       tagset.Set
		i, pick   int
		score     int
		bestScore int
	)
	for len(rest) > 0 {
		ref = tagset.Set{}
		if len(order) > 0 {
			ref = idx.Tags(order[len(order)-1])
		}

		pick, bestScore = -1, math.MaxInt
		for i = 0; i < len(rest); i++ {
			score = ref.IntersectLen(idx.Tags(rest[i]))
			if score < bestScore {
				pick, bestScore = i, score
				// Nothing can score strictly below zero.
				if score == 0 {
					break
				}
			}
		}

		order = append(order, rest[pick])
		rest = append(rest[:pick], rest[pick+1:]...)
	}

	return order
}
