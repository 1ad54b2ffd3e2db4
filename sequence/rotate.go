// SPDX-License-Identifier: MIT

// Package sequence: ordering utilities.
//
// Helpers in this file operate purely on ID slices and never touch tags:
//   - Rotate: cyclic left shift used to seed every attempt.
//   - removeID: order-preserving removal of one ID from a pool.
//   - ValidateOrdering: permutation + anchor invariants of a finished ordering.
//
// All helpers return fresh slices or mutate only slices they own.
package sequence

// Rotate returns a copy of ids shifted left by r positions: the first r items
// move to the end. r is taken modulo len(ids); negative r rotates right.
//
// Example: Rotate([A B C D], 1) = [B C D A].
//
// Complexity: O(n) time, O(n) space.
func Rotate(ids []string, r int) []string {
	var n = len(ids)
	out := make([]string, n)
	if n == 0 {
		return out
	}
	r %= n
	if r < 0 {
		r += n
	}

	// Fill from r to n-1, then wrap from 0 to r-1.
	var pos = copy(out, ids[r:])
	copy(out[pos:], ids[:r])

	return out
}

// removeID deletes the first occurrence of id from pool in place, keeping the
// relative order of the remaining items. It reports whether id was found.
//
// Complexity: O(n) time, O(1) space.
func removeID(pool []string, id string) ([]string, bool) {
	for i := range pool {
		if pool[i] == id {
			return append(pool[:i], pool[i+1:]...), true
		}
	}

	return pool, false
}

// ValidateOrdering checks that order is a permutation of the universe of idx
// and that the anchors in opts occupy the first/last positions.
//
// Errors: ErrNotPermutation on a missing, unknown or repeated item;
// an *AnchorError when an anchor is misplaced.
//
// Complexity: O(n) time, O(n) space.
func ValidateOrdering(idx *Index, order []string, opts Options) error {
	if idx == nil || len(order) != idx.Len() {
		return ErrNotPermutation
	}

	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if !idx.Has(id) {
			return ErrNotPermutation
		}
		if _, dup := seen[id]; dup {
			return ErrNotPermutation
		}
		seen[id] = struct{}{}
	}

	if opts.Start != "" && order[0] != opts.Start {
		return &AnchorError{Role: RoleStart, ID: opts.Start}
	}
	if opts.End != "" && order[len(order)-1] != opts.End {
		return &AnchorError{Role: RoleEnd, ID: opts.End}
	}

	return nil
}
