// SPDX-License-Identifier: MIT

// Package sequence: request validation.
//
// Anchors are checked once against the whole universe before any rotation
// runs. Every rotation holds the same items, so a bad anchor fails all of
// them alike; the request fails as a whole instead of yielding a partial,
// misleading ranking.
package sequence

// validateAnchors verifies that the anchors of opts name items of idx and do
// not name the same item twice.
//
// Stages:
//  1. Start, if set, must be in the universe.
//  2. End, if set, must be in the universe.
//  3. End must differ from Start; once Start is taken out of the pool, the
//     same item cannot be taken out again.
//
// Complexity: O(1).
func validateAnchors(idx *Index, opts Options) error {
	if opts.Start != "" && !idx.Has(opts.Start) {
		return &AnchorError{Role: RoleStart, ID: opts.Start}
	}
	if opts.End != "" && !idx.Has(opts.End) {
		return &AnchorError{Role: RoleEnd, ID: opts.End}
	}
	if opts.End != "" && opts.End == opts.Start {
		return &AnchorError{Role: RoleEnd, ID: opts.End, Duplicate: true}
	}

	return nil
}
