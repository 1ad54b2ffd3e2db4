// SPDX-License-Identifier: MIT

// Package sequence: multi-start driver.
//
// Generate and GenerateFromIndex are the canonical entry points:
//
//   - Generate: build the tag index from items, then delegate.
//   - GenerateFromIndex: validate anchors, run one greedy attempt per rotation
//     of the natural order, evaluate each, rank the lot.
//
// Design principles:
//   - Deterministic: the rotation index is the only source of variety.
//   - Strict sentinels: ErrEmptyUniverse and ErrUnknownAnchor only.
//   - Whole-request failure: an error aborts every rotation.
package sequence

// Generate orders items once per rotation of their natural order and returns
// all candidates ranked by ascending conflict count.
//
// Contracts:
//   - len(result) == number of distinct item IDs, with or without anchors.
//   - result[k].Order is a permutation of the item IDs.
//   - opts.Start, if set, is result[k].Order[0]; opts.End, if set, is last.
//
// Errors: ErrEmptyUniverse; *AnchorError (errors.Is ErrUnknownAnchor).
//
// Complexity: O(n³·t); see package doc.
func Generate(items []Item, opts Options) ([]Candidate, error) {
	idx, err := NewIndex(items)
	if err != nil {
		return nil, err
	}

	return GenerateFromIndex(idx, opts)
}

// GenerateFromIndex is Generate over a prebuilt Index.
// The Index is only read and may be reused across calls.
func GenerateFromIndex(idx *Index, opts Options) ([]Candidate, error) {
	// Stage 1 - universe and anchors.
	if idx == nil || idx.Len() == 0 {
		return nil, ErrEmptyUniverse
	}
	if err := validateAnchors(idx, opts); err != nil {
		return nil, err
	}

	// Stage 2 - one attempt per rotation, in rotation order.
	var (
		n     = idx.Len()
		cands = make([]Candidate, 0, n)
		c     Candidate
		err   error
		r     int
	)
	for r = 0; r < n; r++ {
		if c, err = attempt(idx, r, opts); err != nil {
			return nil, err
		}
		cands = append(cands, c)
	}

	// Stage 3 - stable rank keeps rotation order among equal counts.
	Rank(cands)

	return cands, nil
}

// attempt builds and evaluates the ordering for rotation r.
//
// Steps:
//  1. pool = natural order rotated left by r.
//  2. Start anchor: take it out of pool, seed the ordering with it.
//  3. End anchor: take it out of pool, keep it for the tail.
//  4. Greedy-sequence the remaining pool in its rotated order.
//  5. Append the end anchor; evaluate.
func attempt(idx *Index, r int, opts Options) (Candidate, error) {
	var (
		pool   = Rotate(idx.order, r)
		placed = make([]string, 0, 1)
		ok     bool
	)

	if opts.Start != "" {
		if pool, ok = removeID(pool, opts.Start); !ok {
			return Candidate{}, &AnchorError{Role: RoleStart, ID: opts.Start}
		}
		placed = append(placed, opts.Start)
	}
	if opts.End != "" {
		if pool, ok = removeID(pool, opts.End); !ok {
			return Candidate{}, &AnchorError{Role: RoleEnd, ID: opts.End, Duplicate: opts.End == opts.Start}
		}
	}

	order := Sequence(idx, placed, pool)
	if opts.End != "" {
		order = append(order, opts.End)
	}

	count, conflicts := Evaluate(idx, order)

	return Candidate{
		Rotation:      r,
		Order:         order,
		ConflictCount: count,
		Conflicts:     conflicts,
	}, nil
}
