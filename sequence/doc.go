// SPDX-License-Identifier: MIT

// Package sequence orders tagged items into running orders that keep shared
// tags apart.
//
// 🚀 What problem does it solve?
//
//	A show is a list of songs; every song is danced by a set of dancers.
//	When two consecutive songs share a dancer, that dancer has no time to
//	change costume or position. sequence builds running orders in which as
//	few adjacent songs as possible share a dancer, and ranks them.
//
// ✨ Pipeline (leaves first):
//
//   - NewIndex          - item → tag set, remembering the natural item order.
//   - Rotate            - cyclic left shift of the natural order, one per attempt.
//   - Sequence          - greedy: next item = first minimum overlap with the last placed one.
//   - Evaluate          - count adjacent pairs with a non-empty overlap, keep the details.
//   - Rank              - stable ascending sort by conflict count.
//   - Generate          - runs the whole pipeline once per rotation.
//
// ⚙️ Usage:
//
//	items := []sequence.Item{
//		{ID: "Opening", Tags: []string{"Ana", "Ben"}},
//		{ID: "Solo", Tags: []string{"Cleo"}},
//		{ID: "Finale", Tags: []string{"Ana", "Ben", "Cleo"}},
//	}
//	cands, err := sequence.Generate(items, sequence.Options{End: "Finale"})
//	if err != nil {
//		// ErrEmptyUniverse or ErrUnknownAnchor
//	}
//	best := cands[0] // lowest conflict count, earliest rotation on ties
//
// Determinism:
//
//	Ties between equally good next items are broken by encounter order in
//	the rotated pool, never by map iteration or randomness. Identical inputs
//	always produce identical outputs.
//
// Guarantees:
//   - exactly n candidates for n distinct items, anchors or not;
//   - every candidate is a permutation of the items;
//   - a start anchor is first and an end anchor is last in every candidate;
//   - ConflictCount == len(Conflicts).
//
// The greedy pass never backtracks, so results approximate the minimum number
// of adjacent conflicts; they do not guarantee it.
//
// Complexity:
//
//	Time   = O(n³·t) worst case (n rotations × n steps × n scans, t = tags per item)
//	Memory = O(n²) for the returned candidates
//
// The package holds no global state and performs no I/O; concurrent calls on
// independent inputs are safe.
package sequence
