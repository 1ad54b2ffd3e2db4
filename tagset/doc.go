// SPDX-License-Identifier: MIT

// Package tagset implements small immutable sets of string tags
// (dancer names, resource labels) with deterministic iteration order.
//
// A Set is a sorted, duplicate-free slice. Keeping the representation a plain
// ordered slice (never a map) means that:
//   - printing, comparing and serialising a Set is reproducible;
//   - intersection is a linear merge with no hashing;
//   - a Set can be shared between goroutines without locking.
//
// Typical usage:
//
//	a := tagset.New("Ana", "Ben", "Ana")
//	b := tagset.New("Ben", "Cleo")
//	shared := a.Intersect(b)       // {Ben}
//	n := a.IntersectLen(b)         // 1, no allocation
//
// Complexity:
//   - New:          O(k log k) for k input tags.
//   - Intersect:    O(|a|+|b|).
//   - IntersectLen: O(|a|+|b|), zero allocations.
package tagset
