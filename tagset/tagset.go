// SPDX-License-Identifier: MIT

package tagset

import (
	"sort"
	"strings"
)

// Set is an immutable, sorted collection of distinct tags.
// The zero value is the empty set and is ready to use.
type Set struct {
	tags []string
}

// New builds a Set from tags, dropping duplicates.
// Tags are compared verbatim; callers trim or fold case beforehand if needed.
//
// Complexity: O(k log k) time, O(k) space.
func New(tags ...string) Set {
	if len(tags) == 0 {
		return Set{}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	sort.Strings(out)

	// Compact in place: out[:w] holds the distinct prefix.
	var (
		i int
		w = 1
	)
	for i = 1; i < len(out); i++ {
		if out[i] != out[w-1] {
			out[w] = out[i]
			w++
		}
	}

	return Set{tags: out[:w]}
}

// Len reports the number of tags in s.
func (s Set) Len() int { return len(s.tags) }

// Empty reports whether s has no tags.
func (s Set) Empty() bool { return len(s.tags) == 0 }

// Tags returns a copy of the tags in ascending order.
func (s Set) Tags() []string {
	if len(s.tags) == 0 {
		return nil
	}
	out := make([]string, len(s.tags))
	copy(out, s.tags)

	return out
}

// Contains reports whether tag is a member of s.
//
// Complexity: O(log |s|).
func (s Set) Contains(tag string) bool {
	i := sort.SearchStrings(s.tags, tag)

	return i < len(s.tags) && s.tags[i] == tag
}

// Intersect returns the tags present in both s and other.
//
// Complexity: O(|s|+|other|) time, O(min(|s|,|other|)) space.
func (s Set) Intersect(other Set) Set {
	var (
		i, j int
		out  []string
	)
	for i < len(s.tags) && j < len(other.tags) {
		switch {
		case s.tags[i] < other.tags[j]:
			i++
		case s.tags[i] > other.tags[j]:
			j++
		default:
			out = append(out, s.tags[i])
			i++
			j++
		}
	}

	return Set{tags: out}
}

// IntersectLen returns |s ∩ other| without materialising the intersection.
// This is the hot-path primitive of greedy sequencing.
//
// Complexity: O(|s|+|other|) time, O(1) space.
func (s Set) IntersectLen(other Set) int {
	var i, j, n int
	for i < len(s.tags) && j < len(other.tags) {
		switch {
		case s.tags[i] < other.tags[j]:
			i++
		case s.tags[i] > other.tags[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}

	return n
}

// Equal reports whether s and other hold exactly the same tags.
func (s Set) Equal(other Set) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != other.tags[i] {
			return false
		}
	}

	return true
}

// String renders s as "{a, b, c}"; the empty set renders as "{}".
func (s Set) String() string {
	return "{" + strings.Join(s.tags, ", ") + "}"
}
