// SPDX-License-Identifier: MIT

package sequence

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/setlist/tagset"
)

// Sentinel errors for sequencing requests.
var (
	// ErrEmptyUniverse indicates that no items were supplied.
	ErrEmptyUniverse = errors.New("sequence: no items to schedule")

	// ErrUnknownAnchor indicates a start or end item that is not part of the
	// universe, or a start and end that name the same item.
	ErrUnknownAnchor = errors.New("sequence: unknown anchor")

	// ErrNotPermutation indicates an ordering that does not contain every item
	// of the universe exactly once.
	ErrNotPermutation = errors.New("sequence: ordering is not a permutation of the items")
)

// AnchorRole names which end of an ordering an anchor pins.
type AnchorRole string

const (
	// RoleStart pins the first position.
	RoleStart AnchorRole = "start"

	// RoleEnd pins the last position.
	RoleEnd AnchorRole = "end"
)

// AnchorError describes a rejected anchor. It unwraps to ErrUnknownAnchor.
type AnchorError struct {
	Role AnchorRole
	ID   string

	// Duplicate is set when the end anchor names the start anchor.
	Duplicate bool
}

func (e *AnchorError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("sequence: %s anchor %q is already the start anchor", e.Role, e.ID)
	}

	return fmt.Sprintf("sequence: unknown %s anchor %q", e.Role, e.ID)
}

func (e *AnchorError) Unwrap() error { return ErrUnknownAnchor }

// Item is one unit to schedule (a song) together with its raw tags (dancers).
// Tags may repeat; the index keeps each tag once.
type Item struct {
	ID   string
	Tags []string
}

// Assignment pairs an item with one tag value (a performance: song + dancer).
type Assignment struct {
	Item string
	Tag  string
}

// Options pins optional endpoints. The empty string means "not pinned".
type Options struct {
	Start string
	End   string
}

// Conflict records one adjacent pair whose tag sets intersect.
type Conflict struct {
	// Shared holds the tags both items carry.
	Shared tagset.Set

	// From is the earlier item of the pair, To the one placed right after it.
	From string
	To   string
}

// Candidate is one complete, evaluated ordering.
//
// Invariants:
//   - Order is a permutation of the universe;
//   - ConflictCount == len(Conflicts);
//   - Conflicts are listed in positional order.
type Candidate struct {
	// Rotation is the index of the rotation that produced this ordering.
	Rotation int

	Order         []string
	ConflictCount int
	Conflicts     []Conflict
}
