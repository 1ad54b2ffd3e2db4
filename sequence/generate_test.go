// Package sequence_test exercises the multi-start driver through the public
// API: rotation semantics, anchors, error policy and the ranking contract.
package sequence_test

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/katalvlaran/setlist/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerate_Scenario pins every rotation of the canonical scenario.
//
//	r=0 pool A B C D → A C B D (0)
//	r=1 pool B C D A → B C D A (0)
//	r=2 pool C D A B → C D A B (1: A-B share y)
//	r=3 pool D A B C → D A C B (0)
func TestGenerate_Scenario(t *testing.T) {
	cands, err := sequence.Generate(scenarioItems(), sequence.Options{})
	require.NoError(t, err)
	require.Len(t, cands, 4)

	assert.Equal(t, [][]string{
		{ItemA, ItemC, ItemB, ItemD},
		{ItemB, ItemC, ItemD, ItemA},
		{ItemD, ItemA, ItemC, ItemB},
		{ItemC, ItemD, ItemA, ItemB},
	}, orders(cands))

	var rotations []int
	for _, c := range cands {
		rotations = append(rotations, c.Rotation)
	}
	assert.Equal(t, []int{0, 1, 3, 2}, rotations)

	assert.Equal(t, 0, cands[0].ConflictCount)
	assert.Empty(t, cands[0].Conflicts)

	last := cands[3]
	require.Equal(t, 1, last.ConflictCount)
	require.Len(t, last.Conflicts, 1)
	assert.Equal(t, ItemA, last.Conflicts[0].From)
	assert.Equal(t, ItemB, last.Conflicts[0].To)
	assert.Equal(t, []string{"y"}, last.Conflicts[0].Shared.Tags())
}

// TestGenerate_BothAnchors: rotations still run n times with both ends fixed
// and may still differ in the middle.
//
//	r=0,1,3 → D B C A (0)
//	r=2     → D C B A (1: B-A share y)
func TestGenerate_BothAnchors(t *testing.T) {
	opts := sequence.Options{Start: ItemD, End: ItemA}
	cands, err := sequence.Generate(scenarioItems(), opts)
	require.NoError(t, err)
	require.Len(t, cands, 4, "one attempt per rotation even with both anchors")

	assert.Equal(t, [][]string{
		{ItemD, ItemB, ItemC, ItemA},
		{ItemD, ItemB, ItemC, ItemA},
		{ItemD, ItemB, ItemC, ItemA},
		{ItemD, ItemC, ItemB, ItemA},
	}, orders(cands))
	assert.Equal(t, 2, cands[3].Rotation)
	assert.Equal(t, 1, cands[3].ConflictCount)

	assert.Len(t, sequence.Distinct(cands), 2)
}

func TestGenerate_StartOnly(t *testing.T) {
	cands, err := sequence.Generate(scenarioItems(), sequence.Options{Start: ItemB})
	require.NoError(t, err)
	require.Len(t, cands, 4)
	for _, c := range cands {
		assert.Equal(t, ItemB, c.Order[0])
	}
}

func TestGenerate_EndOnly(t *testing.T) {
	cands, err := sequence.Generate(scenarioItems(), sequence.Options{End: ItemC})
	require.NoError(t, err)
	require.Len(t, cands, 4)
	for _, c := range cands {
		assert.Equal(t, ItemC, c.Order[len(c.Order)-1])
	}
}

func TestGenerate_EmptyUniverse(t *testing.T) {
	cands, err := sequence.Generate(nil, sequence.Options{})
	assert.ErrorIs(t, err, sequence.ErrEmptyUniverse)
	assert.Nil(t, cands)

	_, err = sequence.GenerateFromIndex(nil, sequence.Options{})
	assert.ErrorIs(t, err, sequence.ErrEmptyUniverse)
}

// TestGenerate_UnknownAnchors: the request fails as a whole.
func TestGenerate_UnknownAnchors(t *testing.T) {
	cases := []struct {
		name string
		opts sequence.Options
		role sequence.AnchorRole
		dup  bool
	}{
		{"unknown start", sequence.Options{Start: "Encore"}, sequence.RoleStart, false},
		{"unknown end", sequence.Options{End: "Encore"}, sequence.RoleEnd, false},
		{"known start unknown end", sequence.Options{Start: ItemA, End: "Encore"}, sequence.RoleEnd, false},
		{"start equals end", sequence.Options{Start: ItemA, End: ItemA}, sequence.RoleEnd, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cands, err := sequence.Generate(scenarioItems(), tc.opts)
			require.ErrorIs(t, err, sequence.ErrUnknownAnchor)
			assert.Nil(t, cands, "no partial ranking on failure")

			var ae *sequence.AnchorError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.role, ae.Role)
			assert.Equal(t, tc.dup, ae.Duplicate)
			assert.NotEmpty(t, ae.Error())
		})
	}
}

// TestGenerate_SingleItem covers the degenerate universe with anchors.
func TestGenerate_SingleItem(t *testing.T) {
	items := []sequence.Item{{ID: "Solo", Tags: []string{"Cleo"}}}

	cands, err := sequence.Generate(items, sequence.Options{Start: "Solo"})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, []string{"Solo"}, cands[0].Order)

	cands, err = sequence.Generate(items, sequence.Options{End: "Solo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo"}, cands[0].Order)

	_, err = sequence.Generate(items, sequence.Options{Start: "Solo", End: "Solo"})
	assert.ErrorIs(t, err, sequence.ErrUnknownAnchor)
}

// TestGenerate_Idempotent: identical inputs yield identical outputs.
func TestGenerate_Idempotent(t *testing.T) {
	items := randomItems(rand.New(rand.NewSource(seedDet)), 15, 8, 4)
	opts := sequence.Options{Start: "S3", End: "S9"}

	first, err := sequence.Generate(items, opts)
	require.NoError(t, err)
	second, err := sequence.Generate(items, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestGenerate_Properties checks the general contracts on seeded random
// universes, with and without anchors.
func TestGenerate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))

	for round := 0; round < 25; round++ {
		n := 1 + rng.Intn(12)
		items := randomItems(rng, n, 6, 3)
		idx := mustIndex(t, items)

		var opts sequence.Options
		if n >= 2 && round%3 == 1 {
			opts = sequence.Options{Start: items[rng.Intn(n)].ID}
		}
		if n >= 2 && round%3 == 2 {
			s := rng.Intn(n)
			e := (s + 1 + rng.Intn(n-1)) % n
			opts = sequence.Options{Start: items[s].ID, End: items[e].ID}
		}

		cands, err := sequence.GenerateFromIndex(idx, opts)
		require.NoError(t, err, "round %d", round)
		require.Len(t, cands, n, "round %d: one candidate per rotation", round)

		seen := make(map[int]bool, n)
		for _, c := range cands {
			require.NoError(t, sequence.ValidateOrdering(idx, c.Order, opts), "round %d", round)
			assert.Equal(t, len(c.Conflicts), c.ConflictCount)
			assert.Equal(t, countAdjacentOverlaps(idx, c.Order), c.ConflictCount)
			assert.False(t, seen[c.Rotation], "rotation reported twice")
			seen[c.Rotation] = true
		}

		assert.True(t, sort.SliceIsSorted(cands, func(i, j int) bool {
			if cands[i].ConflictCount != cands[j].ConflictCount {
				return cands[i].ConflictCount < cands[j].ConflictCount
			}
			return cands[i].Rotation < cands[j].Rotation
		}), "round %d: sorted by count, stable by rotation", round)
	}
}
