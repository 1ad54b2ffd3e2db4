package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/setlist/internal/planner"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShow(t *testing.T, st store.Store, name string, songs ...store.Song) store.Show {
	t.Helper()
	sh, err := st.CreateShow(context.Background(), name)
	require.NoError(t, err)
	for _, s := range songs {
		require.NoError(t, st.AddSong(context.Background(), sh.ID, s))
	}

	return sh
}

var recital = []store.Song{
	{Title: "A", Dancers: []string{"Ana", "Ben"}},
	{Title: "B", Dancers: []string{"Ana"}},
	{Title: "C", Dancers: []string{"Cleo"}},
	{Title: "D", Dancers: []string{"Ben", "Dev"}},
}

func TestPlanStoredShow(t *testing.T) {
	st := store.NewMemory()
	sh := seedShow(t, st, "Recital", recital...)

	res, err := planner.New(st).Plan(context.Background(), planner.Request{ShowID: sh.ID})
	require.NoError(t, err)
	assert.Equal(t, sh.ID, res.Show.ID)
	require.Len(t, res.Candidates, 4)
	assert.Equal(t, []string{"A", "C", "B", "D"}, res.Candidates[0].Order)
	assert.Zero(t, res.Candidates[0].ConflictCount)
}

func TestPlanAnchors(t *testing.T) {
	st := store.NewMemory()
	sh := seedShow(t, st, "Recital", recital...)
	p := planner.New(st)

	res, err := p.Plan(context.Background(), planner.Request{ShowID: sh.ID, Start: "D", End: "A"})
	require.NoError(t, err)
	for _, c := range res.Candidates {
		assert.Equal(t, "D", c.Order[0])
		assert.Equal(t, "A", c.Order[len(c.Order)-1])
	}

	_, err = p.Plan(context.Background(), planner.Request{ShowID: sh.ID, Start: "Z"})
	assert.ErrorIs(t, err, sequence.ErrUnknownAnchor)
}

func TestPlanErrors(t *testing.T) {
	st := store.NewMemory()
	empty := seedShow(t, st, "Empty")
	big := seedShow(t, st, "Big", recital...)

	_, err := planner.New(st).Plan(context.Background(), planner.Request{ShowID: empty.ID})
	assert.ErrorIs(t, err, sequence.ErrEmptyUniverse)

	_, err = planner.New(st).Plan(context.Background(), planner.Request{ShowID: "nope"})
	assert.ErrorIs(t, err, store.ErrShowNotFound)

	_, err = planner.New(st, planner.WithMaxSongs(3)).Plan(context.Background(), planner.Request{ShowID: big.ID})
	assert.ErrorIs(t, err, planner.ErrTooManySongs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = planner.New(st).Plan(ctx, planner.Request{ShowID: big.ID})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPlanItems(t *testing.T) {
	items := []sequence.Item{
		{ID: "X", Tags: []string{"Ana"}},
		{ID: "Y", Tags: []string{"Ana"}},
	}

	res, err := planner.New(store.NewMemory()).PlanItems(context.Background(), "file", items, "", "")
	require.NoError(t, err)
	assert.Equal(t, "file", res.Show.Name)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, 1, res.Candidates[0].ConflictCount)
}

func TestPlanManyKeepsRequestOrder(t *testing.T) {
	st := store.NewMemory()
	var reqs []planner.Request
	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		sh := seedShow(t, st, name, recital...)
		reqs = append(reqs, planner.Request{ShowID: sh.ID})
	}

	results, err := planner.New(st, planner.WithWorkers(2)).PlanMany(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, res := range results {
		assert.Equal(t, reqs[i].ShowID, res.Show.ID)
		assert.Len(t, res.Candidates, 4)
	}
}

func TestPlanManyFails(t *testing.T) {
	st := store.NewMemory()
	ok := seedShow(t, st, "Fine", recital...)

	_, err := planner.New(st).PlanMany(context.Background(), []planner.Request{
		{ShowID: ok.ID},
		{ShowID: "missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrShowNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestItems(t *testing.T) {
	items := planner.Items([]store.Song{{Title: "Solo", Dancers: []string{"Ana"}}})
	assert.Equal(t, []sequence.Item{{ID: "Solo", Tags: []string{"Ana"}}}, items)
}
