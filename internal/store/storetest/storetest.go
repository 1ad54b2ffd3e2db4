// Package storetest holds the behavioural contract every store.Store backend
// must satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/setlist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndGetShow", func(t *testing.T) { testCreateAndGetShow(t, newStore(t)) })
	t.Run("DuplicateShowName", func(t *testing.T) { testDuplicateShowName(t, newStore(t)) })
	t.Run("ListShows", func(t *testing.T) { testListShows(t, newStore(t)) })
	t.Run("SongsKeepInsertionOrder", func(t *testing.T) { testSongsKeepInsertionOrder(t, newStore(t)) })
	t.Run("SongValidation", func(t *testing.T) { testSongValidation(t, newStore(t)) })
	t.Run("DeleteSong", func(t *testing.T) { testDeleteSong(t, newStore(t)) })
	t.Run("UnknownShow", func(t *testing.T) { testUnknownShow(t, newStore(t)) })
	t.Run("ShowsAreIsolated", func(t *testing.T) { testShowsAreIsolated(t, newStore(t)) })
	t.Run("ConcurrentAddSong", func(t *testing.T) { testConcurrentAddSong(t, newStore(t)) })
}

func testCreateAndGetShow(t *testing.T, st store.Store) {
	ctx := context.Background()

	sh, err := st.CreateShow(ctx, "  Spring Recital ")
	require.NoError(t, err)
	assert.NotEmpty(t, sh.ID)
	assert.Equal(t, "Spring Recital", sh.Name)
	assert.False(t, sh.CreatedAt.IsZero())

	got, err := st.GetShow(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, sh.ID, got.ID)
	assert.Equal(t, sh.Name, got.Name)

	_, err = st.CreateShow(ctx, "   ")
	assert.ErrorIs(t, err, store.ErrInvalidShow)
}

func testDuplicateShowName(t *testing.T, st store.Store) {
	ctx := context.Background()

	_, err := st.CreateShow(ctx, "Gala")
	require.NoError(t, err)
	_, err = st.CreateShow(ctx, "Gala")
	assert.ErrorIs(t, err, store.ErrShowExists)
}

func testListShows(t *testing.T, st store.Store) {
	ctx := context.Background()

	shows, err := st.ListShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)

	for _, name := range []string{"Alpha", "Beta"} {
		_, err = st.CreateShow(ctx, name)
		require.NoError(t, err)
	}
	shows, err = st.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 2)

	names := []string{shows[0].Name, shows[1].Name}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, names)
}

func testSongsKeepInsertionOrder(t *testing.T, st store.Store) {
	ctx := context.Background()
	sh, err := st.CreateShow(ctx, "Recital")
	require.NoError(t, err)

	titles := []string{"Zebra", "Apple", "Mango", "Banana"}
	for i, title := range titles {
		require.NoError(t, st.AddSong(ctx, sh.ID, store.Song{
			Title:   title,
			Dancers: []string{fmt.Sprintf("dancer-%d", i), "Ana"},
		}))
	}

	for round := 0; round < 3; round++ {
		songs, err := st.ListSongs(ctx, sh.ID)
		require.NoError(t, err)
		require.Len(t, songs, len(titles))
		for i, s := range songs {
			assert.Equal(t, titles[i], s.Title, "round %d", round)
			assert.ElementsMatch(t, []string{fmt.Sprintf("dancer-%d", i), "Ana"}, s.Dancers)
		}
	}
}

func testSongValidation(t *testing.T, st store.Store) {
	ctx := context.Background()
	sh, err := st.CreateShow(ctx, "Recital")
	require.NoError(t, err)

	assert.ErrorIs(t, st.AddSong(ctx, sh.ID, store.Song{Title: " ", Dancers: []string{"Ana"}}), store.ErrInvalidSong)
	assert.ErrorIs(t, st.AddSong(ctx, sh.ID, store.Song{Title: "Solo"}), store.ErrInvalidSong)
	assert.ErrorIs(t, st.AddSong(ctx, sh.ID, store.Song{Title: "Solo", Dancers: []string{"Ana", " "}}), store.ErrInvalidSong)

	require.NoError(t, st.AddSong(ctx, sh.ID, store.Song{Title: " Solo ", Dancers: []string{" Cleo "}}))
	assert.ErrorIs(t, st.AddSong(ctx, sh.ID, store.Song{Title: "Solo", Dancers: []string{"Ana"}}), store.ErrSongExists)

	songs, err := st.ListSongs(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, store.Song{Title: "Solo", Dancers: []string{"Cleo"}}, songs[0])
}

func testDeleteSong(t *testing.T, st store.Store) {
	ctx := context.Background()
	sh, err := st.CreateShow(ctx, "Recital")
	require.NoError(t, err)

	for _, title := range []string{"One", "Two", "Three"} {
		require.NoError(t, st.AddSong(ctx, sh.ID, store.Song{Title: title, Dancers: []string{"Ana"}}))
	}
	require.NoError(t, st.DeleteSong(ctx, sh.ID, "Two"))
	assert.ErrorIs(t, st.DeleteSong(ctx, sh.ID, "Two"), store.ErrSongNotFound)

	songs, err := st.ListSongs(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "One", songs[0].Title)
	assert.Equal(t, "Three", songs[1].Title)

	// The title is free again and goes to the end.
	require.NoError(t, st.AddSong(ctx, sh.ID, store.Song{Title: "Two", Dancers: []string{"Ben"}}))
	songs, err = st.ListSongs(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, "Two", songs[2].Title)
	assert.Equal(t, []string{"Ben"}, songs[2].Dancers, "performances of the deleted song are gone")
}

func testUnknownShow(t *testing.T, st store.Store) {
	ctx := context.Background()
	const ghost = "00000000-0000-0000-0000-000000000000"

	_, err := st.GetShow(ctx, ghost)
	assert.ErrorIs(t, err, store.ErrShowNotFound)
	_, err = st.ListSongs(ctx, ghost)
	assert.ErrorIs(t, err, store.ErrShowNotFound)
	assert.ErrorIs(t, st.AddSong(ctx, ghost, store.Song{Title: "A", Dancers: []string{"Ana"}}), store.ErrShowNotFound)
	assert.ErrorIs(t, st.DeleteSong(ctx, ghost, "A"), store.ErrShowNotFound)
}

func testShowsAreIsolated(t *testing.T, st store.Store) {
	ctx := context.Background()
	a, err := st.CreateShow(ctx, "A")
	require.NoError(t, err)
	b, err := st.CreateShow(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, st.AddSong(ctx, a.ID, store.Song{Title: "Opening", Dancers: []string{"Ana"}}))
	require.NoError(t, st.AddSong(ctx, b.ID, store.Song{Title: "Opening", Dancers: []string{"Ben"}}), "titles are unique per show only")

	songs, err := st.ListSongs(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, []string{"Ben"}, songs[0].Dancers)

	require.NoError(t, st.DeleteSong(ctx, a.ID, "Opening"))
	songs, err = st.ListSongs(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, songs, 1)
}

func testConcurrentAddSong(t *testing.T, st store.Store) {
	ctx := context.Background()
	sh, err := st.CreateShow(ctx, "Busy")
	require.NoError(t, err)

	const n = 20
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = st.AddSong(ctx, sh.ID, store.Song{Title: fmt.Sprintf("S%02d", i), Dancers: []string{"Ana"}})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	songs, err := st.ListSongs(ctx, sh.ID)
	require.NoError(t, err)
	assert.Len(t, songs, n)
}
