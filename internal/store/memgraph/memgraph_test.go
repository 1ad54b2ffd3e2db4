package memgraph_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/internal/store/memgraph"
	"github.com/katalvlaran/setlist/internal/store/storetest"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraph answers the store's Cypher statements from Go maps, so the
// contract suite can run without a Memgraph instance.
type fakeGraph struct {
	mu      sync.Mutex
	shows   []map[string]any
	songs   map[string][]fakeSong
	queries []string
	closed  bool
	failOn  string
}

type fakeSong struct {
	title   string
	dancers []any
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{songs: make(map[string][]fakeSong)}
}

func record(keys []string, values ...any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func (g *fakeGraph) ExecuteQuery(_ context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.queries = append(g.queries, query)
	if g.failOn != "" && query == g.failOn {
		return neo4j.EagerResult{}, errors.New("connection reset")
	}

	var res neo4j.EagerResult
	switch query {
	case memgraph.CountShowsByNameQuery:
		var n int64
		for _, sh := range g.shows {
			if sh["name"] == params["name"] {
				n++
			}
		}
		res.Records = append(res.Records, record([]string{"n"}, n))

	case memgraph.CreateShowQuery:
		g.shows = append(g.shows, map[string]any{
			"uuid":       params["uuid"],
			"name":       params["name"],
			"created_at": params["created_at"],
		})
		res.Records = append(res.Records, record([]string{"uuid"}, params["uuid"]))

	case memgraph.GetShowQuery:
		for _, sh := range g.shows {
			if sh["uuid"] == params["uuid"] {
				res.Records = append(res.Records, showRecord(sh))
			}
		}

	case memgraph.ListShowsQuery:
		shows := append([]map[string]any(nil), g.shows...)
		sort.SliceStable(shows, func(i, j int) bool {
			ci, cj := shows[i]["created_at"].(string), shows[j]["created_at"].(string)
			if ci != cj {
				return ci < cj
			}
			return shows[i]["name"].(string) < shows[j]["name"].(string)
		})
		for _, sh := range shows {
			res.Records = append(res.Records, showRecord(sh))
		}

	case memgraph.CountSongsByTitleQuery:
		var n int64
		for _, s := range g.songs[params["show_id"].(string)] {
			if s.title == params["title"] {
				n++
			}
		}
		res.Records = append(res.Records, record([]string{"n"}, n))

	case memgraph.AddSongQuery:
		id := params["show_id"].(string)
		dancers := params["dancers"].([]any)
		g.songs[id] = append(g.songs[id], fakeSong{title: params["title"].(string), dancers: dancers})
		res.Records = append(res.Records, record([]string{"performances"}, int64(len(dancers))))

	case memgraph.DeleteSongQuery:
		id := params["show_id"].(string)
		var deleted int64
		kept := g.songs[id][:0]
		for _, s := range g.songs[id] {
			if s.title == params["title"] {
				deleted++
				continue
			}
			kept = append(kept, s)
		}
		g.songs[id] = kept
		res.Records = append(res.Records, record([]string{"deleted"}, deleted))

	case memgraph.ListSongsQuery:
		for _, s := range g.songs[params["show_id"].(string)] {
			res.Records = append(res.Records, record([]string{"title", "dancers"}, s.title, s.dancers))
		}
	}

	return res, nil
}

func (g *fakeGraph) Close(context.Context) error {
	g.closed = true
	return nil
}

func showRecord(sh map[string]any) *neo4j.Record {
	return record([]string{"uuid", "name", "created_at"}, sh["uuid"], sh["name"], sh["created_at"])
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st := memgraph.New(newFakeGraph())
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}

func TestBuildIndicesToleratesFailures(t *testing.T) {
	g := newFakeGraph()
	g.failOn = "CREATE INDEX ON :Show(uuid);"
	st := memgraph.New(g)

	st.BuildIndices(context.Background())

	assert.Len(t, g.queries, 4, "every index statement is attempted")
}

func TestCreateShowPropagatesExecutorErrors(t *testing.T) {
	g := newFakeGraph()
	g.failOn = memgraph.CreateShowQuery
	st := memgraph.New(g)

	_, err := st.CreateShow(context.Background(), "Gala")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	shows, err := st.ListShows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestAddSongSendsDancerList(t *testing.T) {
	g := newFakeGraph()
	st := memgraph.New(g)
	ctx := context.Background()

	sh, err := st.CreateShow(ctx, "Recital")
	require.NoError(t, err)
	require.NoError(t, st.AddSong(ctx, sh.ID, store.Song{Title: "Duet", Dancers: []string{"Ana", "Ben", "Ana"}}))

	songs := g.songs[sh.ID]
	require.Len(t, songs, 1)
	assert.Equal(t, []any{"Ana", "Ben"}, songs[0].dancers)
}

func TestCloseClosesExecutor(t *testing.T) {
	g := newFakeGraph()
	require.NoError(t, memgraph.New(g).Close())
	assert.True(t, g.closed)
}
