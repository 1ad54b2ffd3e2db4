package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/internal/store/sqlite"
	"github.com/katalvlaran/setlist/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useSQLite points every command of the test at a fresh database file.
func useSQLite(t *testing.T) {
	t.Helper()
	color.NoColor = true
	t.Setenv("SETLIST_STORE_DRIVER", config.DriverSQLite)
	t.Setenv("SETLIST_SQLITE_PATH", filepath.Join(t.TempDir(), "setlist.db"))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func createShow(t *testing.T, name string) store.Show {
	t.Helper()
	var sh store.Show
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "--json", "show", "create", name)), &sh))
	return sh
}

func TestRootHelp(t *testing.T) {
	out := mustRun(t, "--help")
	assert.Contains(t, out, "setlist")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "serve")
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	assert.Equal(t, "1.2.3\n", mustRun(t, "--version"))
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "invalid-command")
	assert.Error(t, err)
}

func TestGenerateFromFile(t *testing.T) {
	color.NoColor = true
	path := filepath.Join("..", "showfile", "testdata", "recital.yaml")

	out := mustRun(t, "generate", path, "--top", "1")
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, "#2")

	var doc setlistOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "--json", "generate", path, "--unique")), &doc))
	assert.Equal(t, 4, doc.Total)
	require.NotEmpty(t, doc.Setlists)
	for _, s := range doc.Setlists {
		assert.Len(t, s.Order, 4)
	}

	_, err := run(t, "generate", path, "--start", "Nope")
	assert.ErrorIs(t, err, sequence.ErrUnknownAnchor)

	_, err = run(t, "generate", "missing.yaml")
	assert.Error(t, err)
}

func TestShowAndSongCommands(t *testing.T) {
	useSQLite(t)

	sh := createShow(t, "Spring Recital")
	assert.NotEmpty(t, sh.ID)

	out := mustRun(t, "show", "ls")
	assert.Contains(t, out, "Spring Recital")
	assert.Contains(t, out, sh.ID)

	mustRun(t, "song", "add", sh.ID, "A", "--dancers", "Ana, Ben")
	mustRun(t, "song", "add", sh.ID, "B", "--dancers", "Ana")
	mustRun(t, "song", "add", sh.ID, "C", "--dancers", "Cleo")
	mustRun(t, "song", "add", sh.ID, "D", "--dancers", "Ben, Dev")

	_, err := run(t, "song", "add", sh.ID, "A", "--dancers", "Eve")
	assert.ErrorIs(t, err, store.ErrSongExists)
	_, err = run(t, "song", "add", sh.ID, "E")
	assert.Error(t, err, "--dancers is required")

	var songs []store.Song
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "--json", "song", "ls", sh.ID)), &songs))
	require.Len(t, songs, 4)
	assert.Equal(t, store.Song{Title: "A", Dancers: []string{"Ana", "Ben"}}, songs[0])

	mustRun(t, "song", "rm", sh.ID, "B")
	_, err = run(t, "song", "rm", sh.ID, "B")
	assert.ErrorIs(t, err, store.ErrSongNotFound)

	out = mustRun(t, "song", "ls", sh.ID)
	assert.Contains(t, out, "Ben, Dev")
	assert.NotContains(t, out, "  B  ")
}

func TestPlanCommand(t *testing.T) {
	useSQLite(t)

	first := createShow(t, "First")
	second := createShow(t, "Second")
	for _, id := range []string{first.ID, second.ID} {
		mustRun(t, "song", "add", id, "A", "--dancers", "Ana, Ben")
		mustRun(t, "song", "add", id, "B", "--dancers", "Ana")
		mustRun(t, "song", "add", id, "C", "--dancers", "Cleo")
		mustRun(t, "song", "add", id, "D", "--dancers", "Ben, Dev")
	}

	var doc setlistOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "--json", "plan", first.ID, "--start", "D", "--end", "A")), &doc))
	assert.Equal(t, first.ID, doc.Show.ID)
	for _, s := range doc.Setlists {
		assert.Equal(t, "D", s.Order[0])
		assert.Equal(t, "A", s.Order[len(s.Order)-1])
	}

	var docs []setlistOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "--json", "plan", first.ID, second.ID)), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].Show.ID)
	assert.Equal(t, second.ID, docs[1].Show.ID)
	assert.Equal(t, []string{"A", "C", "B", "D"}, docs[1].Setlists[0].Order)

	out := mustRun(t, "plan", second.ID)
	assert.Contains(t, out, "▸ Second")
	assert.Contains(t, out, "no conflicts")

	_, err := run(t, "plan", "missing")
	assert.ErrorIs(t, err, store.ErrShowNotFound)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	st, err := openStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)
	require.NoError(t, st.Close())

	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.SQLite.Path = filepath.Join(t.TempDir(), "x.db")
	st, err = openStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, st)
	require.NoError(t, st.Close())

	cfg.Store.Driver = "postgres"
	_, err = openStore(ctx, cfg)
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("SETLIST_STORE_DRIVER", "postgres")

	_, err := run(t, "show", "ls")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
