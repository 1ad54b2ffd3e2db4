// Package memgraph implements store.Store on Memgraph (or Neo4j) through the
// Bolt protocol.
package memgraph

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// timeLayout keeps created_at sortable as a string property.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Executor runs one Cypher statement and returns all its records.
// *Driver implements it; tests substitute a mock.
type Executor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

// Driver wraps a neo4j driver connected to a Memgraph instance.
type Driver struct {
	Driver neo4j.DriverWithContext
}

// NewDriver connects and verifies connectivity.
func NewDriver(ctx context.Context, uri, username, password string) (*Driver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	log.Printf("Connected to Memgraph at %s", uri)
	return &Driver{Driver: driver}, nil
}

// ExecuteQuery runs query in an auto-routed transaction and collects all
// records.
func (d *Driver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// Close releases the driver's connections.
func (d *Driver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

// Store is a store.Store over an Executor.
//
// Writes are serialised by mu: uniqueness checks and position assignment are
// separate statements and must not interleave within this process.
type Store struct {
	exec Executor
	mu   sync.Mutex
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open connects to uri, creates indices and returns a ready Store.
func Open(ctx context.Context, uri, username, password string) (*Store, error) {
	d, err := NewDriver(ctx, uri, username, password)
	if err != nil {
		return nil, err
	}
	st := New(d)
	st.BuildIndices(ctx)

	return st, nil
}

// New returns a Store running its statements on exec.
func New(exec Executor) *Store {
	return &Store{exec: exec, now: time.Now}
}

// BuildIndices creates lookup indices. Failures are logged and skipped since
// an index may already exist.
func (s *Store) BuildIndices(ctx context.Context) {
	for _, q := range indexQueries {
		if _, err := s.exec.ExecuteQuery(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
}

// Close closes the underlying executor.
func (s *Store) Close() error {
	return s.exec.Close(context.Background())
}

func (s *Store) CreateShow(ctx context.Context, name string) (store.Show, error) {
	name, err := store.NormalizeShowName(name)
	if err != nil {
		return store.Show{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.count(ctx, CountShowsByNameQuery, map[string]any{"name": name})
	if err != nil {
		return store.Show{}, err
	}
	if n > 0 {
		return store.Show{}, store.ErrShowExists
	}

	sh := store.Show{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
	if _, err := s.exec.ExecuteQuery(ctx, CreateShowQuery, map[string]any{
		"uuid":       sh.ID,
		"name":       sh.Name,
		"created_at": sh.CreatedAt.Format(timeLayout),
	}); err != nil {
		return store.Show{}, fmt.Errorf("failed to create show: %w", err)
	}

	return sh, nil
}

func (s *Store) GetShow(ctx context.Context, id string) (store.Show, error) {
	res, err := s.exec.ExecuteQuery(ctx, GetShowQuery, map[string]any{"uuid": id})
	if err != nil {
		return store.Show{}, fmt.Errorf("failed to get show: %w", err)
	}
	if len(res.Records) == 0 {
		return store.Show{}, store.ErrShowNotFound
	}

	return showFromRecord(res.Records[0])
}

func (s *Store) ListShows(ctx context.Context) ([]store.Show, error) {
	res, err := s.exec.ExecuteQuery(ctx, ListShowsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	shows := make([]store.Show, 0, len(res.Records))
	for _, rec := range res.Records {
		sh, err := showFromRecord(rec)
		if err != nil {
			return nil, err
		}
		shows = append(shows, sh)
	}

	return shows, nil
}

func (s *Store) AddSong(ctx context.Context, showID string, song store.Song) error {
	song, err := store.NormalizeSong(song)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetShow(ctx, showID); err != nil {
		return err
	}
	n, err := s.count(ctx, CountSongsByTitleQuery, map[string]any{"show_id": showID, "title": song.Title})
	if err != nil {
		return err
	}
	if n > 0 {
		return store.ErrSongExists
	}

	dancers := make([]any, len(song.Dancers))
	for i, d := range song.Dancers {
		dancers[i] = d
	}
	if _, err := s.exec.ExecuteQuery(ctx, AddSongQuery, map[string]any{
		"show_id": showID,
		"title":   song.Title,
		"dancers": dancers,
	}); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	return nil
}

func (s *Store) DeleteSong(ctx context.Context, showID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetShow(ctx, showID); err != nil {
		return err
	}
	n, err := s.count(ctx, DeleteSongQuery, map[string]any{"show_id": showID, "title": title})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrSongNotFound
	}

	return nil
}

func (s *Store) ListSongs(ctx context.Context, showID string) ([]store.Song, error) {
	if _, err := s.GetShow(ctx, showID); err != nil {
		return nil, err
	}
	res, err := s.exec.ExecuteQuery(ctx, ListSongsQuery, map[string]any{"show_id": showID})
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	songs := make([]store.Song, 0, len(res.Records))
	for _, rec := range res.Records {
		title, _, err := neo4j.GetRecordValue[string](rec, "title")
		if err != nil {
			return nil, fmt.Errorf("bad song record: %w", err)
		}
		raw, _, err := neo4j.GetRecordValue[[]any](rec, "dancers")
		if err != nil {
			return nil, fmt.Errorf("bad dancers for %q: %w", title, err)
		}

		song := store.Song{Title: title}
		for _, v := range raw {
			if name, ok := v.(string); ok {
				song.Dancers = append(song.Dancers, name)
			}
		}
		songs = append(songs, song)
	}

	return songs, nil
}

// count runs a statement whose single record holds one integer column.
func (s *Store) count(ctx context.Context, query string, params map[string]any) (int64, error) {
	res, err := s.exec.ExecuteQuery(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if len(res.Records) == 0 || len(res.Records[0].Values) == 0 {
		return 0, nil
	}
	n, ok := res.Records[0].Values[0].(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count value %T", res.Records[0].Values[0])
	}

	return n, nil
}

func showFromRecord(rec *neo4j.Record) (store.Show, error) {
	var (
		sh      store.Show
		created string
		err     error
	)
	if sh.ID, _, err = neo4j.GetRecordValue[string](rec, "uuid"); err != nil {
		return store.Show{}, fmt.Errorf("bad show record: %w", err)
	}
	if sh.Name, _, err = neo4j.GetRecordValue[string](rec, "name"); err != nil {
		return store.Show{}, fmt.Errorf("bad show record: %w", err)
	}
	if created, _, err = neo4j.GetRecordValue[string](rec, "created_at"); err != nil {
		return store.Show{}, fmt.Errorf("bad show record: %w", err)
	}
	if sh.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return store.Show{}, fmt.Errorf("bad created_at for show %s: %w", sh.ID, err)
	}

	return sh, nil
}
