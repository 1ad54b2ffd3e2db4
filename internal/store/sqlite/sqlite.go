// Package sqlite implements store.Store on an embedded SQLite database
// (modernc.org/sqlite, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/setlist/internal/store"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS shows (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS songs (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	show_id TEXT NOT NULL,
	title   TEXT NOT NULL,
	UNIQUE (show_id, title),
	FOREIGN KEY (show_id) REFERENCES shows(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS performances (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id INTEGER NOT NULL,
	dancer  TEXT NOT NULL,
	FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_songs_show ON songs(show_id);
CREATE INDEX IF NOT EXISTS idx_performances_song ON performances(song_id);
`

// timeLayout has fixed-width fractions so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a store.Store backed by one SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single writer connection serialises check-then-insert transactions.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) CreateShow(ctx context.Context, name string) (store.Show, error) {
	name, err := store.NormalizeShowName(name)
	if err != nil {
		return store.Show{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Show{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE name = ?`, name).Scan(&n); err != nil {
		return store.Show{}, fmt.Errorf("failed to check show name: %w", err)
	}
	if n > 0 {
		return store.Show{}, store.ErrShowExists
	}

	sh := store.Show{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO shows (id, name, created_at) VALUES (?, ?, ?)`,
		sh.ID, sh.Name, sh.CreatedAt.Format(timeLayout),
	); err != nil {
		return store.Show{}, fmt.Errorf("failed to create show: %w", err)
	}

	return sh, tx.Commit()
}

func (s *Store) GetShow(ctx context.Context, id string) (store.Show, error) {
	var (
		sh      store.Show
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM shows WHERE id = ?`, id,
	).Scan(&sh.ID, &sh.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Show{}, store.ErrShowNotFound
	}
	if err != nil {
		return store.Show{}, fmt.Errorf("failed to get show: %w", err)
	}
	if sh.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return store.Show{}, fmt.Errorf("bad created_at for show %s: %w", id, err)
	}

	return sh, nil
}

func (s *Store) ListShows(ctx context.Context) ([]store.Show, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM shows ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	defer rows.Close()

	var (
		shows   = []store.Show{}
		created string
	)
	for rows.Next() {
		var sh store.Show
		if err := rows.Scan(&sh.ID, &sh.Name, &created); err != nil {
			return nil, err
		}
		if sh.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("bad created_at for show %s: %w", sh.ID, err)
		}
		shows = append(shows, sh)
	}

	return shows, rows.Err()
}

func (s *Store) AddSong(ctx context.Context, showID string, song store.Song) error {
	song, err := store.NormalizeSong(song)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := showExists(ctx, tx, showID); err != nil {
		return err
	}

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM songs WHERE show_id = ? AND title = ?`, showID, song.Title,
	).Scan(&n); err != nil {
		return fmt.Errorf("failed to check song: %w", err)
	}
	if n > 0 {
		return store.ErrSongExists
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO songs (show_id, title) VALUES (?, ?)`, showID, song.Title)
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}
	songID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read song id: %w", err)
	}

	for _, d := range song.Dancers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO performances (song_id, dancer) VALUES (?, ?)`, songID, d); err != nil {
			return fmt.Errorf("failed to add performance: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteSong removes the song; its performances follow through ON DELETE CASCADE.
func (s *Store) DeleteSong(ctx context.Context, showID, title string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := showExists(ctx, tx, showID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE show_id = ? AND title = ?`, showID, title)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted songs: %w", err)
	}
	if n == 0 {
		return store.ErrSongNotFound
	}

	return tx.Commit()
}

// ListSongs returns songs by insertion (rowid) order, dancers likewise.
func (s *Store) ListSongs(ctx context.Context, showID string) ([]store.Song, error) {
	if _, err := s.GetShow(ctx, showID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, p.dancer
		FROM songs s
		LEFT JOIN performances p ON p.song_id = s.id
		WHERE s.show_id = ?
		ORDER BY s.id, p.id
	`, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var (
		songs  = []store.Song{}
		lastID int64 = -1
		id     int64
		title  string
		dancer sql.NullString
	)
	for rows.Next() {
		if err := rows.Scan(&id, &title, &dancer); err != nil {
			return nil, err
		}
		if id != lastID {
			songs = append(songs, store.Song{Title: title})
			lastID = id
		}
		if dancer.Valid {
			cur := &songs[len(songs)-1]
			cur.Dancers = append(cur.Dancers, dancer.String)
		}
	}

	return songs, rows.Err()
}

func showExists(ctx context.Context, tx *sql.Tx, showID string) error {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE id = ?`, showID).Scan(&n); err != nil {
		return fmt.Errorf("failed to check show: %w", err)
	}
	if n == 0 {
		return store.ErrShowNotFound
	}

	return nil
}
