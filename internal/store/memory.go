package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a Store kept in process memory. It is safe for concurrent use.
//
// mu guards every map; songs keeps per-show slices so insertion order is
// the listing order.
type Memory struct {
	mu     sync.RWMutex
	shows  map[string]Show
	byName map[string]string // name → id
	songs  map[string][]Song // show id → songs in insertion order
	now    func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		shows:  make(map[string]Show),
		byName: make(map[string]string),
		songs:  make(map[string][]Song),
		now:    time.Now,
	}
}

func (m *Memory) CreateShow(_ context.Context, name string) (Show, error) {
	name, err := NormalizeShowName(name)
	if err != nil {
		return Show{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byName[name]; taken {
		return Show{}, ErrShowExists
	}
	sh := Show{ID: uuid.NewString(), Name: name, CreatedAt: m.now().UTC()}
	m.shows[sh.ID] = sh
	m.byName[name] = sh.ID

	return sh, nil
}

func (m *Memory) GetShow(_ context.Context, id string) (Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sh, ok := m.shows[id]
	if !ok {
		return Show{}, ErrShowNotFound
	}

	return sh, nil
}

// ListShows returns shows by creation time, then name.
func (m *Memory) ListShows(_ context.Context) ([]Show, error) {
	m.mu.RLock()
	out := make([]Show, 0, len(m.shows))
	for _, sh := range m.shows {
		out = append(out, sh)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (m *Memory) AddSong(_ context.Context, showID string, song Song) error {
	song, err := NormalizeSong(song)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shows[showID]; !ok {
		return ErrShowNotFound
	}
	for _, s := range m.songs[showID] {
		if s.Title == song.Title {
			return ErrSongExists
		}
	}
	m.songs[showID] = append(m.songs[showID], song)

	return nil
}

func (m *Memory) DeleteSong(_ context.Context, showID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shows[showID]; !ok {
		return ErrShowNotFound
	}
	songs := m.songs[showID]
	for i, s := range songs {
		if s.Title == title {
			m.songs[showID] = append(songs[:i:i], songs[i+1:]...)
			return nil
		}
	}

	return ErrSongNotFound
}

// ListSongs returns deep copies; callers may modify them freely.
func (m *Memory) ListSongs(_ context.Context, showID string) ([]Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.shows[showID]; !ok {
		return nil, ErrShowNotFound
	}
	songs := m.songs[showID]
	out := make([]Song, len(songs))
	for i, s := range songs {
		out[i] = Song{Title: s.Title, Dancers: append([]string(nil), s.Dancers...)}
	}

	return out, nil
}

func (m *Memory) Close() error { return nil }
