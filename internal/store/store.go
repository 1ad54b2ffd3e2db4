// Package store defines the persistent show store consumed by the planner:
// shows, their songs in a stable order, and the dancers performing each song.
//
// Backends live in sub-packages (sqlite, memgraph); Memory is an in-process
// implementation for tests and throwaway sessions.
//
// Errors:
//
//	ErrShowNotFound  - no show with the given ID.
//	ErrShowExists    - a show with the same name already exists.
//	ErrInvalidShow   - the show name is empty or blank.
//	ErrSongExists    - the show already has a song with that title.
//	ErrSongNotFound  - the show has no song with that title.
//	ErrInvalidSong   - empty title, no dancers, or a blank dancer name.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrShowNotFound = errors.New("store: show not found")
	ErrShowExists   = errors.New("store: show name already taken")
	ErrInvalidShow  = errors.New("store: show name is empty")
	ErrSongExists   = errors.New("store: song already exists")
	ErrSongNotFound = errors.New("store: song not found")
	ErrInvalidSong  = errors.New("store: invalid song")
)

// Show groups the songs scheduled together.
type Show struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Song is a scheduled item; each dancer is one performance.
type Song struct {
	Title   string   `json:"title"`
	Dancers []string `json:"dancers"`
}

// Store persists shows and songs.
//
// ListSongs must return songs in insertion order, identically on every call:
// the planner rotates that order, so it decides how ties are broken.
type Store interface {
	CreateShow(ctx context.Context, name string) (Show, error)
	GetShow(ctx context.Context, id string) (Show, error)
	ListShows(ctx context.Context) ([]Show, error)
	AddSong(ctx context.Context, showID string, song Song) error
	DeleteSong(ctx context.Context, showID, title string) error
	ListSongs(ctx context.Context, showID string) ([]Song, error)
	Close() error
}

// ParseDancers splits the comma-separated form "Ana, Ben" into names.
// Blank entries are kept so that NormalizeSong can reject them.
func ParseDancers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return strings.Split(s, ",")
}

// NormalizeSong trims the title and dancer names and rejects songs without a
// title, without dancers, or with a blank dancer. Repeated dancers are kept
// once, in first-seen order.
func NormalizeSong(song Song) (Song, error) {
	out := Song{Title: strings.TrimSpace(song.Title)}
	if out.Title == "" {
		return Song{}, fmt.Errorf("%w: title is empty", ErrInvalidSong)
	}
	if len(song.Dancers) == 0 {
		return Song{}, fmt.Errorf("%w: %q has no dancers", ErrInvalidSong, out.Title)
	}

	seen := make(map[string]struct{}, len(song.Dancers))
	for _, d := range song.Dancers {
		d = strings.TrimSpace(d)
		if d == "" {
			return Song{}, fmt.Errorf("%w: %q has a blank dancer", ErrInvalidSong, out.Title)
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out.Dancers = append(out.Dancers, d)
	}

	return out, nil
}

// NormalizeShowName trims name and rejects an empty one.
func NormalizeShowName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidShow
	}

	return name, nil
}
