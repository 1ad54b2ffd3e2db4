// Package planner loads shows from a store and runs the sequencing engine
// over them, one show at a time or several in parallel.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/sequence"
	"golang.org/x/sync/errgroup"
)

// ErrTooManySongs is returned for shows above the configured song limit.
var ErrTooManySongs = errors.New("planner: too many songs")

const (
	// DefaultMaxSongs bounds the songs of one show; generation is cubic in it.
	DefaultMaxSongs = 200

	// DefaultWorkers is the number of shows PlanMany sequences at once.
	DefaultWorkers = 4
)

// Request asks for the setlists of one stored show.
type Request struct {
	ShowID string
	Start  string
	End    string
}

// Result carries every candidate ordering, best first.
type Result struct {
	Show       store.Show
	Candidates []sequence.Candidate
}

// Option configures a Planner.
type Option func(*Planner)

// WithMaxSongs caps the number of songs per show. Values below 1 are ignored.
func WithMaxSongs(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxSongs = n
		}
	}
}

// WithWorkers bounds how many shows PlanMany sequences at once.
func WithWorkers(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.workers = n
		}
	}
}

// Planner generates setlists for shows read from a store.
// It holds no mutable state and is safe for concurrent use.
type Planner struct {
	st       store.Store
	maxSongs int
	workers  int
}

// New returns a Planner reading from st. st may be nil when only PlanItems
// is used.
func New(st store.Store, opts ...Option) *Planner {
	p := &Planner{st: st, maxSongs: DefaultMaxSongs, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Plan generates the setlists of a stored show.
func (p *Planner) Plan(ctx context.Context, req Request) (*Result, error) {
	sh, err := p.st.GetShow(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}
	songs, err := p.st.ListSongs(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}

	return p.run(ctx, sh, Items(songs), req.Start, req.End)
}

// PlanItems runs the same pipeline for a show that is not stored, such as
// one loaded from a file.
func (p *Planner) PlanItems(ctx context.Context, name string, items []sequence.Item, start, end string) (*Result, error) {
	return p.run(ctx, store.Show{Name: name}, items, start, end)
}

// PlanMany plans independent shows concurrently. Results are in request
// order; the first failure cancels the remaining requests.
func (p *Planner) PlanMany(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := p.Plan(gctx, req)
			if err != nil {
				return fmt.Errorf("show %s: %w", req.ShowID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (p *Planner) run(ctx context.Context, sh store.Show, items []sequence.Item, start, end string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(items) > p.maxSongs {
		return nil, fmt.Errorf("%w: %d songs, limit is %d", ErrTooManySongs, len(items), p.maxSongs)
	}

	cands, err := sequence.Generate(items, sequence.Options{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	return &Result{Show: sh, Candidates: cands}, nil
}

// Items converts stored songs into sequencing items: the title is the ID
// and the dancers are the tags.
func Items(songs []store.Song) []sequence.Item {
	items := make([]sequence.Item, len(songs))
	for i, s := range songs {
		items[i] = sequence.Item{ID: s.Title, Tags: s.Dancers}
	}

	return items
}
