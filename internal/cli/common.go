package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/planner"
	"github.com/katalvlaran/setlist/internal/report"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/internal/store/memgraph"
	"github.com/katalvlaran/setlist/internal/store/sqlite"
	"github.com/spf13/cobra"
)

func (a *app) config() (*config.Config, error) {
	return config.Resolve(a.configPath)
}

// openStore opens the backend named by cfg.Store.Driver.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return store.NewMemory(), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Store.SQLite.Path)
	case config.DriverMemgraph:
		m := cfg.Store.Memgraph
		return memgraph.Open(ctx, m.URI, m.User, m.Password)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// withStore resolves the configuration, opens the store and closes it once
// fn returns.
func (a *app) withStore(cmd *cobra.Command, fn func(cfg *config.Config, st store.Store) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer st.Close()

	return fn(cfg, st)
}

func newPlanner(cfg *config.Config, st store.Store) *planner.Planner {
	return planner.New(st,
		planner.WithMaxSongs(cfg.Planner.MaxSongs),
		planner.WithWorkers(cfg.Planner.Workers),
	)
}

// displayFlags are the --top and --unique flags of the planning commands.
type displayFlags struct {
	top    int
	unique bool
}

func (d *displayFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&d.top, "top", 0, "Show only the best N setlists (0 uses the configured default)")
	cmd.Flags().BoolVar(&d.unique, "unique", false, "Hide orderings already produced by a better rotation")
}

func (d *displayFlags) options(cmd *cobra.Command, cfg *config.Config) report.Options {
	opts := report.Options{Top: cfg.Display.Top, Unique: cfg.Display.Unique}
	if cmd.Flags().Changed("top") {
		opts.Top = d.top
	}
	if cmd.Flags().Changed("unique") {
		opts.Unique = d.unique
	}

	return opts
}

// setlistOutput is the JSON document printed for one planned show.
type setlistOutput struct {
	Show     store.Show       `json:"show"`
	Total    int              `json:"total"`
	Setlists []report.Setlist `json:"setlists"`
}

func newSetlistOutput(res *planner.Result, opts report.Options) setlistOutput {
	return setlistOutput{
		Show:     res.Show,
		Total:    len(res.Candidates),
		Setlists: report.Build(res.Candidates, opts),
	}
}

func writeResult(w io.Writer, res *planner.Result, opts report.Options, asJSON bool) error {
	out := newSetlistOutput(res, opts)
	if asJSON {
		return outputJSON(w, out)
	}

	return report.WriteText(w, out.Show.Name, out.Setlists)
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
