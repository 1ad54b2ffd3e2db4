package cli

import (
	"github.com/katalvlaran/setlist/internal/planner"
	"github.com/katalvlaran/setlist/internal/showfile"
	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		start, end string
		display    displayFlags
	)

	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate setlists for a show described in a YAML or TOML file",
		Long: `Read a show file and print its candidate setlists, fewest conflicts first.

The file lists songs with the dancers performing each one:

  name: Spring Recital
  songs:
    - title: Opening
      dancers: [Ana, Ben]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			sf, err := showfile.Load(args[0])
			if err != nil {
				return err
			}

			p := planner.New(nil, planner.WithMaxSongs(cfg.Planner.MaxSongs))
			res, err := p.PlanItems(cmd.Context(), sf.Name, sf.Items(), start, end)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), res, display.options(cmd, cfg), a.jsonOutput)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Song that must open the show")
	cmd.Flags().StringVar(&end, "end", "", "Song that must close the show")
	display.register(cmd)

	return cmd
}
