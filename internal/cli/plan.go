package cli

import (
	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/planner"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) planCmd() *cobra.Command {
	var (
		start, end string
		display    displayFlags
	)

	cmd := &cobra.Command{
		Use:   "plan SHOW_ID...",
		Short: "Generate setlists for stored shows",
		Long: `Generate setlists for one or more stored shows. Several shows are planned
in parallel; the anchors apply to every one of them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(cfg *config.Config, st store.Store) error {
				reqs := make([]planner.Request, len(args))
				for i, id := range args {
					reqs[i] = planner.Request{ShowID: id, Start: start, End: end}
				}

				results, err := newPlanner(cfg, st).PlanMany(cmd.Context(), reqs)
				if err != nil {
					return err
				}

				opts := display.options(cmd, cfg)
				if a.jsonOutput {
					outs := make([]setlistOutput, len(results))
					for i, res := range results {
						outs[i] = newSetlistOutput(res, opts)
					}
					if len(outs) == 1 {
						return outputJSON(cmd.OutOrStdout(), outs[0])
					}
					return outputJSON(cmd.OutOrStdout(), outs)
				}

				for _, res := range results {
					if err := writeResult(cmd.OutOrStdout(), res, opts, false); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Song that must open the show")
	cmd.Flags().StringVar(&end, "end", "", "Song that must close the show")
	display.register(cmd)

	return cmd
}
