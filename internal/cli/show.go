package cli

import (
	"fmt"
	"time"

	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Manage stored shows",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ *config.Config, st store.Store) error {
				sh, err := st.CreateShow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), sh)
				}
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created show %q (%s)", sh.Name, sh.ID))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List shows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ *config.Config, st store.Store) error {
				shows, err := st.ListShows(cmd.Context())
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), shows)
				}

				w := cmd.OutOrStdout()
				printSection(w, "Shows")
				if len(shows) == 0 {
					printEmptyState(w, "No shows found")
					return nil
				}
				rows := make([][]string, 0, len(shows))
				for _, sh := range shows {
					rows = append(rows, []string{sh.ID, sh.Name, sh.CreatedAt.Local().Format(time.DateTime)})
				}
				printTable(w, []string{"ID", "Name", "Created"}, rows)
				return nil
			})
		},
	})

	return cmd
}
