package cli

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/setlist/internal/config"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) songCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "song",
		Short: "Manage the songs of a stored show",
	}

	var dancers string
	addCmd := &cobra.Command{
		Use:   "add SHOW_ID TITLE",
		Short: "Add a song and the dancers performing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ *config.Config, st store.Store) error {
				song := store.Song{Title: args[1], Dancers: store.ParseDancers(dancers)}
				if err := st.AddSong(cmd.Context(), args[0], song); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Added %q", strings.TrimSpace(song.Title)))
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&dancers, "dancers", "", `Comma-separated dancers, e.g. "Ana, Ben"`)
	_ = addCmd.MarkFlagRequired("dancers")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm SHOW_ID TITLE",
		Short: "Remove a song and its performances",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ *config.Config, st store.Store) error {
				if err := st.DeleteSong(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Removed %q", args[1]))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls SHOW_ID",
		Short: "List the songs of a show in insertion order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ *config.Config, st store.Store) error {
				songs, err := st.ListSongs(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return outputJSON(cmd.OutOrStdout(), songs)
				}

				w := cmd.OutOrStdout()
				printSection(w, "Songs")
				if len(songs) == 0 {
					printEmptyState(w, "No songs yet")
					return nil
				}
				rows := make([][]string, 0, len(songs))
				for _, s := range songs {
					rows = append(rows, []string{s.Title, strings.Join(s.Dancers, ", ")})
				}
				printTable(w, []string{"Title", "Dancers"}, rows)
				return nil
			})
		},
	})

	return cmd
}
