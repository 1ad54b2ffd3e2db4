// Package cli implements the setlist command line.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the string printed by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// app carries the global flags shared by every command.
type app struct {
	configPath string
	jsonOutput bool
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state, so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "setlist",
		Version: version,
		Short:   "Order recital songs so dancers get a break between numbers",
		Long: `setlist orders the songs of a show so that, as far as possible, no dancer
performs in two consecutive songs.

Shows can be kept in a store (SQLite or Memgraph) or read from a YAML/TOML file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddGroup(
		&cobra.Group{ID: "planning", Title: "Planning:"},
		&cobra.Group{ID: "shows", Title: "Show Management:"},
		&cobra.Group{ID: "service", Title: "Service:"},
	)

	for _, cmd := range []*cobra.Command{a.generateCmd(), a.planCmd()} {
		cmd.GroupID = "planning"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{a.showCmd(), a.songCmd()} {
		cmd.GroupID = "shows"
		rootCmd.AddCommand(cmd)
	}
	serveCmd := a.serveCmd()
	serveCmd.GroupID = "service"
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
