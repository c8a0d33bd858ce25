package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// rootCmd is the root command for fitplan.
var rootCmd = &cobra.Command{
	Use:     "fitplan",
	Version: "dev",
	Short:   "Weekly exercise planner",
	Long: `fitplan builds a week of exercise sessions from a catalog.

Each day it picks the best-scoring unused exercise that fits the time budget,
uses equipment you have and avoids tags you exclude, preferring goal tags and
discouraging the same primary muscle two days running.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version reported by --version and the server.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "planning",
		Title: "Planning:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "catalog",
		Title: "Catalog Management:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "services",
		Title: "Services:",
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the fitplan version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	planCmd.GroupID = "planning"
	rootCmd.AddCommand(planCmd)

	importCmd.GroupID = "catalog"
	pushCmd.GroupID = "catalog"
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pushCmd)

	serveCmd.GroupID = "services"
	mcpCmd.GroupID = "services"
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
