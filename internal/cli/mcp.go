package cli

import (
	"context"

	fitmcp "github.com/claude/fitplan/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpServerURL string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP tool server over stdio",
	Long: `Serve the plan_week, list_exercises and explain_exercise tools over stdio
for MCP clients.

By default the configured catalog source is read directly. With --server the
catalog is fetched from a running FitPlan server instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// stdout carries the protocol; logs go to stderr.
		log := cmdLogger(cmd, cfg)

		var ds fitmcp.DataSource
		if mcpServerURL != "" {
			ds = fitmcp.NewHTTPClient(mcpServerURL)
			log.Info("mcp remote mode", "server", mcpServerURL)
		} else {
			src, _, closeSource, err := openSource(context.Background(), cfg, log)
			if err != nil {
				return err
			}
			defer closeSource()
			ds = src
		}

		s := fitmcp.New(ds, cfg.PlanConfig(), rootCmd.Version, log)
		return mcpserver.ServeStdio(s)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpServerURL, "server", "", "Read the catalog from this FitPlan server URL")
}
