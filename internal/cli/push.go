package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/fitplan/internal/upload"
	"github.com/spf13/cobra"
)

var (
	pushServer   string
	pushFile     string
	pushAPIKey   string
	pushStateDir string
	pushDryRun   bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a CSV catalog to a remote FitPlan server",
	Long: `Validate a CSV catalog locally and POST it to a FitPlan server's catalog endpoint.

A local SQLite state database remembers what was pushed to which server, so an
unchanged file is skipped. The API key defaults to auth.api_key from the config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := cmdLogger(cmd, cfg)

		apiKey := pushAPIKey
		if apiKey == "" {
			apiKey = cfg.Auth.APIKey
		}
		if apiKey == "" && !pushDryRun {
			return fmt.Errorf("an API key is required (--api-key or auth.api_key)")
		}

		stateDir := pushStateDir
		if stateDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("locating home directory: %w", err)
			}
			stateDir = filepath.Join(home, ".fitplan-push")
		}

		state, err := upload.OpenStateDB(stateDir)
		if err != nil {
			return err
		}
		defer state.Close()

		client := upload.NewClient(pushServer, apiKey)
		stats, err := upload.New(client, state, pushDryRun, log).Push(context.Background(), pushFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case stats.Skipped:
			PrintWarning(out, "Catalog unchanged since last push, nothing sent")
		case pushDryRun:
			PrintSuccess(out, fmt.Sprintf("Dry run: %s valid, nothing sent", PrintCount(stats.Exercises, "exercise", "exercises")))
		default:
			PrintSuccess(out, fmt.Sprintf("Pushed %s to %s", PrintCount(stats.Exercises, "exercise", "exercises"), pushServer))
			PrintLabelValue(out, "Run ID", stats.RunID)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushServer, "server", "", "FitPlan server URL (e.g. http://fitplan.tailnet:80)")
	pushCmd.Flags().StringVar(&pushFile, "file", "", "CSV catalog to push")
	pushCmd.Flags().StringVar(&pushAPIKey, "api-key", "", "API key (overrides auth.api_key)")
	pushCmd.Flags().StringVar(&pushStateDir, "state-dir", "", "State directory (default ~/.fitplan-push)")
	pushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "Validate without sending")
	_ = pushCmd.MarkFlagRequired("server")
	_ = pushCmd.MarkFlagRequired("file")
}
