package cli

import (
	"context"
	"fmt"

	fitplan "github.com/claude/fitplan"
	"github.com/claude/fitplan/internal/importer"
	"github.com/claude/fitplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	importFile   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the Postgres catalog with a CSV file",
	Long: `Parse a CSV catalog and replace the Postgres catalog with it in one transaction.

The first malformed record aborts the import and leaves the stored catalog
unchanged. Every run is recorded in the import log. Use --dry-run to validate
the file without connecting to the database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := cmdLogger(cmd, cfg)
		ctx := context.Background()

		var store importer.Store
		if !importDryRun {
			if err := cfg.ValidateDatabase(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			dsn := cfg.Database.DSN()
			if err := storage.RunMigrations(dsn, fitplan.Migrations, "migrations"); err != nil {
				return err
			}
			db, err := storage.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("connecting database: %w", err)
			}
			defer db.Close()
			store = db
		}

		stats, err := importer.New(store, log, importDryRun).Import(ctx, importFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, title := range stats.DuplicateTitles {
			PrintWarning(out, fmt.Sprintf("title %q appears more than once; only one can be planned per week", title))
		}
		if importDryRun {
			PrintSuccess(out, fmt.Sprintf("Dry run: %s parsed, nothing stored", PrintCount(stats.RecordsParsed, "exercise", "exercises")))
		} else {
			PrintSuccess(out, fmt.Sprintf("Imported %s", PrintCount(int(stats.RecordsInserted), "exercise", "exercises")))
		}
		PrintLabelValue(out, "Run ID", stats.RunID)
		PrintLabelValue(out, "SHA-256", stats.FileHash)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV catalog to import")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without touching the database")
	_ = importCmd.MarkFlagRequired("file")
}
