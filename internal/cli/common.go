package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/config"
	"github.com/claude/fitplan/internal/storage"
	"github.com/spf13/cobra"
)

// loadConfig reads the --config file (if any) and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a text logger on w. --verbose forces debug level.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// cmdLogger is newLogger on the command's stderr.
func cmdLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return newLogger(cmd.ErrOrStderr(), cfg)
}

// openSource returns the configured catalog source. For postgres the returned
// DB is non-nil and closed by the returned func.
func openSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (catalog.Source, *storage.DB, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting database: %w", err)
		}
		log.Debug("catalog source", "source", config.SourcePostgres, "host", cfg.Database.Host)
		return catalog.SourceFunc(db.ListExercises), db, db.Close, nil
	default:
		log.Debug("catalog source", "source", config.SourceCSV, "path", cfg.Catalog.Path)
		return catalog.CSVSource{Path: cfg.Catalog.Path}, nil, func() {}, nil
	}
}
