package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/fitplan/internal/catalog"
)

// Stats tracks push progress.
type Stats struct {
	Exercises int
	Skipped   bool
	Sent      bool
	RunID     string
}

// Uploader pushes a local catalog file to a remote FitPlan server, skipping
// files that were already pushed unchanged.
type Uploader struct {
	client *Client
	state  *StateDB
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader.
func New(client *Client, state *StateDB, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dryRun: dryRun,
		log:    log,
	}
}

// Push validates the catalog at path locally and sends it to the server.
// A malformed catalog is rejected before any network traffic.
func (u *Uploader) Push(ctx context.Context, path string) (*Stats, error) {
	u.stats = Stats{}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return &u.stats, fmt.Errorf("resolving %s: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return &u.stats, fmt.Errorf("%w: %s: %v", catalog.ErrSourceNotFound, path, err)
	}

	exercises, err := catalog.Parse(bytes.NewReader(data))
	if err != nil {
		return &u.stats, fmt.Errorf("validating %s: %w", path, err)
	}
	u.stats.Exercises = len(exercises)

	hash := catalog.HashBytes(data)
	size := int64(len(data))
	server := u.client.ServerURL()

	pushed, err := u.state.IsPushed(server, absPath, size, hash)
	if err != nil {
		return &u.stats, fmt.Errorf("checking push state: %w", err)
	}
	if pushed {
		u.stats.Skipped = true
		u.log.Info("catalog unchanged since last push, skipping", "file", absPath, "server", server)
		return &u.stats, nil
	}

	if u.dryRun {
		u.log.Info("dry-run: would push catalog", "file", absPath, "exercises", len(exercises), "server", server)
		return &u.stats, nil
	}

	result, err := u.client.PushCatalog(ctx, data)
	if err != nil {
		return &u.stats, fmt.Errorf("pushing catalog: %w", err)
	}
	u.stats.Sent = true
	u.stats.RunID = result.RunID

	if err := u.state.MarkPushed(server, absPath, size, hash, result.RunID); err != nil {
		u.log.Warn("failed to mark pushed", "file", absPath, "error", err)
	}

	u.log.Info("catalog pushed",
		"file", absPath,
		"run_id", result.RunID,
		"inserted", result.RecordsInserted,
	)
	return &u.stats, nil
}
