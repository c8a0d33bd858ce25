package importer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/models"
	"github.com/claude/fitplan/internal/storage"
	"github.com/google/uuid"
)

// Import log statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Store is the subset of storage.DB the importer writes to.
type Store interface {
	ReplaceExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Stats tracks import progress.
type Stats struct {
	RunID           uuid.UUID `json:"run_id"`
	FileHash        string    `json:"file_hash"`
	RecordsParsed   int       `json:"records_received"`
	RecordsInserted int64     `json:"records_inserted"`
	DuplicateTitles []string  `json:"duplicate_titles,omitempty"`
}

// Importer parses CSV catalogs and replaces the stored catalog with them.
type Importer struct {
	store  Store
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer. store may be nil in dry-run mode.
func New(store Store, log *slog.Logger, dryRun bool) *Importer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Importer{store: store, log: log, dryRun: dryRun}
}

// Import reads the CSV file at path and imports it.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Stats{}, fmt.Errorf("%w: %s: %v", catalog.ErrSourceNotFound, path, err)
	}
	return imp.ImportData(ctx, "file:"+path, data)
}

// ImportData parses a CSV catalog and, unless in dry-run mode, replaces the
// stored catalog with it. A malformed record aborts the import and leaves the
// stored catalog untouched. Every non-dry-run attempt is written to the import log.
func (imp *Importer) ImportData(ctx context.Context, source string, data []byte) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: uuid.New(), FileHash: catalog.HashBytes(data)}

	exercises, err := catalog.Parse(bytes.NewReader(data))
	if err != nil {
		imp.record(ctx, source, stats, err, start)
		return stats, fmt.Errorf("parsing %s: %w", source, err)
	}
	stats.RecordsParsed = len(exercises)

	if dups := catalog.DuplicateTitles(exercises); len(dups) > 0 {
		stats.DuplicateTitles = dups
		imp.log.Warn("duplicate titles share one weekly slot", "source", source, "titles", dups)
	}

	if imp.dryRun {
		imp.log.Info("dry run: catalog parsed, nothing stored", "source", source, "exercises", len(exercises))
		return stats, nil
	}

	inserted, err := imp.store.ReplaceExercises(ctx, exercises)
	if err != nil {
		imp.record(ctx, source, stats, err, start)
		return stats, fmt.Errorf("storing catalog: %w", err)
	}
	stats.RecordsInserted = inserted

	imp.record(ctx, source, stats, nil, start)
	imp.log.Info("catalog imported", "source", source, "run_id", stats.RunID, "exercises", inserted)
	return stats, nil
}

// record writes the outcome to the import log. Failures are logged, not returned.
func (imp *Importer) record(ctx context.Context, source string, stats *Stats, importErr error, start time.Time) {
	if imp.dryRun || imp.store == nil {
		return
	}

	durationMs := int(time.Since(start).Milliseconds())
	entry := storage.ImportLog{
		RunID:           stats.RunID,
		Source:          source,
		FileHash:        &stats.FileHash,
		Status:          StatusSuccess,
		RecordsReceived: stats.RecordsParsed,
		RecordsInserted: stats.RecordsInserted,
		DurationMs:      &durationMs,
	}
	if importErr != nil {
		entry.Status = StatusError
		msg := importErr.Error()
		entry.ErrorMessage = &msg
	}

	if _, err := imp.store.InsertImportLog(ctx, entry); err != nil {
		imp.log.Error("failed to log import", "source", source, "error", err)
	}
}
