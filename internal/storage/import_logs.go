package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportLog represents a single catalog import's outcome.
type ImportLog struct {
	ID              int64     `json:"id"`
	RunID           uuid.UUID `json:"run_id"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	FileHash        *string   `json:"file_hash"`
	Status          string    `json:"status"`
	RecordsReceived int       `json:"records_received"`
	RecordsInserted int64     `json:"records_inserted"`
	DurationMs      *int      `json:"duration_ms"`
	ErrorMessage    *string   `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (run_id, source, file_hash, status, records_received,
		 records_inserted, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		log.RunID, log.Source, log.FileHash, log.Status, log.RecordsReceived,
		log.RecordsInserted, log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// QueryImportLogs returns the most recent import logs, newest first.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, run_id, created_at, source, file_hash, status, records_received,
		 records_inserted, duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var logs []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.CreatedAt, &l.Source, &l.FileHash, &l.Status,
			&l.RecordsReceived, &l.RecordsInserted, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
