package storage

import (
	"context"
	"fmt"
	"time"
)

// CatalogStats holds aggregate statistics about the stored catalog.
type CatalogStats struct {
	TotalExercises int64       `json:"total_exercises"`
	DistinctTitles int64       `json:"distinct_titles"`
	AvgMinutes     float64     `json:"avg_minutes"`
	MinMinutes     int         `json:"min_minutes"`
	MaxMinutes     int         `json:"max_minutes"`
	LastImport     *time.Time  `json:"last_import"`
	Tags           []NameCount `json:"tags"`
	Equipment      []NameCount `json:"equipment"`
}

// NameCount is a label with the number of exercises carrying it.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetCatalogStats returns aggregate statistics for the stored catalog.
func (db *DB) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT title),
		 COALESCE(AVG(time_minutes), 0)::float8,
		 COALESCE(MIN(time_minutes), 0), COALESCE(MAX(time_minutes), 0)
		 FROM exercises`,
	).Scan(&stats.TotalExercises, &stats.DistinctTitles, &stats.AvgMinutes, &stats.MinMinutes, &stats.MaxMinutes)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MAX(created_at) FROM import_logs WHERE status = 'success'`,
	).Scan(&stats.LastImport)
	if err != nil {
		return nil, fmt.Errorf("querying last import: %w", err)
	}

	if stats.Tags, err = db.countUnnested(ctx, "tags"); err != nil {
		return nil, err
	}
	if stats.Equipment, err = db.countUnnested(ctx, "equipment"); err != nil {
		return nil, err
	}

	return stats, nil
}

// countUnnested counts exercises per element of an array column.
// column is a fixed identifier, never user input.
func (db *DB) countUnnested(ctx context.Context, column string) ([]NameCount, error) {
	rows, err := db.Pool.Query(ctx, fmt.Sprintf(
		`SELECT item, COUNT(*) FROM exercises, unnest(%s) AS item
		 GROUP BY item ORDER BY COUNT(*) DESC, item ASC`, column))
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", column, err)
	}
	defer rows.Close()

	result := []NameCount{}
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("scanning %s count: %w", column, err)
		}
		result = append(result, nc)
	}
	return result, rows.Err()
}
