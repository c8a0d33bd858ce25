package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/fitplan/internal/models"
)

// insertBatch caps rows per INSERT to stay well below the 65535 parameter limit.
const insertBatch = 1000

const exerciseCols = 7

// ReplaceExercises swaps the stored catalog for exercises in a single transaction.
// Catalog order is kept in the position column. Returns count inserted.
func (db *DB) ReplaceExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM exercises`); err != nil {
		return 0, fmt.Errorf("clearing exercises: %w", err)
	}

	var inserted int64
	for start := 0; start < len(exercises); start += insertBatch {
		end := min(start+insertBatch, len(exercises))
		query, args := buildExerciseInsert(exercises[start:end], start)
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("inserting exercises: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing catalog: %w", err)
	}
	return inserted, nil
}

// buildExerciseInsert renders a multi-row INSERT. offset is the catalog
// position of the first row.
func buildExerciseInsert(rows []models.Exercise, offset int) (string, []any) {
	query := `INSERT INTO exercises (position, id, title, tags, time_minutes, equipment, muscles) VALUES `
	args := make([]any, 0, len(rows)*exerciseCols)
	valueStrings := make([]string, 0, len(rows))

	for i, ex := range rows {
		base := i * exerciseCols
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, offset+i, ex.ID, ex.Title, nonNil(ex.Tags), ex.TimeMinutes,
			nonNil(ex.Equipment), nonNil(ex.Muscles))
	}

	return query + strings.Join(valueStrings, ","), args
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ListExercises returns the stored catalog in its original load order.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, title, tags, time_minutes, equipment, muscles
		 FROM exercises
		 ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Title, &ex.Tags, &ex.TimeMinutes, &ex.Equipment, &ex.Muscles); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
