package upload

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB tracks which catalog files have been pushed to which server so an
// unchanged file is not re-sent.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed_catalogs (
		server    TEXT NOT NULL,
		path      TEXT NOT NULL,
		size      INTEGER NOT NULL,
		hash      TEXT NOT NULL,
		run_id    TEXT NOT NULL DEFAULT '',
		pushed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (server, path)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsPushed checks if a file was already pushed to server with the same size and hash.
func (s *StateDB) IsPushed(server, path string, size int64, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pushed_catalogs WHERE server = ? AND path = ? AND size = ? AND hash = ?`,
		server, path, size, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPushed records that a file was successfully pushed.
func (s *StateDB) MarkPushed(server, path string, size int64, hash, runID string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed_catalogs (server, path, size, hash, run_id) VALUES (?, ?, ?, ?, ?)`,
		server, path, size, hash, runID,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
