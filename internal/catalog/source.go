package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/claude/fitplan/internal/models"
)

// Source produces the exercise catalog in load order.
type Source interface {
	Load(ctx context.Context) ([]models.Exercise, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]models.Exercise, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) ([]models.Exercise, error) {
	return f(ctx)
}

// CSVSource reads the catalog from a CSV file on disk.
type CSVSource struct {
	Path string
}

// Load opens the file, parses it and closes it again, including on parse failure.
func (s CSVSource) Load(ctx context.Context) ([]models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, s.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, s.Path)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, s.Path, err)
	}
	defer f.Close()

	exercises, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", s.Path, err)
	}
	return exercises, nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
