package mcp

import (
	"context"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/models"
)

// DataSource abstracts where MCP tools read the catalog from. Local sources
// (CSV file, Postgres) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	Load(ctx context.Context) ([]models.Exercise, error)
}

// Compile-time checks.
var (
	_ DataSource = catalog.CSVSource{}
	_ DataSource = catalog.SourceFunc(nil)
)
