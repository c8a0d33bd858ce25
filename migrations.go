package fitplan

import "embed"

// Migrations holds the Postgres schema migrations applied by storage.RunMigrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
