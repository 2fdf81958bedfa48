package migrations

import "github.com/uptrace/bun/migrate"

// Migrations contains all schema migrations for the generation history
// database. Each migration registers itself from its own file.
var Migrations = migrate.NewMigrations()
