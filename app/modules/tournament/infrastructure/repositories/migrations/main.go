package tournamentmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the tournament module schema.
var Migrations = migrate.NewMigrations()
