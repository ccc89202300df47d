package gamemigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the game module schema. Run after the tournament migrations.
var Migrations = migrate.NewMigrations()
