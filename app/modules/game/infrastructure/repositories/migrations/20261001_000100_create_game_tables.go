package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating game_types, games, player_stats, game_results and titles tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_types (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_id UUID REFERENCES tournaments(id) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					emoji VARCHAR(16) NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					player_inputs JSONB NOT NULL DEFAULT '[]',
					referee_inputs JSONB NOT NULL DEFAULT '[]',
					title_definitions JSONB NOT NULL DEFAULT '[]',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_game_types_builtin_name
					ON game_types(name) WHERE tournament_id IS NULL;
				CREATE INDEX IF NOT EXISTS idx_game_types_tournament ON game_types(tournament_id);
			`); err != nil {
				return fmt.Errorf("failed to create game_types table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_id UUID NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
					game_type_id UUID NOT NULL REFERENCES game_types(id),
					status VARCHAR(20) NOT NULL DEFAULT 'active'
						CHECK (status IN ('pending', 'active', 'scoring', 'titles', 'completed')),
					picked_by_team UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
					game_order INT NOT NULL CHECK (game_order >= 1),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (tournament_id, game_order),
					UNIQUE (tournament_id, game_type_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS player_stats (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					stat_key VARCHAR(64) NOT NULL,
					stat_value JSONB,
					submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (game_id, player_id, stat_key)
				);
			`); err != nil {
				return fmt.Errorf("failed to create player_stats table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_results (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id UUID NOT NULL UNIQUE REFERENCES games(id) ON DELETE CASCADE,
					winning_team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
					result_data JSONB,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create game_results table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS titles (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_id UUID NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
					game_id UUID REFERENCES games(id) ON DELETE CASCADE,
					player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					title_name VARCHAR(100) NOT NULL,
					title_desc TEXT NOT NULL DEFAULT '',
					is_funny BOOLEAN NOT NULL DEFAULT FALSE,
					points NUMERIC(6, 2) NOT NULL DEFAULT 0.5,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_titles_tournament ON titles(tournament_id);
				CREATE INDEX IF NOT EXISTS idx_titles_game ON titles(game_id);
				CREATE INDEX IF NOT EXISTS idx_titles_player ON titles(player_id);
			`); err != nil {
				return fmt.Errorf("failed to create titles table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS titles;
				DROP TABLE IF EXISTS game_results;
				DROP TABLE IF EXISTS player_stats;
				DROP TABLE IF EXISTS games;
				DROP TABLE IF EXISTS game_types;
			`); err != nil {
				return fmt.Errorf("failed to drop game tables: %w", err)
			}
			return nil
		})
	})
}
