package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tournaments, players, teams and leader_votes tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS tournaments (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(100) NOT NULL,
					room_code VARCHAR(5) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'lobby'
						CHECK (status IN ('lobby', 'team_select', 'shuffling', 'picking', 'playing', 'scoring', 'completed')),
					num_games INT NOT NULL CHECK (num_games BETWEEN 1 AND 20),
					current_pick_team UUID,
					current_game_index INT NOT NULL DEFAULT 0,
					draft_turn UUID,
					draft_pick_number INT NOT NULL DEFAULT 0,
					dice_roll_data JSONB,
					referee_id UUID,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_live_room_code
					ON tournaments(room_code) WHERE status <> 'completed';
				CREATE INDEX IF NOT EXISTS idx_tournaments_status_created
					ON tournaments(status, created_at);
			`); err != nil {
				return fmt.Errorf("failed to create tournaments table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS teams (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_id UUID NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					total_points NUMERIC(10, 2) NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_teams_tournament ON teams(tournament_id, created_at);
			`); err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					tournament_id UUID NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
					name VARCHAR(100) NOT NULL,
					device_id VARCHAR(100),
					user_id VARCHAR(100),
					role VARCHAR(20) NOT NULL CHECK (role IN ('referee', 'player', 'spectator')),
					team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
					is_leader BOOLEAN NOT NULL DEFAULT FALSE,
					is_captain BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CHECK (device_id IS NOT NULL OR user_id IS NOT NULL)
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_players_tournament_device
					ON players(tournament_id, device_id) WHERE device_id IS NOT NULL;
				CREATE UNIQUE INDEX IF NOT EXISTS idx_players_tournament_user
					ON players(tournament_id, user_id) WHERE user_id IS NOT NULL;
				CREATE UNIQUE INDEX IF NOT EXISTS idx_players_one_referee
					ON players(tournament_id) WHERE role = 'referee';
				CREATE UNIQUE INDEX IF NOT EXISTS idx_players_one_leader
					ON players(team_id) WHERE is_leader;
				CREATE INDEX IF NOT EXISTS idx_players_device ON players(device_id, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_players_user ON players(user_id, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE tournaments
					ADD CONSTRAINT fk_tournaments_referee
					FOREIGN KEY (referee_id) REFERENCES players(id) ON DELETE SET NULL;
			`); err != nil {
				return fmt.Errorf("failed to add referee FK: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS leader_votes (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
					voter_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					candidate_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (team_id, voter_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create leader_votes table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tournament tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS leader_votes;
				ALTER TABLE IF EXISTS tournaments DROP CONSTRAINT IF EXISTS fk_tournaments_referee;
				DROP TABLE IF EXISTS players;
				DROP TABLE IF EXISTS teams;
				DROP TABLE IF EXISTS tournaments;
			`); err != nil {
				return fmt.Errorf("failed to drop tournament tables: %w", err)
			}
			return nil
		})
	})
}
