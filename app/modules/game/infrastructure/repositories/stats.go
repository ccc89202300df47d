package gamedb

import (
	"context"
	"fmt"
	"time"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UpsertPlayerStats overwrites values on (game_id, player_id, stat_key).
func (r *Impl) UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*gametypes.PlayerStat) ([]*gametypes.PlayerStat, error) {
	if len(stats) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for _, s := range stats {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.SubmittedAt = now
	}
	var out []*gametypes.PlayerStat
	err := db.NewInsert().
		Model(&stats).
		On("CONFLICT (game_id, player_id, stat_key) DO UPDATE").
		Set("stat_value = EXCLUDED.stat_value").
		Set("submitted_at = EXCLUDED.submitted_at").
		Returning("*").
		Scan(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("gamedb.UpsertPlayerStats: %w", err)
	}
	return out, nil
}

func (r *Impl) ListGameStats(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gametypes.PlayerStat, error) {
	db = r.resolveDB(db)
	var out []*gametypes.PlayerStat
	err := db.NewSelect().
		Model(&out).
		Where("ps.game_id = ?", gameID).
		Order("ps.submitted_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListGameStats: %w", err)
	}
	return out, nil
}

// UpsertGameResult keeps one result per game; a resubmission replaces it.
func (r *Impl) UpsertGameResult(ctx context.Context, db bun.IDB, result *gametypes.GameResult) error {
	db = r.resolveDB(db)
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	result.CreatedAt = time.Now().UTC()
	err := db.NewInsert().
		Model(result).
		On("CONFLICT (game_id) DO UPDATE").
		Set("winning_team_id = EXCLUDED.winning_team_id").
		Set("result_data = EXCLUDED.result_data").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.UpsertGameResult: %w", err)
	}
	return nil
}

func (r *Impl) GetGameResult(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gametypes.GameResult, error) {
	db = r.resolveDB(db)
	res := new(gametypes.GameResult)
	if err := db.NewSelect().Model(res).Where("gr.game_id = ?", gameID).Scan(ctx); err != nil {
		return nil, notFound(err, "GetGameResult")
	}
	return res, nil
}
