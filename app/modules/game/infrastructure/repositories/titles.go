package gamedb

import (
	"context"
	"fmt"
	"time"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) insertTitles(ctx context.Context, db bun.IDB, titles []*gametypes.Title) error {
	if len(titles) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, t := range titles {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.CreatedAt = now
	}
	_, err := db.NewInsert().Model(&titles).Exec(ctx)
	return err
}

func (r *Impl) ReplaceGameTitles(ctx context.Context, db bun.IDB, gameID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error) {
	db = r.resolveDB(db)
	var removed []*gametypes.Title
	err := db.NewDelete().
		Model((*gametypes.Title)(nil)).
		Where("game_id = ?", gameID).
		Returning("*").
		Scan(ctx, &removed)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ReplaceGameTitles: delete: %w", err)
	}
	if err := r.insertTitles(ctx, db, titles); err != nil {
		return nil, fmt.Errorf("gamedb.ReplaceGameTitles: insert: %w", err)
	}
	return removed, nil
}

func (r *Impl) ReplaceGlobalTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error) {
	db = r.resolveDB(db)
	var removed []*gametypes.Title
	err := db.NewDelete().
		Model((*gametypes.Title)(nil)).
		Where("tournament_id = ?", tournamentID).
		Where("game_id IS NULL").
		Returning("*").
		Scan(ctx, &removed)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ReplaceGlobalTitles: delete: %w", err)
	}
	if err := r.insertTitles(ctx, db, titles); err != nil {
		return nil, fmt.Errorf("gamedb.ReplaceGlobalTitles: insert: %w", err)
	}
	return removed, nil
}

func (r *Impl) ListTournamentTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	db = r.resolveDB(db)
	var out []*gametypes.Title
	err := db.NewSelect().
		Model(&out).
		Where("ti.tournament_id = ?", tournamentID).
		Order("ti.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListTournamentTitles: %w", err)
	}
	return out, nil
}

func (r *Impl) RecomputeTeamTotals(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	var teams []*tournamenttypes.Team
	err := db.NewUpdate().
		Model((*tournamenttypes.Team)(nil)).
		Set(`total_points = COALESCE((
			SELECT SUM(ti.points) FROM titles AS ti
			JOIN players AS p ON p.id = ti.player_id
			WHERE p.team_id = tm.id
		), 0)`).
		Where("tm.tournament_id = ?", tournamentID).
		Returning("*").
		Scan(ctx, &teams)
	if err != nil {
		return nil, fmt.Errorf("gamedb.RecomputeTeamTotals: %w", err)
	}
	return teams, nil
}
