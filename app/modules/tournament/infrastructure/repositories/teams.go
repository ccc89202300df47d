package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) CreateTeam(ctx context.Context, db bun.IDB, team *tournamenttypes.Team) error {
	db = r.resolveDB(db)
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("tournamentdb.CreateTeam: %w", err)
	}
	return nil
}

func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	team := new(tournamenttypes.Team)
	if err := db.NewSelect().Model(team).Where("tm.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetTeam: %w", err)
	}
	return team, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Team
	err := db.NewSelect().
		Model(&out).
		Where("tm.tournament_id = ?", tournamentID).
		Order("tm.created_at ASC", "tm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListTeams: %w", err)
	}
	return out, nil
}

func (r *Impl) UpdateTeamName(ctx context.Context, db bun.IDB, teamID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	team := new(tournamenttypes.Team)
	err := db.NewUpdate().
		Model(team).
		Set("name = ?", name).
		Where("id = ?", teamID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.UpdateTeamName: %w", err)
	}
	return team, nil
}
