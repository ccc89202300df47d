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

// CreatePlayer relies on the (tournament_id, device_id) and (tournament_id, user_id) unique
// indexes so a repeated join inserts nothing.
func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, p *tournamenttypes.Player) (bool, error) {
	db = r.resolveDB(db)
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	res, err := db.NewInsert().
		Model(p).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrUniqueViolation
		}
		return false, fmt.Errorf("tournamentdb.CreatePlayer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	if err := db.NewSelect().Model(p).Where("p.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetPlayer: %w", err)
	}
	return p, nil
}

func (r *Impl) GetPlayerByIdentity(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, identity tournamenttypes.Identity) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	err := db.NewSelect().
		Model(p).
		Where("p.tournament_id = ?", tournamentID).
		Where("p.? = ?", bun.Ident(identity.Column()), identity.Value()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetPlayerByIdentity: %w", err)
	}
	return p, nil
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Player
	err := db.NewSelect().
		Model(&out).
		Where("p.tournament_id = ?", tournamentID).
		Order("p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListPlayers: %w", err)
	}
	return out, nil
}

func (r *Impl) ListTeamMembers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Player
	err := db.NewSelect().
		Model(&out).
		Where("p.team_id = ?", teamID).
		Order("p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListTeamMembers: %w", err)
	}
	return out, nil
}

func (r *Impl) RecentSessions(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity, limit int) ([]PlayerSession, error) {
	db = r.resolveDB(db)
	var players []*tournamenttypes.Player
	err := db.NewSelect().
		Model(&players).
		Where("p.? = ?", bun.Ident(identity.Column()), identity.Value()).
		Order("p.created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.RecentSessions: %w", err)
	}
	if len(players) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.TournamentID)
	}
	var tournaments []*tournamenttypes.Tournament
	if err := db.NewSelect().Model(&tournaments).Where("t.id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("tournamentdb.RecentSessions: %w", err)
	}
	byID := make(map[uuid.UUID]*tournamenttypes.Tournament, len(tournaments))
	for _, t := range tournaments {
		byID[t.ID] = t
	}

	out := make([]PlayerSession, 0, len(players))
	for _, p := range players {
		if t, ok := byID[p.TournamentID]; ok {
			out = append(out, PlayerSession{Player: p, Tournament: t})
		}
	}
	return out, nil
}

func (r *Impl) AssignTeam(ctx context.Context, db bun.IDB, playerID uuid.UUID, teamID *uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	err := db.NewUpdate().
		Model(p).
		Set("team_id = ?", teamID).
		Set("is_leader = false").
		Set("is_captain = false").
		Where("id = ?", playerID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.AssignTeam: %w", err)
	}
	return p, nil
}

func (r *Impl) DraftToTeam(ctx context.Context, db bun.IDB, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	err := db.NewUpdate().
		Model(p).
		Set("team_id = ?", teamID).
		Where("id = ?", playerID).
		Where("team_id IS NULL").
		Where("is_captain = false").
		Where("role = ?", tournamenttypes.RolePlayer).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "DraftToTeam"); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Impl) ClearTeamLeaders(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Player
	_, err := db.NewUpdate().
		Model((*tournamenttypes.Player)(nil)).
		Set("is_leader = false").
		Where("team_id = ?", teamID).
		Where("is_leader = true").
		Returning("*").
		Exec(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ClearTeamLeaders: %w", err)
	}
	return out, nil
}

func (r *Impl) SetLeader(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	err := db.NewUpdate().
		Model(p).
		Set("is_leader = true").
		Where("id = ?", playerID).
		Where("team_id IS NOT NULL").
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "SetLeader"); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Impl) MarkLeadersAsCaptains(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Player
	_, err := db.NewUpdate().
		Model((*tournamenttypes.Player)(nil)).
		Set("is_captain = true").
		Where("tournament_id = ?", tournamentID).
		Where("is_leader = true").
		Returning("*").
		Exec(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.MarkLeadersAsCaptains: %w", err)
	}
	return out, nil
}
