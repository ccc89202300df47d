package scoreboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// DefaultHistoryLimit caps history listings when the caller passes no limit.
const DefaultHistoryLimit = 50

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new scoreboard repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	if err := db.NewSelect().Model(t).Where("t.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scoreboarddb.GetTournament: %w", err)
	}
	return t, nil
}

func (r *Impl) ListCompletedTournaments(ctx context.Context, db bun.IDB, limit int) ([]*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	var out []*tournamenttypes.Tournament
	err := db.NewSelect().
		Model(&out).
		Where("t.status = ?", tournamenttypes.StatusCompleted).
		Order("t.updated_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListCompletedTournaments: %w", err)
	}
	return out, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	if err := db.NewSelect().Model(p).Where("p.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scoreboarddb.GetPlayer: %w", err)
	}
	return p, nil
}

func (r *Impl) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error) {
	db = r.resolveDB(db)
	g := new(gametypes.Game)
	if err := db.NewSelect().Model(g).Where("g.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scoreboarddb.GetGame: %w", err)
	}
	return g, nil
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Player
	err := db.NewSelect().Model(&out).Where("p.tournament_id = ?", tournamentID).Order("p.created_at ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListPlayers: %w", err)
	}
	return out, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Team
	err := db.NewSelect().Model(&out).Where("tm.tournament_id = ?", tournamentID).Order("tm.created_at ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListTeams: %w", err)
	}
	return out, nil
}

func (r *Impl) ListVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.LeaderVote
	err := db.NewSelect().
		Model(&out).
		Where("lv.team_id IN (?)", db.NewSelect().Model((*tournamenttypes.Team)(nil)).Column("tm.id").Where("tm.tournament_id = ?", tournamentID)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListVotes: %w", err)
	}
	return out, nil
}

func (r *Impl) ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error) {
	db = r.resolveDB(db)
	var out []*gametypes.Game
	err := db.NewSelect().Model(&out).Where("g.tournament_id = ?", tournamentID).Order("g.game_order ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListGames: %w", err)
	}
	return out, nil
}

// ListGameTypes returns the built-ins plus the tournament's custom types.
func (r *Impl) ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	db = r.resolveDB(db)
	var out []*gametypes.GameType
	err := db.NewSelect().
		Model(&out).
		Where("gt.tournament_id IS NULL OR gt.tournament_id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListGameTypes: %w", err)
	}
	return out, nil
}

func (r *Impl) ListResults(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameResult, error) {
	db = r.resolveDB(db)
	var out []*gametypes.GameResult
	err := db.NewSelect().
		Model(&out).
		Join("JOIN games AS g ON g.id = gr.game_id").
		Where("g.tournament_id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListResults: %w", err)
	}
	return out, nil
}

func (r *Impl) ListTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	db = r.resolveDB(db)
	var out []*gametypes.Title
	err := db.NewSelect().Model(&out).Where("ti.tournament_id = ?", tournamentID).Order("ti.created_at ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListTitles: %w", err)
	}
	return out, nil
}

func (r *Impl) ListPlayerStats(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]*gametypes.PlayerStat, error) {
	db = r.resolveDB(db)
	var out []*gametypes.PlayerStat
	err := db.NewSelect().Model(&out).Where("ps.player_id = ?", playerID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoreboarddb.ListPlayerStats: %w", err)
	}
	return out, nil
}
