package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update matched no row.
	ErrConflict = errors.New("state changed concurrently")
	// ErrUniqueViolation is returned when an insert hits a unique index.
	ErrUniqueViolation = errors.New("unique constraint violated")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("gamedb.%s: %w", op, err)
}

func casResult(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrConflict
	}
	return fmt.Errorf("gamedb.%s: %w", op, err)
}

func (r *Impl) ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	db = r.resolveDB(db)
	var out []*gametypes.GameType
	err := db.NewSelect().
		Model(&out).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("gt.tournament_id IS NULL").WhereOr("gt.tournament_id = ?", tournamentID)
		}).
		OrderExpr("gt.tournament_id NULLS FIRST").
		Order("gt.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListGameTypes: %w", err)
	}
	return out, nil
}

func (r *Impl) GetGameType(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.GameType, error) {
	db = r.resolveDB(db)
	gt := new(gametypes.GameType)
	if err := db.NewSelect().Model(gt).Where("gt.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "GetGameType")
	}
	return gt, nil
}

func (r *Impl) CreateGameType(ctx context.Context, db bun.IDB, gt *gametypes.GameType) error {
	db = r.resolveDB(db)
	if gt.ID == uuid.Nil {
		gt.ID = uuid.New()
	}
	gt.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(gt).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("gamedb.CreateGameType: %w", err)
	}
	return nil
}

// CreateGame relies on the (tournament_id, game_order) and (tournament_id, game_type_id)
// unique indexes to reject a double pick.
func (r *Impl) CreateGame(ctx context.Context, db bun.IDB, g *gametypes.Game) error {
	db = r.resolveDB(db)
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(g).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("gamedb.CreateGame: %w", err)
	}
	return nil
}

func (r *Impl) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error) {
	db = r.resolveDB(db)
	g := new(gametypes.Game)
	if err := db.NewSelect().Model(g).Where("g.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "GetGame")
	}
	return g, nil
}

func (r *Impl) ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error) {
	db = r.resolveDB(db)
	var out []*gametypes.Game
	err := db.NewSelect().
		Model(&out).
		Where("g.tournament_id = ?", tournamentID).
		Order("g.game_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListGames: %w", err)
	}
	return out, nil
}

func (r *Impl) CountGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, status ...gametypes.Status) (int, error) {
	db = r.resolveDB(db)
	q := db.NewSelect().Model((*gametypes.Game)(nil)).Where("g.tournament_id = ?", tournamentID)
	if len(status) > 0 {
		q = q.Where("g.status IN (?)", bun.In(status))
	}
	n, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("gamedb.CountGames: %w", err)
	}
	return n, nil
}

func (r *Impl) TransitionGame(ctx context.Context, db bun.IDB, id uuid.UUID, from, to gametypes.Status) (*gametypes.Game, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("gamedb.TransitionGame: illegal transition %s -> %s", from, to)
	}
	db = r.resolveDB(db)
	g := new(gametypes.Game)
	err := db.NewUpdate().
		Model(g).
		Set("status = ?", to).
		Where("id = ?", id).
		Where("status = ?", from).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "TransitionGame"); err != nil {
		return nil, err
	}
	return g, nil
}
