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
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update matched no row because the row moved
	// on since it was read.
	ErrConflict = errors.New("state changed concurrently")
	// ErrUniqueViolation is returned when an insert hits a unique index.
	ErrUniqueViolation = errors.New("unique constraint violated")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new tournament repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
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

// casResult maps the outcome of an UPDATE ... RETURNING that names an expected state.
func casResult(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrConflict
	}
	return fmt.Errorf("tournamentdb.%s: %w", op, err)
}

func (r *Impl) CreateTournament(ctx context.Context, db bun.IDB, t *tournamenttypes.Tournament) error {
	db = r.resolveDB(db)
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	if _, err := db.NewInsert().Model(t).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("tournamentdb.CreateTournament: %w", err)
	}
	return nil
}

func (r *Impl) GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewSelect().Model(t).Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetTournament: %w", err)
	}
	return t, nil
}

func (r *Impl) LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewSelect().Model(t).Where("t.id = ?", id).For("UPDATE").Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.LockTournament: %w", err)
	}
	return t, nil
}

func (r *Impl) GetLiveByRoomCode(ctx context.Context, db bun.IDB, code string) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewSelect().
		Model(t).
		Where("t.room_code = ?", code).
		Where("t.status <> ?", tournamenttypes.StatusCompleted).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.GetLiveByRoomCode: %w", err)
	}
	return t, nil
}

func (r *Impl) ListRefereeLobbies(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity) ([]*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Tournament
	err := db.NewSelect().
		Model(&out).
		Join("JOIN players AS p ON p.id = t.referee_id").
		Where("t.status = ?", tournamenttypes.StatusLobby).
		Where("p.? = ?", bun.Ident(identity.Column()), identity.Value()).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListRefereeLobbies: %w", err)
	}
	return out, nil
}

func (r *Impl) DeleteTournament(ctx context.Context, db bun.IDB, id uuid.UUID, expect tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewDelete().
		Model(t).
		Where("id = ?", id).
		Where("status = ?", expect).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "DeleteTournament"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) SetReferee(ctx context.Context, db bun.IDB, tournamentID, playerID uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("referee_id = ?", playerID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", tournamentID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tournamentdb.SetReferee: %w", err)
	}
	return t, nil
}

func (r *Impl) TransitionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("tournamentdb.TransitionStatus: illegal transition %s -> %s", from, to)
	}
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", from).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "TransitionStatus"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) StartTournament(ctx context.Context, db bun.IDB, id, firstPickTeam uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("status = ?", tournamenttypes.StatusTeamSelect).
		Set("current_pick_team = ?", firstPickTeam).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", tournamenttypes.StatusLobby).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "StartTournament"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) StartDraft(ctx context.Context, db bun.IDB, id, firstTurn uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("draft_turn = ?", firstTurn).
		Set("draft_pick_number = 1").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", tournamenttypes.StatusTeamSelect).
		Where("draft_turn IS NULL").
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "StartDraft"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) AdvanceDraft(ctx context.Context, db bun.IDB, id, expectTurn uuid.UUID, expectPick int, nextTurn *uuid.UUID, nextPick int) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("draft_turn = ?", nextTurn).
		Set("draft_pick_number = ?", nextPick).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", tournamenttypes.StatusTeamSelect).
		Where("draft_turn = ?", expectTurn).
		Where("draft_pick_number = ?", expectPick).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "AdvanceDraft"); err != nil {
		return nil, err
	}
	return t, nil
}

// SaveDiceRollData writes data only while the stored round still equals expectRound (or no
// roll is stored yet and expectRound is 0).
func (r *Impl) SaveDiceRollData(ctx context.Context, db bun.IDB, id uuid.UUID, expectRound int, data *tournamenttypes.DiceRollData) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	q := db.NewUpdate().
		Model(t).
		Set("dice_roll_data = ?", data).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status IN (?)", bun.In([]tournamenttypes.Status{tournamenttypes.StatusShuffling, tournamenttypes.StatusPicking}))
	if expectRound == 0 {
		q = q.Where("dice_roll_data IS NULL")
	} else {
		q = q.Where("(dice_roll_data->>'round')::int = ?", expectRound)
	}
	err := q.Returning("*").Scan(ctx)
	if err := casResult(err, "SaveDiceRollData"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) ConfirmDiceWinner(ctx context.Context, db bun.IDB, id, winner uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("current_pick_team = ?", winner).
		Set("dice_roll_data = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("(dice_roll_data->>'winner_id')::uuid = ?", winner).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "ConfirmDiceWinner"); err != nil {
		return nil, err
	}
	return t, nil
}

type lobbyRow struct {
	tournamenttypes.Tournament `bun:",extend"`

	PlayerCount int `bun:"player_count"`
}

func (r *Impl) ListLobbiesCreatedBefore(ctx context.Context, db bun.IDB, cutoff time.Time) ([]LobbyOccupancy, error) {
	db = r.resolveDB(db)
	var rows []lobbyRow
	err := db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*").
		ColumnExpr("(SELECT count(*) FROM players AS p WHERE p.tournament_id = t.id) AS player_count").
		Where("t.status = ?", tournamenttypes.StatusLobby).
		Where("t.created_at < ?", cutoff).
		Order("t.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListLobbiesCreatedBefore: %w", err)
	}
	out := make([]LobbyOccupancy, 0, len(rows))
	for i := range rows {
		t := rows[i].Tournament
		out = append(out, LobbyOccupancy{Tournament: &t, PlayerCount: rows[i].PlayerCount})
	}
	return out, nil
}
