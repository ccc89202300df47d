package gamedb

import (
	"context"
	"fmt"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	if err := db.NewSelect().Model(t).Where("t.id = ?", id).For("UPDATE").Scan(ctx); err != nil {
		return nil, notFound(err, "LockTournament")
	}
	return t, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	db = r.resolveDB(db)
	p := new(tournamenttypes.Player)
	if err := db.NewSelect().Model(p).Where("p.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "GetPlayer")
	}
	return p, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.Team
	err := db.NewSelect().
		Model(&out).
		Where("tm.tournament_id = ?", tournamentID).
		Order("tm.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListTeams: %w", err)
	}
	return out, nil
}

func (r *Impl) FlipAfterPick(ctx context.Context, db bun.IDB, id, expectTeam, nextTeam uuid.UUID, gameOrder int) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("status = ?", tournamenttypes.StatusPlaying).
		Set("current_pick_team = ?", nextTeam).
		Set("current_game_index = ?", gameOrder).
		Set("dice_roll_data = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", tournamenttypes.StatusPicking).
		Where("current_pick_team = ?", expectTeam).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "FlipAfterPick"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) TransitionTournament(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("gamedb.TransitionTournament: illegal transition %s -> %s", from, to)
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
	if err := casResult(err, "TransitionTournament"); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Impl) NextRound(ctx context.Context, db bun.IDB, id, nextTeam uuid.UUID) (*tournamenttypes.Tournament, error) {
	db = r.resolveDB(db)
	t := new(tournamenttypes.Tournament)
	err := db.NewUpdate().
		Model(t).
		Set("status = ?", tournamenttypes.StatusPicking).
		Set("current_pick_team = ?", nextTeam).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("status = ?", tournamenttypes.StatusScoring).
		Returning("*").
		Scan(ctx)
	if err := casResult(err, "NextRound"); err != nil {
		return nil, err
	}
	return t, nil
}
