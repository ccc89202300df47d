package tournamentdb

import (
	"context"
	"fmt"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UpsertVote replaces the voter's earlier vote on the same team.
func (r *Impl) UpsertVote(ctx context.Context, db bun.IDB, vote *tournamenttypes.LeaderVote) error {
	db = r.resolveDB(db)
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	vote.CreatedAt = time.Now().UTC()
	err := db.NewInsert().
		Model(vote).
		On("CONFLICT (team_id, voter_id) DO UPDATE").
		Set("candidate_id = EXCLUDED.candidate_id").
		Set("created_at = EXCLUDED.created_at").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("tournamentdb.UpsertVote: %w", err)
	}
	return nil
}

func (r *Impl) ListTeamVotes(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.LeaderVote
	if err := db.NewSelect().Model(&out).Where("lv.team_id = ?", teamID).Scan(ctx); err != nil {
		return nil, fmt.Errorf("tournamentdb.ListTeamVotes: %w", err)
	}
	return out, nil
}

func (r *Impl) ListTournamentVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.LeaderVote
	err := db.NewSelect().
		Model(&out).
		Join("JOIN teams AS tm ON tm.id = lv.team_id").
		Where("tm.tournament_id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.ListTournamentVotes: %w", err)
	}
	return out, nil
}

func (r *Impl) DeleteVotesByVoter(ctx context.Context, db bun.IDB, teamID, voterID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.LeaderVote
	_, err := db.NewDelete().
		Model((*tournamenttypes.LeaderVote)(nil)).
		Where("team_id = ?", teamID).
		Where("voter_id = ?", voterID).
		Returning("*").
		Exec(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.DeleteVotesByVoter: %w", err)
	}
	return out, nil
}

func (r *Impl) DeleteVotesForCandidate(ctx context.Context, db bun.IDB, teamID, candidateID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	db = r.resolveDB(db)
	var out []*tournamenttypes.LeaderVote
	_, err := db.NewDelete().
		Model((*tournamenttypes.LeaderVote)(nil)).
		Where("team_id = ?", teamID).
		Where("candidate_id = ?", candidateID).
		Returning("*").
		Exec(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("tournamentdb.DeleteVotesForCandidate: %w", err)
	}
	return out, nil
}
