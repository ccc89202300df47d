package tournamentservice

import (
	"context"
	"errors"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// notFound errors are domain failures, everything else from a lookup is infrastructure.
var notFound = []error{ErrTournamentNotFound, ErrPlayerNotFound, ErrTeamNotFound}

func failOrAbort[S any](err error) (results.OperationResult[S, error], error) {
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return fail[S](err)
		}
	}
	return abort[S](err)
}

func mapNotFound(err, to error) error {
	if errors.Is(err, tournamentdb.ErrNotFound) {
		return to
	}
	return err
}

func (s *TournamentService) lockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	t, err := s.repo.LockTournament(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTournamentNotFound)
	}
	return t, nil
}

func (s *TournamentService) getPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	p, err := s.repo.GetPlayer(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrPlayerNotFound)
	}
	return p, nil
}

func (s *TournamentService) getTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Team, error) {
	team, err := s.repo.GetTeam(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTeamNotFound)
	}
	return team, nil
}

func isReferee(t *tournamenttypes.Tournament, actorID uuid.UUID) bool {
	return t.RefereeID != nil && *t.RefereeID == actorID
}

// teamsOpen reports whether players may still change teams.
func teamsOpen(t *tournamenttypes.Tournament) bool {
	return t.Status == tournamenttypes.StatusLobby || t.Status == tournamenttypes.StatusTeamSelect
}

// maybeBeginShuffle moves team_select to shuffling once every player has a team and no draft
// is running. Losing the race to another writer is fine.
func (s *TournamentService) maybeBeginShuffle(ctx context.Context, db bun.IDB, batch *changefeed.Batch, t *tournamenttypes.Tournament, players []*tournamenttypes.Player) (*tournamenttypes.Tournament, error) {
	if t.Status != tournamenttypes.StatusTeamSelect || t.DraftInProgress() {
		return t, nil
	}
	if !tournamentdomain.AllPlayersOnTeams(players) {
		return t, nil
	}
	updated, err := s.repo.TransitionStatus(ctx, db, t.ID, tournamenttypes.StatusTeamSelect, tournamenttypes.StatusShuffling)
	if errors.Is(err, tournamentdb.ErrConflict) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	batch.Update(changefeed.TableTournaments, t, updated)
	return updated, nil
}

// cleanupVotes removes votes cast by and for playerID on teamID. It runs in a savepoint so a
// failure is logged without poisoning the surrounding transaction.
func (s *TournamentService) cleanupVotes(ctx context.Context, db bun.IDB, batch *changefeed.Batch, teamID, playerID uuid.UUID) {
	run := func(ctx context.Context, db bun.IDB) error {
		byVoter, err := s.repo.DeleteVotesByVoter(ctx, db, teamID, playerID)
		if err != nil {
			return err
		}
		forCandidate, err := s.repo.DeleteVotesForCandidate(ctx, db, teamID, playerID)
		if err != nil {
			return err
		}
		for _, v := range append(byVoter, forCandidate...) {
			batch.Delete(changefeed.TableLeaderVotes, v)
		}
		return nil
	}

	var err error
	if db == nil {
		err = run(ctx, nil)
	} else {
		err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return run(ctx, tx)
		})
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Vote cleanup failed",
			attr.ExtractCorrelationID(ctx),
			attr.UUID("team_id", teamID),
			attr.UUID("player_id", playerID),
			attr.Error(err),
		)
	}
}
