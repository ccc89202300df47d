package tournamentservice

import (
	"context"
	"errors"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type tournamentResult = results.OperationResult[*tournamenttypes.Tournament, error]

// StartTournament closes the lobby and opens team selection. The earliest team picks first.
func (s *TournamentService) StartTournament(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "StartTournament", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		return s.startTournamentLogic(ctx, db, batch, tournamentID, actorID)
	})
}

func (s *TournamentService) startTournamentLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, tournamentID, actorID uuid.UUID) (tournamentResult, error) {
	t, err := s.lockTournament(ctx, db, tournamentID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Tournament](err)
	}
	if !isReferee(t, actorID) {
		return fail[*tournamenttypes.Tournament](ErrNotReferee)
	}
	if t.Status != tournamenttypes.StatusLobby {
		return fail[*tournamenttypes.Tournament](ErrWrongPhase)
	}

	teams, err := s.repo.ListTeams(ctx, db, t.ID)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	players, err := s.repo.ListPlayers(ctx, db, t.ID)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	if len(teams) < tournamentdomain.MaxTeams {
		return fail[*tournamenttypes.Tournament](ErrInsufficientTeams)
	}
	for _, team := range teams {
		members, leaders := 0, 0
		for _, p := range players {
			if !p.IsOnTeam(team.ID) {
				continue
			}
			members++
			if p.IsLeader {
				leaders++
			}
		}
		if members == 0 {
			return fail[*tournamenttypes.Tournament](ErrInsufficientTeams)
		}
		if leaders != 1 {
			return fail[*tournamenttypes.Tournament](ErrMissingLeader)
		}
	}

	started, err := s.repo.StartTournament(ctx, db, t.ID, teams[0].ID)
	if errors.Is(err, tournamentdb.ErrConflict) {
		return fail[*tournamenttypes.Tournament](ErrConcurrentUpdate)
	}
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	batch.Update(changefeed.TableTournaments, t, started)

	current, err := s.maybeBeginShuffle(ctx, db, batch, started, players)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	return ok(current)
}

// StartDraft turns team leaders into captains and hands the first pick to the earliest team.
func (s *TournamentService) StartDraft(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "StartDraft", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if !isReferee(t, actorID) {
			return fail[*tournamenttypes.Tournament](ErrNotReferee)
		}
		if t.Status != tournamenttypes.StatusTeamSelect {
			return fail[*tournamenttypes.Tournament](ErrWrongPhase)
		}
		if t.DraftInProgress() {
			return fail[*tournamenttypes.Tournament](ErrDraftInProgress)
		}

		teams, err := s.repo.ListTeams(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		pair, err := tournamentdomain.TeamPair(teams)
		if err != nil {
			return fail[*tournamenttypes.Tournament](ErrInsufficientTeams)
		}
		players, err := s.repo.ListPlayers(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		if len(tournamentdomain.RemainingDraftPool(players)) == 0 {
			return fail[*tournamenttypes.Tournament](ErrNothingToDraft)
		}

		captains, err := s.repo.MarkLeadersAsCaptains(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		for _, c := range captains {
			batch.Update(changefeed.TablePlayers, nil, c)
		}

		updated, err := s.repo.StartDraft(ctx, db, t.ID, tournamentdomain.DraftTurnFor(1, pair))
		if errors.Is(err, tournamentdb.ErrConflict) {
			return abort[*tournamenttypes.Tournament](ErrConcurrentUpdate)
		}
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		batch.Update(changefeed.TableTournaments, t, updated)
		return ok(updated)
	})
}

// DraftPlayer lets the captain on the clock take an undrafted player. Turns follow the snake
// order and the draft ends once the pool is empty.
func (s *TournamentService) DraftPlayer(ctx context.Context, tournamentID, captainID, playerID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "DraftPlayer", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		return s.draftPlayerLogic(ctx, db, batch, tournamentID, captainID, playerID)
	})
}

func (s *TournamentService) draftPlayerLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, tournamentID, captainID, playerID uuid.UUID) (tournamentResult, error) {
	t, err := s.lockTournament(ctx, db, tournamentID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Tournament](err)
	}
	if t.Status != tournamenttypes.StatusTeamSelect {
		return fail[*tournamenttypes.Tournament](ErrWrongPhase)
	}
	if !t.DraftInProgress() {
		return fail[*tournamenttypes.Tournament](ErrDraftNotRunning)
	}
	turn := *t.DraftTurn

	captain, err := s.getPlayer(ctx, db, captainID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Tournament](err)
	}
	if captain.TournamentID != t.ID || !captain.IsCaptain || !captain.IsOnTeam(turn) {
		return fail[*tournamenttypes.Tournament](ErrNotYourTurn)
	}
	target, err := s.getPlayer(ctx, db, playerID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Tournament](err)
	}
	if target.TournamentID != t.ID || !tournamentdomain.DraftEligible(target) {
		return fail[*tournamenttypes.Tournament](ErrAlreadyDrafted)
	}

	drafted, err := s.repo.DraftToTeam(ctx, db, target.ID, turn)
	if errors.Is(err, tournamentdb.ErrConflict) {
		return fail[*tournamenttypes.Tournament](ErrAlreadyDrafted)
	}
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	batch.Update(changefeed.TablePlayers, target, drafted)

	teams, err := s.repo.ListTeams(ctx, db, t.ID)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	pair, err := tournamentdomain.TeamPair(teams)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	players, err := s.repo.ListPlayers(ctx, db, t.ID)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}

	nextPick := t.DraftPickNumber + 1
	var nextTurn *uuid.UUID
	if len(tournamentdomain.RemainingDraftPool(players)) > 0 {
		id := tournamentdomain.DraftTurnFor(nextPick, pair)
		nextTurn = &id
	}
	advanced, err := s.repo.AdvanceDraft(ctx, db, t.ID, turn, t.DraftPickNumber, nextTurn, nextPick)
	if errors.Is(err, tournamentdb.ErrConflict) {
		return abort[*tournamenttypes.Tournament](ErrNotYourTurn)
	}
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	batch.Update(changefeed.TableTournaments, t, advanced)

	current, err := s.maybeBeginShuffle(ctx, db, batch, advanced, players)
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	return ok(current)
}

// RevealLeaders ends the shuffle. Teams still without a leader get a random member.
func (s *TournamentService) RevealLeaders(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "RevealLeaders", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if t.Status != tournamenttypes.StatusShuffling {
			return fail[*tournamenttypes.Tournament](ErrWrongPhase)
		}

		teams, err := s.repo.ListTeams(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		players, err := s.repo.ListPlayers(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		for _, leaderID := range tournamentdomain.LeaderlessTeams(teams, players, s.intn) {
			leader, err := s.repo.SetLeader(ctx, db, leaderID)
			if err != nil {
				return abort[*tournamenttypes.Tournament](err)
			}
			batch.Update(changefeed.TablePlayers, nil, leader)
		}

		updated, err := s.repo.TransitionStatus(ctx, db, t.ID, tournamenttypes.StatusShuffling, tournamenttypes.StatusPicking)
		if errors.Is(err, tournamentdb.ErrConflict) {
			return abort[*tournamenttypes.Tournament](ErrConcurrentUpdate)
		}
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		batch.Update(changefeed.TableTournaments, t, updated)
		return ok(updated)
	})
}
