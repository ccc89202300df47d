package tournamentservice

import (
	"context"
	"errors"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// diceAllowed reports whether first-pick order can still be rolled for.
func diceAllowed(t *tournamenttypes.Tournament) bool {
	switch t.Status {
	case tournamenttypes.StatusShuffling:
		return true
	case tournamenttypes.StatusPicking:
		return t.CurrentGameIndex == 0
	default:
		return false
	}
}

func diceRound(data *tournamenttypes.DiceRollData) int {
	if data == nil {
		return 0
	}
	return data.Round
}

// SubmitDicePick records a team's dice guess. The last guess of a round triggers the roll.
func (s *TournamentService) SubmitDicePick(ctx context.Context, tournamentID, teamID uuid.UUID, value int) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "SubmitDicePick", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if !diceAllowed(t) {
			return fail[*tournamenttypes.Tournament](ErrDiceNotAllowed)
		}
		teams, err := s.repo.ListTeams(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		teamIDs := make([]uuid.UUID, 0, len(teams))
		for _, team := range teams {
			teamIDs = append(teamIDs, team.ID)
		}

		next, err := tournamentdomain.SubmitDicePick(t.DiceRollData, teamIDs, teamID, value, s.roll)
		if err != nil {
			return fail[*tournamenttypes.Tournament](err)
		}
		return s.saveDice(ctx, db, batch, t, next)
	})
}

// ResetDiceRoll clears a tied round so both teams can guess again.
func (s *TournamentService) ResetDiceRoll(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "ResetDiceRoll", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if !diceAllowed(t) {
			return fail[*tournamenttypes.Tournament](ErrDiceNotAllowed)
		}
		return s.saveDice(ctx, db, batch, t, tournamentdomain.ResetDice(t.DiceRollData))
	})
}

// ConfirmDiceWinner hands the next pick to the dice winner and clears the roll.
func (s *TournamentService) ConfirmDiceWinner(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "ConfirmDiceWinner", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (tournamentResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if !diceAllowed(t) {
			return fail[*tournamenttypes.Tournament](ErrDiceNotAllowed)
		}
		winner, err := tournamentdomain.DiceWinner(t.DiceRollData)
		if err != nil {
			return fail[*tournamenttypes.Tournament](err)
		}
		updated, err := s.repo.ConfirmDiceWinner(ctx, db, t.ID, winner)
		if errors.Is(err, tournamentdb.ErrConflict) {
			return fail[*tournamenttypes.Tournament](ErrConcurrentUpdate)
		}
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		batch.Update(changefeed.TableTournaments, t, updated)
		return ok(updated)
	})
}

func (s *TournamentService) saveDice(ctx context.Context, db bun.IDB, batch *changefeed.Batch, t *tournamenttypes.Tournament, next *tournamenttypes.DiceRollData) (tournamentResult, error) {
	updated, err := s.repo.SaveDiceRollData(ctx, db, t.ID, diceRound(t.DiceRollData), next)
	if errors.Is(err, tournamentdb.ErrConflict) {
		return fail[*tournamenttypes.Tournament](ErrConcurrentUpdate)
	}
	if err != nil {
		return abort[*tournamenttypes.Tournament](err)
	}
	batch.Update(changefeed.TableTournaments, t, updated)
	return ok(updated)
}
