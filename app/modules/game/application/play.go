package gameservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/party-bracket/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type gameResult = results.OperationResult[*gametypes.Game, error]

// PickGame lets the leader of the team holding the pick choose the next game. The pick
// hands current_pick_team to the other team in one conditional update.
func (s *GameService) PickGame(ctx context.Context, tournamentID, teamID, gameTypeID, playerID uuid.UUID) (*gametypes.Game, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "PickGame", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (gameResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*gametypes.Game](err)
		}
		if t.Status != tournamenttypes.StatusPicking {
			return fail[*gametypes.Game](ErrNotPickingPhase)
		}
		if t.CurrentPickTeam == nil || *t.CurrentPickTeam != teamID {
			return fail[*gametypes.Game](ErrNotYourTurn)
		}

		player, err := s.getPlayer(ctx, db, playerID)
		if err != nil {
			return failOrAbort[*gametypes.Game](err)
		}
		if player.TournamentID != t.ID || !player.IsOnTeam(teamID) || !player.IsLeader {
			return fail[*gametypes.Game](ErrNotLeader)
		}

		gt, err := s.getGameType(ctx, db, gameTypeID)
		if err != nil {
			return failOrAbort[*gametypes.Game](err)
		}
		if !visibleTo(gt, t.ID) {
			return fail[*gametypes.Game](ErrGameTypeNotFound)
		}

		games, err := s.repo.ListGames(ctx, db, t.ID)
		if err != nil {
			return abort[*gametypes.Game](err)
		}
		for _, g := range games {
			if g.GameTypeID == gameTypeID {
				return fail[*gametypes.Game](ErrAlreadyPicked)
			}
		}

		teams, err := s.repo.ListTeams(ctx, db, t.ID)
		if err != nil {
			return abort[*gametypes.Game](err)
		}
		pair, err := tournamentdomain.TeamPair(teams)
		if err != nil {
			return abort[*gametypes.Game](err)
		}

		game := &gametypes.Game{
			TournamentID: t.ID,
			GameTypeID:   gameTypeID,
			Status:       gametypes.StatusActive,
			PickedByTeam: teamID,
			GameOrder:    len(games) + 1,
		}
		if err := s.repo.CreateGame(ctx, db, game); err != nil {
			if errors.Is(err, gamedb.ErrUniqueViolation) {
				return abort[*gametypes.Game](fmt.Errorf("create game: %w", ErrAlreadyPicked))
			}
			return abort[*gametypes.Game](err)
		}

		updated, err := s.repo.FlipAfterPick(ctx, db, t.ID, teamID, tournamentdomain.OtherTeam(pair, teamID), game.GameOrder)
		if errors.Is(err, gamedb.ErrConflict) {
			return abort[*gametypes.Game](fmt.Errorf("flip pick: %w", ErrNotYourTurn))
		}
		if err != nil {
			return abort[*gametypes.Game](err)
		}

		batch.ForGame(game.ID)
		batch.Insert(changefeed.TableGames, game)
		batch.Update(changefeed.TableTournaments, t, updated)
		return ok(game)
	})
}

// SubmitPlayerStats upserts a player's stats by key. Corrections are accepted until the
// round is advanced.
func (s *GameService) SubmitPlayerStats(ctx context.Context, gameID, playerID uuid.UUID, stats []gametypes.StatInput) ([]*gametypes.PlayerStat, error) {
	batch := changefeed.NewBatch(uuid.Nil).ForGame(gameID)
	return execute(s, ctx, "SubmitPlayerStats", gameID.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*gametypes.PlayerStat, error], error) {
		game, t, err := s.lockGame(ctx, db, gameID)
		if err != nil {
			return failOrAbort[[]*gametypes.PlayerStat](err)
		}
		batch.SetTournament(t.ID)
		if !game.Status.AcceptsStats() {
			return fail[[]*gametypes.PlayerStat](ErrGameClosed)
		}

		player, err := s.getPlayer(ctx, db, playerID)
		if err != nil {
			return failOrAbort[[]*gametypes.PlayerStat](err)
		}
		if player.TournamentID != t.ID {
			return fail[[]*gametypes.PlayerStat](ErrPlayerNotFound)
		}
		if player.Role != tournamenttypes.RolePlayer {
			return fail[[]*gametypes.PlayerStat](ErrNotAPlayer)
		}

		gt, err := s.getGameType(ctx, db, game.GameTypeID)
		if err != nil {
			return abort[[]*gametypes.PlayerStat](err)
		}
		spec, err := gamedomain.ParseGameType(gt)
		if err != nil {
			return abort[[]*gametypes.PlayerStat](fmt.Errorf("stored game type %s: %w", gt.ID, err))
		}
		if err := spec.ValidateStats(stats); err != nil {
			return fail[[]*gametypes.PlayerStat](err)
		}

		rows := make([]*gametypes.PlayerStat, 0, len(stats))
		for _, st := range stats {
			rows = append(rows, &gametypes.PlayerStat{
				GameID:    game.ID,
				PlayerID:  player.ID,
				StatKey:   st.Key,
				StatValue: st.Value,
			})
		}
		saved, err := s.repo.UpsertPlayerStats(ctx, db, rows)
		if err != nil {
			return abort[[]*gametypes.PlayerStat](err)
		}
		for _, row := range saved {
			batch.Insert(changefeed.TablePlayerStats, row)
		}
		return ok(saved)
	})
}

// SubmitGameResult records the referee's outcome. A resubmission replaces the previous one.
func (s *GameService) SubmitGameResult(ctx context.Context, gameID uuid.UUID, winningTeamID *uuid.UUID, resultData json.RawMessage) (*gametypes.GameResult, error) {
	batch := changefeed.NewBatch(uuid.Nil).ForGame(gameID)
	return execute(s, ctx, "SubmitGameResult", gameID.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[*gametypes.GameResult, error], error) {
		game, t, err := s.lockGame(ctx, db, gameID)
		if err != nil {
			return failOrAbort[*gametypes.GameResult](err)
		}
		batch.SetTournament(t.ID)
		if game.Status == gametypes.StatusCompleted || game.Status == gametypes.StatusPending {
			return fail[*gametypes.GameResult](ErrGameClosed)
		}
		if len(resultData) > 0 && !json.Valid(resultData) {
			return fail[*gametypes.GameResult](ErrInvalidResultData)
		}

		if winningTeamID != nil {
			teams, err := s.repo.ListTeams(ctx, db, t.ID)
			if err != nil {
				return abort[*gametypes.GameResult](err)
			}
			found := false
			for _, team := range teams {
				found = found || team.ID == *winningTeamID
			}
			if !found {
				return fail[*gametypes.GameResult](ErrTeamMismatch)
			}
		}

		res := &gametypes.GameResult{GameID: game.ID, WinningTeamID: winningTeamID, ResultData: resultData}
		if err := s.repo.UpsertGameResult(ctx, db, res); err != nil {
			return abort[*gametypes.GameResult](err)
		}
		batch.Insert(changefeed.TableGameResults, res)
		return ok(res)
	})
}

func (s *GameService) GetGameResult(ctx context.Context, gameID uuid.UUID) (*gametypes.GameResult, error) {
	return execute(s, ctx, "GetGameResult", gameID.String(), nil, func(ctx context.Context, db bun.IDB) (results.OperationResult[*gametypes.GameResult, error], error) {
		res, err := s.repo.GetGameResult(ctx, db, gameID)
		if errors.Is(err, gamedb.ErrNotFound) {
			return ok[*gametypes.GameResult](nil)
		}
		if err != nil {
			return abort[*gametypes.GameResult](err)
		}
		return ok(res)
	})
}

// EndGame closes play: the game moves to titles and the tournament to scoring.
func (s *GameService) EndGame(ctx context.Context, gameID, actorID uuid.UUID) (*gametypes.Game, error) {
	batch := changefeed.NewBatch(uuid.Nil).ForGame(gameID)
	return execute(s, ctx, "EndGame", gameID.String(), batch, func(ctx context.Context, db bun.IDB) (gameResult, error) {
		game, t, err := s.lockGame(ctx, db, gameID)
		if err != nil {
			return failOrAbort[*gametypes.Game](err)
		}
		batch.SetTournament(t.ID)
		if !isReferee(t, actorID) {
			return fail[*gametypes.Game](ErrNotReferee)
		}
		if game.Status != gametypes.StatusActive {
			return fail[*gametypes.Game](ErrGameNotActive)
		}
		if t.Status != tournamenttypes.StatusPlaying {
			return fail[*gametypes.Game](ErrWrongPhase)
		}

		ended, err := s.repo.TransitionGame(ctx, db, game.ID, gametypes.StatusActive, gametypes.StatusTitles)
		if errors.Is(err, gamedb.ErrConflict) {
			return fail[*gametypes.Game](ErrGameNotActive)
		}
		if err != nil {
			return abort[*gametypes.Game](err)
		}
		scoring, err := s.repo.TransitionTournament(ctx, db, t.ID, tournamenttypes.StatusPlaying, tournamenttypes.StatusScoring)
		if errors.Is(err, gamedb.ErrConflict) {
			return abort[*gametypes.Game](fmt.Errorf("end game: %w", ErrConcurrentUpdate))
		}
		if err != nil {
			return abort[*gametypes.Game](err)
		}

		batch.Update(changefeed.TableGames, game, ended)
		batch.Update(changefeed.TableTournaments, t, scoring)
		return ok(ended)
	})
}
