package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/party-bracket/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type titlesResult = results.OperationResult[[]*gametypes.Title, error]

// CalculateTitles evaluates the game type's title definitions over the game's stats and
// replaces the game's titles. Running it again yields the same titles.
func (s *GameService) CalculateTitles(ctx context.Context, gameID uuid.UUID) ([]*gametypes.Title, error) {
	batch := changefeed.NewBatch(uuid.Nil).ForGame(gameID)
	return execute(s, ctx, "CalculateTitles", gameID.String(), batch, func(ctx context.Context, db bun.IDB) (titlesResult, error) {
		game, t, err := s.lockGame(ctx, db, gameID)
		if err != nil {
			return failOrAbort[[]*gametypes.Title](err)
		}
		batch.SetTournament(t.ID)
		if game.Status != gametypes.StatusTitles && game.Status != gametypes.StatusScoring {
			return fail[[]*gametypes.Title](ErrWrongPhase)
		}

		gt, err := s.getGameType(ctx, db, game.GameTypeID)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}
		spec, err := gamedomain.ParseGameType(gt)
		if err != nil {
			return abort[[]*gametypes.Title](fmt.Errorf("stored game type %s: %w", gt.ID, err))
		}
		stats, err := s.repo.ListGameStats(ctx, db, game.ID)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}

		titles := gamedomain.TitlesFor(t.ID, &game.ID, gamedomain.EvaluateTitles(spec.Titles, stats))
		removed, err := s.repo.ReplaceGameTitles(ctx, db, game.ID, titles)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}
		if err := s.recomputeTotals(ctx, db, batch, t.ID); err != nil {
			return abort[[]*gametypes.Title](err)
		}

		for _, old := range removed {
			batch.Delete(changefeed.TableTitles, old)
		}
		for _, title := range titles {
			batch.Insert(changefeed.TableTitles, title)
		}
		return ok(titles)
	})
}

// AdvanceToNextRound completes the scored game. The tournament either finishes or returns to
// picking with the pick held by the team that did not pick the finished game.
func (s *GameService) AdvanceToNextRound(ctx context.Context, tournamentID, gameID uuid.UUID) (*tournamenttypes.Tournament, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "AdvanceToNextRound", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[*tournamenttypes.Tournament, error], error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if t.Status != tournamenttypes.StatusScoring {
			return fail[*tournamenttypes.Tournament](ErrWrongPhase)
		}
		game, err := s.getGame(ctx, db, gameID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Tournament](err)
		}
		if game.TournamentID != t.ID {
			return fail[*tournamenttypes.Tournament](ErrGameNotFound)
		}
		if game.Status != gametypes.StatusTitles {
			return fail[*tournamenttypes.Tournament](ErrGameNotFinished)
		}

		completedGame, err := s.repo.TransitionGame(ctx, db, game.ID, gametypes.StatusTitles, gametypes.StatusCompleted)
		if errors.Is(err, gamedb.ErrConflict) {
			return fail[*tournamenttypes.Tournament](ErrGameNotFinished)
		}
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}
		batch.ForGame(game.ID).Update(changefeed.TableGames, game, completedGame)

		completed, err := s.repo.CountGames(ctx, db, t.ID, gametypes.StatusCompleted)
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}

		var updated *tournamenttypes.Tournament
		if completed >= t.NumGames {
			updated, err = s.repo.TransitionTournament(ctx, db, t.ID, tournamenttypes.StatusScoring, tournamenttypes.StatusCompleted)
		} else {
			teams, lerr := s.repo.ListTeams(ctx, db, t.ID)
			if lerr != nil {
				return abort[*tournamenttypes.Tournament](lerr)
			}
			pair, perr := tournamentdomain.TeamPair(teams)
			if perr != nil {
				return abort[*tournamenttypes.Tournament](perr)
			}
			updated, err = s.repo.NextRound(ctx, db, t.ID, tournamentdomain.OtherTeam(pair, game.PickedByTeam))
		}
		if errors.Is(err, gamedb.ErrConflict) {
			return abort[*tournamenttypes.Tournament](fmt.Errorf("advance round: %w", ErrConcurrentUpdate))
		}
		if err != nil {
			return abort[*tournamenttypes.Tournament](err)
		}

		batch.Update(changefeed.TableTournaments, t, updated)
		s.logger.InfoContext(ctx, "Round advanced",
			attr.ExtractCorrelationID(ctx),
			attr.UUID("tournament_id", t.ID),
			attr.Int("games_completed", completed),
			attr.String("status", string(updated.Status)),
		)
		return ok(updated)
	})
}

// CalculateGlobalTitles replaces the ceremony titles of a completed tournament.
func (s *GameService) CalculateGlobalTitles(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "CalculateGlobalTitles", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (titlesResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[[]*gametypes.Title](err)
		}
		if t.Status != tournamenttypes.StatusCompleted {
			return fail[[]*gametypes.Title](ErrWrongPhase)
		}

		games, err := s.repo.ListGames(ctx, db, t.ID)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}
		existing, err := s.repo.ListTournamentTitles(ctx, db, t.ID)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}

		titles := gamedomain.TitlesFor(t.ID, nil, gamedomain.GlobalTitles(games, existing))
		removed, err := s.repo.ReplaceGlobalTitles(ctx, db, t.ID, titles)
		if err != nil {
			return abort[[]*gametypes.Title](err)
		}
		if err := s.recomputeTotals(ctx, db, batch, t.ID); err != nil {
			return abort[[]*gametypes.Title](err)
		}

		for _, old := range removed {
			batch.Delete(changefeed.TableTitles, old)
		}
		for _, title := range titles {
			batch.Insert(changefeed.TableTitles, title)
		}
		return ok(titles)
	})
}

func (s *GameService) recomputeTotals(ctx context.Context, db bun.IDB, batch *changefeed.Batch, tournamentID uuid.UUID) error {
	teams, err := s.repo.RecomputeTeamTotals(ctx, db, tournamentID)
	if err != nil {
		return err
	}
	for _, team := range teams {
		batch.Update(changefeed.TableTeams, nil, team)
	}
	return nil
}
