package gameservice

import (
	"context"
	"errors"

	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var notFound = []error{ErrTournamentNotFound, ErrPlayerNotFound, ErrGameNotFound, ErrGameTypeNotFound}

func failOrAbort[S any](err error) (results.OperationResult[S, error], error) {
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return fail[S](err)
		}
	}
	return abort[S](err)
}

func mapNotFound(err, to error) error {
	if errors.Is(err, gamedb.ErrNotFound) {
		return to
	}
	return err
}

func (s *GameService) lockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	t, err := s.repo.LockTournament(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTournamentNotFound)
	}
	return t, nil
}

func (s *GameService) getGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error) {
	g, err := s.repo.GetGame(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrGameNotFound)
	}
	return g, nil
}

// lockGame loads a game and locks its tournament. The game is re-read under the lock.
func (s *GameService) lockGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, *tournamenttypes.Tournament, error) {
	g, err := s.getGame(ctx, db, id)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.lockTournament(ctx, db, g.TournamentID)
	if err != nil {
		return nil, nil, err
	}
	if g, err = s.getGame(ctx, db, id); err != nil {
		return nil, nil, err
	}
	return g, t, nil
}

func (s *GameService) getPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	p, err := s.repo.GetPlayer(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrPlayerNotFound)
	}
	return p, nil
}

func (s *GameService) getGameType(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.GameType, error) {
	gt, err := s.repo.GetGameType(ctx, db, id)
	if err != nil {
		return nil, mapNotFound(err, ErrGameTypeNotFound)
	}
	return gt, nil
}

// visibleTo reports whether a tournament may play gt.
func visibleTo(gt *gametypes.GameType, tournamentID uuid.UUID) bool {
	return gt.IsBuiltIn() || *gt.TournamentID == tournamentID
}

func isReferee(t *tournamenttypes.Tournament, actorID uuid.UUID) bool {
	return t.RefereeID != nil && *t.RefereeID == actorID
}
