package gameservice

import (
	"context"
	"encoding/json"

	gamedomain "github.com/Black-And-White-Club/party-bracket/app/modules/game/domain"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type gameTypeResult = results.OperationResult[*gametypes.GameType, error]

var emptyJSONArray = json.RawMessage(`[]`)

func (s *GameService) ListGameTypes(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	return execute(s, ctx, "ListGameTypes", tournamentID.String(), nil, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*gametypes.GameType, error], error) {
		types, err := s.repo.ListGameTypes(ctx, db, tournamentID)
		if err != nil {
			return abort[[]*gametypes.GameType](err)
		}
		return ok(types)
	})
}

func (s *GameService) GetGameType(ctx context.Context, gameTypeID uuid.UUID) (*gametypes.GameType, error) {
	return execute(s, ctx, "GetGameType", gameTypeID.String(), nil, func(ctx context.Context, db bun.IDB) (gameTypeResult, error) {
		gt, err := s.getGameType(ctx, db, gameTypeID)
		if err != nil {
			return failOrAbort[*gametypes.GameType](err)
		}
		return ok(gt)
	})
}

// CreateGameType stores a custom type scoped to one tournament. The JSON columns are kept as
// submitted.
func (s *GameService) CreateGameType(ctx context.Context, tournamentID uuid.UUID, in *gametypes.GameType) (*gametypes.GameType, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "CreateGameType", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (gameTypeResult, error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*gametypes.GameType](err)
		}
		if t.Status == tournamenttypes.StatusCompleted {
			return fail[*gametypes.GameType](ErrWrongPhase)
		}

		gt := &gametypes.GameType{
			TournamentID:     &t.ID,
			Name:             in.Name,
			Emoji:            in.Emoji,
			Description:      in.Description,
			PlayerInputs:     orEmptyArray(in.PlayerInputs),
			RefereeInputs:    orEmptyArray(in.RefereeInputs),
			TitleDefinitions: orEmptyArray(in.TitleDefinitions),
		}
		if _, err := gamedomain.ParseGameType(gt); err != nil {
			return fail[*gametypes.GameType](err)
		}
		if err := s.repo.CreateGameType(ctx, db, gt); err != nil {
			return abort[*gametypes.GameType](err)
		}
		batch.Insert(changefeed.TableGameTypes, gt)
		return ok(gt)
	})
}

func orEmptyArray(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return emptyJSONArray
	}
	return raw
}
