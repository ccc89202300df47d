// Package gameevents holds the command subjects and payloads of the game module.
package gameevents

import (
	"encoding/json"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
)

// Command subjects.
const (
	ListGameTypesRequestedV1  = "game.list_types.requested.v1"
	GetGameTypeRequestedV1    = "game.get_type.requested.v1"
	CreateGameTypeRequestedV1 = "game.create_type.requested.v1"

	PickGameRequestedV1          = "game.pick.requested.v1"
	SubmitPlayerStatsRequestedV1 = "game.submit_stats.requested.v1"
	SubmitGameResultRequestedV1  = "game.submit_result.requested.v1"
	GetGameResultRequestedV1     = "game.get_result.requested.v1"
	EndGameRequestedV1           = "game.end.requested.v1"
	CalculateTitlesRequestedV1   = "game.calculate_titles.requested.v1"
	AdvanceRoundRequestedV1      = "game.advance_round.requested.v1"
	GlobalTitlesRequestedV1      = "game.calculate_global_titles.requested.v1"
)

type ListGameTypesRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}

type GetGameTypeRequestedPayloadV1 struct {
	GameTypeID uuid.UUID `json:"game_type_id"`
}

type CreateGameTypeRequestedPayloadV1 struct {
	TournamentID     uuid.UUID       `json:"tournament_id"`
	Name             string          `json:"name"`
	Emoji            string          `json:"emoji"`
	Description      string          `json:"description"`
	PlayerInputs     json.RawMessage `json:"player_inputs"`
	RefereeInputs    json.RawMessage `json:"referee_inputs"`
	TitleDefinitions json.RawMessage `json:"title_definitions"`
}

type PickGameRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamID       uuid.UUID `json:"team_id"`
	GameTypeID   uuid.UUID `json:"game_type_id"`
	PlayerID     uuid.UUID `json:"player_id"`
}

type SubmitPlayerStatsRequestedPayloadV1 struct {
	GameID   uuid.UUID             `json:"game_id"`
	PlayerID uuid.UUID             `json:"player_id"`
	Stats    []gametypes.StatInput `json:"stats"`
}

type SubmitGameResultRequestedPayloadV1 struct {
	GameID        uuid.UUID       `json:"game_id"`
	WinningTeamID *uuid.UUID      `json:"winning_team_id"`
	ResultData    json.RawMessage `json:"result_data"`
}

// GameRequestedPayloadV1 addresses one game.
type GameRequestedPayloadV1 struct {
	GameID uuid.UUID `json:"game_id"`
}

type EndGameRequestedPayloadV1 struct {
	GameID  uuid.UUID `json:"game_id"`
	ActorID uuid.UUID `json:"actor_id"`
}

type AdvanceRoundRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	GameID       uuid.UUID `json:"game_id"`
}

// AdvanceRoundResultV1 tells devices where the tournament went.
type AdvanceRoundResultV1 struct {
	Completed      bool `json:"completed"`
	GamesCompleted int  `json:"games_completed"`
}

type GlobalTitlesRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}
