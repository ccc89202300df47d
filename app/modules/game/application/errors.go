package gameservice

import (
	"errors"

	gamedomain "github.com/Black-And-White-Club/party-bracket/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
)

// Guard failures, in the order PickGame checks them.
var (
	ErrNotPickingPhase = errors.New("games can only be picked during the picking phase")
	ErrNotYourTurn     = errors.New("it is not your team's turn to pick")
	ErrNotLeader       = errors.New("only the team leader can pick")
	ErrAlreadyPicked   = errors.New("game has already been picked in this tournament")
)

var (
	ErrNotReferee         = errors.New("only the referee can do this")
	ErrWrongPhase         = errors.New("action not allowed in the current phase")
	ErrGameNotActive      = errors.New("game is not being played")
	ErrGameNotFinished    = errors.New("game has not finished scoring")
	ErrGameClosed         = errors.New("game no longer accepts stats or results")
	ErrNotAPlayer         = errors.New("only players record stats")
	ErrTeamMismatch       = errors.New("team belongs to another tournament")
	ErrInvalidResultData  = errors.New("result data must be valid JSON")
	ErrConcurrentUpdate   = errors.New("tournament changed, reload and try again")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrGameTypeNotFound   = errors.New("game type not found")
)

var errorCodes = map[error]string{
	ErrNotPickingPhase:            "NOT_PICKING_PHASE",
	ErrNotYourTurn:                "NOT_YOUR_TURN",
	ErrNotLeader:                  "NOT_LEADER",
	ErrAlreadyPicked:              "ALREADY_PICKED",
	ErrNotReferee:                 "NOT_REFEREE",
	ErrWrongPhase:                 "WRONG_PHASE",
	ErrGameNotActive:              "GAME_NOT_ACTIVE",
	ErrGameNotFinished:            "GAME_NOT_FINISHED",
	ErrGameClosed:                 "GAME_CLOSED",
	ErrNotAPlayer:                 "NOT_A_PLAYER",
	ErrTeamMismatch:               "TEAM_MISMATCH",
	ErrInvalidResultData:          "INVALID_RESULT_DATA",
	ErrConcurrentUpdate:           "CONFLICT",
	ErrTournamentNotFound:         "TOURNAMENT_NOT_FOUND",
	ErrPlayerNotFound:             "PLAYER_NOT_FOUND",
	ErrGameNotFound:               "GAME_NOT_FOUND",
	ErrGameTypeNotFound:           "GAME_TYPE_NOT_FOUND",
	gamedomain.ErrInvalidGameType: "INVALID_GAME_TYPE",
	gamedomain.ErrInvalidStat:     "INVALID_STAT",
	gamedb.ErrConflict:            "CONFLICT",
}

// ErrorCode maps a service error to its stable reply code.
var ErrorCode = events.CodeTable(errorCodes)
