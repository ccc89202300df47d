package scoreboardservice

import (
	"errors"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	// ErrNotCompleted guards the views that only exist once the last game is scored.
	ErrNotCompleted = errors.New("tournament is not completed")
)

var errorCodes = map[error]string{
	ErrTournamentNotFound: "TOURNAMENT_NOT_FOUND",
	ErrPlayerNotFound:     "PLAYER_NOT_FOUND",
	ErrNotCompleted:       "NOT_COMPLETED",
}

// ErrorCode maps a service error to its stable reply code.
var ErrorCode = events.CodeTable(errorCodes)
