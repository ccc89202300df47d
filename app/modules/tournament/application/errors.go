package tournamentservice

import (
	"errors"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
)

// Validation and guard failures. Callers show them and do not retry automatically.
var (
	ErrInvalidGameCount  = errors.New("number of games must be between 1 and 20")
	ErrInvalidName       = errors.New("name must not be empty")
	ErrRoomCodeTaken     = errors.New("room code is already in use")
	ErrTournamentStarted = errors.New("tournament has already started")
	ErrInvalidRole       = errors.New("role not allowed for this action")
	ErrNotReferee        = errors.New("only the referee can do this")
	ErrWrongPhase        = errors.New("action not allowed in the current phase")
	ErrTeamLimit         = errors.New("tournament already has two teams")
	ErrTeamMismatch      = errors.New("team belongs to another tournament")
	ErrNotTeamMember     = errors.New("player is not on this team")
	ErrInsufficientTeams = errors.New("at least two teams with players are required")
	ErrMissingLeader     = errors.New("every team needs a leader")
	ErrNothingToDraft    = errors.New("no undrafted players remain")
	ErrDraftNotRunning   = errors.New("no draft is running")
	ErrDraftInProgress   = errors.New("a draft is already running")
	ErrNotYourTurn       = errors.New("it is not your turn")
	ErrAlreadyDrafted    = errors.New("player cannot be drafted")
	ErrDiceNotAllowed    = errors.New("pick order can no longer be rolled for")
	ErrConcurrentUpdate  = errors.New("tournament changed, reload and try again")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
)

var errorCodes = map[error]string{
	ErrInvalidGameCount:                  "INVALID_GAME_COUNT",
	ErrInvalidName:                       "INVALID_NAME",
	ErrRoomCodeTaken:                     "ROOM_CODE_TAKEN",
	ErrTournamentStarted:                 "TOURNAMENT_STARTED",
	ErrInvalidRole:                       "INVALID_ROLE",
	ErrNotReferee:                        "NOT_REFEREE",
	ErrWrongPhase:                        "WRONG_PHASE",
	ErrTeamLimit:                         "TEAM_LIMIT",
	ErrTeamMismatch:                      "TEAM_MISMATCH",
	ErrNotTeamMember:                     "NOT_TEAM_MEMBER",
	ErrInsufficientTeams:                 "INSUFFICIENT_TEAMS",
	ErrMissingLeader:                     "MISSING_LEADER",
	ErrNothingToDraft:                    "NOTHING_TO_DRAFT",
	ErrDraftNotRunning:                   "DRAFT_NOT_RUNNING",
	ErrDraftInProgress:                   "DRAFT_IN_PROGRESS",
	ErrNotYourTurn:                       "NOT_YOUR_TURN",
	ErrAlreadyDrafted:                    "ALREADY_DRAFTED",
	ErrDiceNotAllowed:                    "DICE_NOT_ALLOWED",
	ErrConcurrentUpdate:                  "CONFLICT",
	ErrTournamentNotFound:                "TOURNAMENT_NOT_FOUND",
	ErrPlayerNotFound:                    "PLAYER_NOT_FOUND",
	ErrTeamNotFound:                      "TEAM_NOT_FOUND",
	tournamenttypes.ErrInvalidRoomCode:   "INVALID_ROOM_CODE",
	tournamenttypes.ErrEmptyIdentity:     "INVALID_IDENTITY",
	tournamentdomain.ErrInvalidDiceValue: "INVALID_DICE_VALUE",
	tournamentdomain.ErrDiceUnknownTeam:  "DICE_UNKNOWN_TEAM",
	tournamentdomain.ErrDiceRoundClosed:  "DICE_ROUND_CLOSED",
	tournamentdomain.ErrNoDiceWinner:     "NO_DICE_WINNER",
	tournamentdb.ErrConflict:             "CONFLICT",
}

// ErrorCode maps a service error to its stable reply code.
var ErrorCode = events.CodeTable(errorCodes)
