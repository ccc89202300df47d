// Package tournamentevents holds the command subjects and payloads of the tournament module.
package tournamentevents

import (
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Command subjects.
const (
	CreateTournamentRequestedV1 = "tournament.create.requested.v1"
	JoinTournamentRequestedV1   = "tournament.join.requested.v1"
	ReconnectPlayerRequestedV1  = "tournament.reconnect.requested.v1"
	CancelTournamentRequestedV1 = "tournament.cancel.requested.v1"
	StartTournamentRequestedV1  = "tournament.start.requested.v1"

	CreateTeamRequestedV1     = "tournament.create_team.requested.v1"
	UpdateTeamNameRequestedV1 = "tournament.update_team_name.requested.v1"
	JoinTeamRequestedV1       = "tournament.join_team.requested.v1"
	LeaveTeamRequestedV1      = "tournament.leave_team.requested.v1"
	VoteForLeaderRequestedV1  = "tournament.vote_leader.requested.v1"

	StartDraftRequestedV1    = "tournament.start_draft.requested.v1"
	DraftPlayerRequestedV1   = "tournament.draft_player.requested.v1"
	RevealLeadersRequestedV1 = "tournament.reveal_leaders.requested.v1"

	SubmitDicePickRequestedV1    = "tournament.dice_pick.requested.v1"
	ResetDiceRollRequestedV1     = "tournament.dice_reset.requested.v1"
	ConfirmDiceWinnerRequestedV1 = "tournament.dice_confirm.requested.v1"
)

// CreateTournamentRequestedPayloadV1 opens a new lobby with its referee.
type CreateTournamentRequestedPayloadV1 struct {
	Name        string                   `json:"name"`
	RoomCode    string                   `json:"room_code"`
	NumGames    int                      `json:"num_games"`
	RefereeName string                   `json:"referee_name"`
	Identity    tournamenttypes.Identity `json:"identity"`
}

type JoinTournamentRequestedPayloadV1 struct {
	RoomCode string                   `json:"room_code"`
	Name     string                   `json:"name"`
	Identity tournamenttypes.Identity `json:"identity"`
	Role     tournamenttypes.Role     `json:"role"`
}

type ReconnectPlayerRequestedPayloadV1 struct {
	Identity tournamenttypes.Identity `json:"identity"`
}

// TournamentActorPayloadV1 addresses a tournament on behalf of one of its players.
type TournamentActorPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	ActorID      uuid.UUID `json:"actor_id"`
}

type CreateTeamRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Name         string    `json:"name"`
}

type UpdateTeamNameRequestedPayloadV1 struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}

type JoinTeamRequestedPayloadV1 struct {
	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
}

type LeaveTeamRequestedPayloadV1 struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type VoteForLeaderRequestedPayloadV1 struct {
	TeamID      uuid.UUID `json:"team_id"`
	VoterID     uuid.UUID `json:"voter_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

type DraftPlayerRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	CaptainID    uuid.UUID `json:"captain_id"`
	PlayerID     uuid.UUID `json:"player_id"`
}

type RevealLeadersRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}

type SubmitDicePickRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamID       uuid.UUID `json:"team_id"`
	Value        int       `json:"value"`
}

type DiceRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}
