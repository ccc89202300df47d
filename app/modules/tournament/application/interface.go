package tournamentservice

import (
	"context"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Service is the tournament module's domain operations.
type Service interface {
	CreateTournament(ctx context.Context, name, roomCode string, numGames int, refereeName string, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	JoinTournament(ctx context.Context, roomCode, name string, identity tournamenttypes.Identity, role tournamenttypes.Role) (*tournamenttypes.Session, error)
	// ReconnectPlayer returns nil without error when the identity has no live session.
	ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	CancelTournament(ctx context.Context, tournamentID, actorID uuid.UUID) error

	CreateTeam(ctx context.Context, tournamentID uuid.UUID, name string) (*tournamenttypes.Team, error)
	UpdateTeamName(ctx context.Context, teamID uuid.UUID, name string) (*tournamenttypes.Team, error)
	JoinTeam(ctx context.Context, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error)
	LeaveTeam(ctx context.Context, playerID uuid.UUID) (*tournamenttypes.Player, error)
	VoteForLeader(ctx context.Context, teamID, voterID, candidateID uuid.UUID) (*tournamenttypes.VoteOutcome, error)

	StartTournament(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error)
	StartDraft(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error)
	DraftPlayer(ctx context.Context, tournamentID, captainID, playerID uuid.UUID) (*tournamenttypes.Tournament, error)
	RevealLeaders(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)

	SubmitDicePick(ctx context.Context, tournamentID, teamID uuid.UUID, value int) (*tournamenttypes.Tournament, error)
	ResetDiceRoll(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)
	ConfirmDiceWinner(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)

	// SweepStaleLobbies deletes abandoned lobbies and returns how many went.
	SweepStaleLobbies(ctx context.Context, olderThan time.Duration) (int, error)
}

var _ Service = (*TournamentService)(nil)
