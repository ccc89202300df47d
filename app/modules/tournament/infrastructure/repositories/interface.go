package tournamentdb

import (
	"context"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for tournament, player, team and vote persistence.
// Every status or turn change is a conditional update naming the expected current state.
type Repository interface {
	// --- Tournaments ---
	CreateTournament(ctx context.Context, db bun.IDB, t *tournamenttypes.Tournament) error
	GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	// LockTournament reads the row FOR UPDATE, serialising operations on one tournament.
	LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	// GetLiveByRoomCode resolves the non-completed tournament holding code.
	GetLiveByRoomCode(ctx context.Context, db bun.IDB, code string) (*tournamenttypes.Tournament, error)
	// ListRefereeLobbies lists lobby tournaments refereed by identity.
	ListRefereeLobbies(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity) ([]*tournamenttypes.Tournament, error)
	DeleteTournament(ctx context.Context, db bun.IDB, id uuid.UUID, expect tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	SetReferee(ctx context.Context, db bun.IDB, tournamentID, playerID uuid.UUID) (*tournamenttypes.Tournament, error)
	TransitionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	StartTournament(ctx context.Context, db bun.IDB, id, firstPickTeam uuid.UUID) (*tournamenttypes.Tournament, error)
	StartDraft(ctx context.Context, db bun.IDB, id, firstTurn uuid.UUID) (*tournamenttypes.Tournament, error)
	AdvanceDraft(ctx context.Context, db bun.IDB, id, expectTurn uuid.UUID, expectPick int, nextTurn *uuid.UUID, nextPick int) (*tournamenttypes.Tournament, error)
	SaveDiceRollData(ctx context.Context, db bun.IDB, id uuid.UUID, expectRound int, data *tournamenttypes.DiceRollData) (*tournamenttypes.Tournament, error)
	ConfirmDiceWinner(ctx context.Context, db bun.IDB, id, winner uuid.UUID) (*tournamenttypes.Tournament, error)
	ListLobbiesCreatedBefore(ctx context.Context, db bun.IDB, cutoff time.Time) ([]LobbyOccupancy, error)

	// --- Players ---
	// CreatePlayer inserts p unless its identity already sits in the tournament. The bool
	// reports whether a row was inserted.
	CreatePlayer(ctx context.Context, db bun.IDB, p *tournamenttypes.Player) (bool, error)
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	GetPlayerByIdentity(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, identity tournamenttypes.Identity) (*tournamenttypes.Player, error)
	ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)
	ListTeamMembers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error)
	// RecentSessions returns up to limit of the identity's newest players with their tournaments.
	RecentSessions(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity, limit int) ([]PlayerSession, error)
	// AssignTeam moves a player and strips leader and captain flags.
	AssignTeam(ctx context.Context, db bun.IDB, playerID uuid.UUID, teamID *uuid.UUID) (*tournamenttypes.Player, error)
	// DraftToTeam seats an undrafted, non-captain player.
	DraftToTeam(ctx context.Context, db bun.IDB, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error)
	ClearTeamLeaders(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error)
	SetLeader(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*tournamenttypes.Player, error)
	MarkLeadersAsCaptains(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)

	// --- Teams ---
	CreateTeam(ctx context.Context, db bun.IDB, team *tournamenttypes.Team) error
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Team, error)
	// ListTeams returns the tournament's teams, earliest first.
	ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	UpdateTeamName(ctx context.Context, db bun.IDB, teamID uuid.UUID, name string) (*tournamenttypes.Team, error)

	// --- Leader votes ---
	UpsertVote(ctx context.Context, db bun.IDB, vote *tournamenttypes.LeaderVote) error
	ListTeamVotes(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	ListTournamentVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	DeleteVotesByVoter(ctx context.Context, db bun.IDB, teamID, voterID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	DeleteVotesForCandidate(ctx context.Context, db bun.IDB, teamID, candidateID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
}

// PlayerSession pairs a player row with its tournament.
type PlayerSession struct {
	Player     *tournamenttypes.Player
	Tournament *tournamenttypes.Tournament
}

// LobbyOccupancy is a lobby tournament with its seat count.
type LobbyOccupancy struct {
	Tournament  *tournamenttypes.Tournament
	PlayerCount int
}
