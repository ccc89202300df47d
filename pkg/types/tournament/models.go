package tournamenttypes

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tournament is the shared tournament row.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID               uuid.UUID     `bun:"id,pk,type:uuid" json:"id"`
	Name             string        `bun:"name,notnull" json:"name"`
	RoomCode         string        `bun:"room_code,notnull" json:"room_code"`
	Status           Status        `bun:"status,notnull" json:"status"`
	NumGames         int           `bun:"num_games,notnull" json:"num_games"`
	CurrentPickTeam  *uuid.UUID    `bun:"current_pick_team,type:uuid" json:"current_pick_team"`
	CurrentGameIndex int           `bun:"current_game_index,notnull" json:"current_game_index"`
	DraftTurn        *uuid.UUID    `bun:"draft_turn,type:uuid" json:"draft_turn"`
	DraftPickNumber  int           `bun:"draft_pick_number,notnull" json:"draft_pick_number"`
	DiceRollData     *DiceRollData `bun:"dice_roll_data,type:jsonb" json:"dice_roll_data"`
	RefereeID        *uuid.UUID    `bun:"referee_id,type:uuid" json:"referee_id"`
	CreatedAt        time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// DraftInProgress reports whether a captain draft is running.
func (t *Tournament) DraftInProgress() bool {
	return t.DraftTurn != nil
}

// Player is a device's seat in one tournament.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	TournamentID uuid.UUID  `bun:"tournament_id,notnull,type:uuid" json:"tournament_id"`
	Name         string     `bun:"name,notnull" json:"name"`
	DeviceID     *string    `bun:"device_id" json:"device_id,omitempty"`
	UserID       *string    `bun:"user_id" json:"user_id,omitempty"`
	Role         Role       `bun:"role,notnull" json:"role"`
	TeamID       *uuid.UUID `bun:"team_id,type:uuid" json:"team_id"`
	IsLeader     bool       `bun:"is_leader,notnull" json:"is_leader"`
	IsCaptain    bool       `bun:"is_captain,notnull" json:"is_captain"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Identity returns whichever identity variant the row was joined with.
func (p *Player) Identity() Identity {
	if p.UserID != nil && *p.UserID != "" {
		return UserIdentity(UserID(*p.UserID))
	}
	if p.DeviceID != nil && *p.DeviceID != "" {
		return AnonymousIdentity(AnonymousSessionID(*p.DeviceID))
	}
	return Identity{}
}

// SetIdentity stores id in the matching column and clears the other.
func (p *Player) SetIdentity(id Identity) {
	value := id.Value()
	p.DeviceID, p.UserID = nil, nil
	switch id.Kind() {
	case IdentityUser:
		p.UserID = &value
	case IdentityAnonymous:
		p.DeviceID = &value
	}
}

// IsOnTeam reports whether the player sits on teamID.
func (p *Player) IsOnTeam(teamID uuid.UUID) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}

// Team is one side of the two-team bracket.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TournamentID uuid.UUID `bun:"tournament_id,notnull,type:uuid" json:"tournament_id"`
	Name         string    `bun:"name,notnull" json:"name"`
	TotalPoints  float64   `bun:"total_points,notnull" json:"total_points"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// LeaderVote is one member's vote for a team leader.
type LeaderVote struct {
	bun.BaseModel `bun:"table:leader_votes,alias:lv"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TeamID      uuid.UUID `bun:"team_id,notnull,type:uuid" json:"team_id"`
	VoterID     uuid.UUID `bun:"voter_id,notnull,type:uuid" json:"voter_id"`
	CandidateID uuid.UUID `bun:"candidate_id,notnull,type:uuid" json:"candidate_id"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// DiceRollData is the persisted state of a pick-order dice tie-break.
type DiceRollData struct {
	Round     int               `json:"round"`
	Picks     map[uuid.UUID]int `json:"picks"`
	Target    *int              `json:"target"`
	Distances map[uuid.UUID]int `json:"distances,omitempty"`
	WinnerID  *uuid.UUID        `json:"winner_id"`
}

// NewDiceRollData starts round 1 with no picks.
func NewDiceRollData() *DiceRollData {
	return &DiceRollData{Round: 1, Picks: map[uuid.UUID]int{}}
}

// Session is a player together with its tournament, as resolved by create, join and reconnect.
type Session struct {
	Tournament *Tournament `json:"tournament"`
	Player     *Player     `json:"player"`
}

// VoteOutcome reports the recorded vote and the team leader when a majority was reached.
type VoteOutcome struct {
	Vote     *LeaderVote `json:"vote"`
	LeaderID *uuid.UUID  `json:"leader_id"`
}
