// Package scoreboardtypes holds the read-side views served to devices and the HTTP API.
package scoreboardtypes

import (
	"time"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Snapshot is everything a reconnecting device loads before it opens the feed.
type Snapshot struct {
	Tournament *tournamenttypes.Tournament   `json:"tournament"`
	Players    []*tournamenttypes.Player     `json:"players"`
	Teams      []*tournamenttypes.Team       `json:"teams"`
	Votes      []*tournamenttypes.LeaderVote `json:"votes"`
	Games      []*gametypes.Game             `json:"games"`
	Titles     []*gametypes.Title            `json:"titles"`
}

type GameSummary struct {
	ID               uuid.UUID  `json:"id"`
	GameOrder        int        `json:"game_order"`
	GameTypeName     string     `json:"game_type_name"`
	Emoji            string     `json:"emoji"`
	PickedByTeamID   uuid.UUID  `json:"picked_by_team_id"`
	PickedByTeamName string     `json:"picked_by_team_name"`
	WinningTeamID    *uuid.UUID `json:"winning_team_id"`
	WinningTeamName  string     `json:"winning_team_name,omitempty"`
}

// TitleView is a title joined with the names devices display.
type TitleView struct {
	ID          uuid.UUID  `json:"id"`
	GameID      *uuid.UUID `json:"game_id"`
	GameOrder   int        `json:"game_order,omitempty"`
	PlayerID    uuid.UUID  `json:"player_id"`
	PlayerName  string     `json:"player_name"`
	TeamID      *uuid.UUID `json:"team_id"`
	TeamName    string     `json:"team_name,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsFunny     bool       `json:"is_funny"`
	Points      float64    `json:"points"`
}

type LeaderboardEntry struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamName   string    `json:"team_name,omitempty"`
	Titles     int       `json:"titles"`
	Points     float64   `json:"points"`
}

// Scoreboard is the running standings of one tournament.
type Scoreboard struct {
	Tournament  *tournamenttypes.Tournament `json:"tournament"`
	Teams       []*tournamenttypes.Team     `json:"teams"`
	Players     []*tournamenttypes.Player   `json:"players"`
	Games       []GameSummary               `json:"games"`
	Titles      []TitleView                 `json:"titles"`
	Leaderboard []LeaderboardEntry          `json:"leaderboard"`
}

// Ceremony is the scoreboard with the outcome. WinnerTeamID is nil on a tie.
type Ceremony struct {
	Scoreboard
	WinnerTeamID *uuid.UUID `json:"winner_team_id"`
	Tie          bool       `json:"tie"`
}

type HistoryEntry struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Name         string    `json:"name"`
	RoomCode     string    `json:"room_code"`
	NumGames     int       `json:"num_games"`
	CompletedAt  time.Time `json:"completed_at"`
}

type StatEntry struct {
	Key   string              `json:"key"`
	Value gametypes.StatValue `json:"value"`
}

type PlayerGame struct {
	GameID       uuid.UUID   `json:"game_id"`
	GameOrder    int         `json:"game_order"`
	GameTypeName string      `json:"game_type_name"`
	Stats        []StatEntry `json:"stats"`
	Titles       []string    `json:"titles"`
}

// PlayerDetail is one player's stats and titles across a tournament.
type PlayerDetail struct {
	Player      *tournamenttypes.Player `json:"player"`
	TeamName    string                  `json:"team_name,omitempty"`
	Games       []PlayerGame            `json:"games"`
	Titles      []TitleView             `json:"titles"`
	TotalPoints float64                 `json:"total_points"`
}
