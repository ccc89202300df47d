package gametypes

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultTitlePoints is the value of every per-game and ceremony title.
const DefaultTitlePoints = 0.5

// GameType is a playable game. Built-ins have no tournament.
type GameType struct {
	bun.BaseModel `bun:"table:game_types,alias:gt"`

	ID               uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	TournamentID     *uuid.UUID      `bun:"tournament_id,type:uuid" json:"tournament_id"`
	Name             string          `bun:"name,notnull" json:"name"`
	Emoji            string          `bun:"emoji,notnull" json:"emoji"`
	Description      string          `bun:"description,notnull" json:"description"`
	PlayerInputs     json.RawMessage `bun:"player_inputs,type:jsonb,notnull" json:"player_inputs"`
	RefereeInputs    json.RawMessage `bun:"referee_inputs,type:jsonb,notnull" json:"referee_inputs"`
	TitleDefinitions json.RawMessage `bun:"title_definitions,type:jsonb,notnull" json:"title_definitions"`
	CreatedAt        time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// IsBuiltIn reports whether the type is visible to every tournament.
func (g *GameType) IsBuiltIn() bool {
	return g.TournamentID == nil
}

// Game is one picked round of a tournament.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TournamentID uuid.UUID `bun:"tournament_id,notnull,type:uuid" json:"tournament_id"`
	GameTypeID   uuid.UUID `bun:"game_type_id,notnull,type:uuid" json:"game_type_id"`
	Status       Status    `bun:"status,notnull" json:"status"`
	PickedByTeam uuid.UUID `bun:"picked_by_team,notnull,type:uuid" json:"picked_by_team"`
	GameOrder    int       `bun:"game_order,notnull" json:"game_order"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// PlayerStat is one submitted stat of a player in a game.
type PlayerStat struct {
	bun.BaseModel `bun:"table:player_stats,alias:ps"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	GameID      uuid.UUID `bun:"game_id,notnull,type:uuid" json:"game_id"`
	PlayerID    uuid.UUID `bun:"player_id,notnull,type:uuid" json:"player_id"`
	StatKey     string    `bun:"stat_key,notnull" json:"stat_key"`
	StatValue   StatValue `bun:"stat_value,type:jsonb" json:"stat_value"`
	SubmittedAt time.Time `bun:"submitted_at,notnull,default:current_timestamp" json:"submitted_at"`
}

// StatInput is one key/value pair in a stat submission.
type StatInput struct {
	Key   string    `json:"key"`
	Value StatValue `json:"value"`
}

// GameResult is the referee's outcome of a game.
type GameResult struct {
	bun.BaseModel `bun:"table:game_results,alias:gr"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	GameID        uuid.UUID       `bun:"game_id,notnull,type:uuid" json:"game_id"`
	WinningTeamID *uuid.UUID      `bun:"winning_team_id,type:uuid" json:"winning_team_id"`
	ResultData    json.RawMessage `bun:"result_data,type:jsonb" json:"result_data"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Title is an award. A nil GameID marks a ceremony title.
type Title struct {
	bun.BaseModel `bun:"table:titles,alias:ti"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	TournamentID uuid.UUID  `bun:"tournament_id,notnull,type:uuid" json:"tournament_id"`
	GameID       *uuid.UUID `bun:"game_id,type:uuid" json:"game_id"`
	PlayerID     uuid.UUID  `bun:"player_id,notnull,type:uuid" json:"player_id"`
	TitleName    string     `bun:"title_name,notnull" json:"title_name"`
	TitleDesc    string     `bun:"title_desc,notnull" json:"title_desc"`
	IsFunny      bool       `bun:"is_funny,notnull" json:"is_funny"`
	Points       float64    `bun:"points,notnull" json:"points"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// IsGlobal reports whether the title is a ceremony award.
func (t *Title) IsGlobal() bool {
	return t.GameID == nil
}
