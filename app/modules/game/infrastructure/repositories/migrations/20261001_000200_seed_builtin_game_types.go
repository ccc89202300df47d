package gamemigrations

import (
	"context"
	"encoding/json"
	"fmt"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BuiltinGameTypes are visible to every tournament.
func BuiltinGameTypes() []*gametypes.GameType {
	return []*gametypes.GameType{
		{
			Name:        "Flip Cup",
			Emoji:       "🥤",
			Description: "Relay race: drink, flip, next teammate.",
			PlayerInputs: json.RawMessage(`[
				{"type":"number","key":"flip_attempts","label":"Flip attempts","min":1,"max":50},
				{"type":"boolean","key":"first_try","label":"Flipped on the first try"}
			]`),
			RefereeInputs: json.RawMessage(`[{"type":"team_select","key":"winner","label":"Winning team"}]`),
			TitleDefinitions: json.RawMessage(`[
				{"name":"Wrist Wizard","description":"Fewest flip attempts","condition":{"type":"lowest","stat":"flip_attempts"}},
				{"name":"Butterfingers","description":"Most flip attempts","is_funny":true,"condition":{"type":"highest","stat":"flip_attempts"}},
				{"name":"One and Done","description":"Flipped on the first try","condition":{"type":"flag","stat":"first_try"}}
			]`),
		},
		{
			Name:        "Trivia",
			Emoji:       "🧠",
			Description: "Ten questions, every player answers alone.",
			PlayerInputs: json.RawMessage(`[
				{"type":"number","key":"correct","label":"Correct answers","min":0,"max":10}
			]`),
			RefereeInputs: json.RawMessage(`[{"type":"team_select","key":"winner","label":"Winning team"}]`),
			TitleDefinitions: json.RawMessage(`[
				{"name":"Know-It-All","description":"Most correct answers","condition":{"type":"highest","stat":"correct"}},
				{"name":"Perfect Score","description":"All ten correct","condition":{"type":"exact","stat":"correct","value":10}},
				{"name":"Blank Stare","description":"Fewest correct answers","is_funny":true,"condition":{"type":"lowest","stat":"correct"}}
			]`),
		},
		{
			Name:        "Charades",
			Emoji:       "🎭",
			Description: "Act it out, no talking.",
			PlayerInputs: json.RawMessage(`[
				{"type":"number","key":"guessed","label":"Words guessed","min":0,"max":30},
				{"type":"boolean","key":"spoke","label":"Talked while acting"}
			]`),
			RefereeInputs: json.RawMessage(`[
				{"type":"team_select","key":"winner","label":"Winning team"},
				{"type":"player_select","key":"best_actor","label":"Best actor"}
			]`),
			TitleDefinitions: json.RawMessage(`[
				{"name":"Mind Reader","description":"Five or more words guessed","condition":{"type":"threshold","stat":"guessed","value":5}},
				{"name":"Loose Lips","description":"Talked while acting","is_funny":true,"condition":{"type":"flag","stat":"spoke"}}
			]`),
		},
		{
			Name:        "Beer Pong",
			Emoji:       "🏓",
			Description: "Classic cups, two per side at a time.",
			PlayerInputs: json.RawMessage(`[
				{"type":"number","key":"cups","label":"Cups sunk","min":0,"max":10},
				{"type":"choice","key":"shot","label":"Signature shot","options":["arc","fastball","bounce"]}
			]`),
			RefereeInputs: json.RawMessage(`[{"type":"team_select","key":"winner","label":"Winning team"}]`),
			TitleDefinitions: json.RawMessage(`[
				{"name":"Sharpshooter","description":"Most cups sunk","condition":{"type":"highest","stat":"cups"}},
				{"name":"Air Ball","description":"No cups sunk","is_funny":true,"condition":{"type":"exact","stat":"cups","value":0}}
			]`),
		},
	}
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Seeding built-in game types...")

		builtins := BuiltinGameTypes()
		for _, gt := range builtins {
			gt.ID = uuid.New()
		}
		_, err := db.NewInsert().
			Model(&builtins).
			ExcludeColumn("created_at").
			On("CONFLICT (name) WHERE tournament_id IS NULL DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed built-in game types: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Removing built-in game types...")

		names := make([]string, 0, 4)
		for _, gt := range BuiltinGameTypes() {
			names = append(names, gt.Name)
		}
		_, err := db.NewDelete().
			Model((*gametypes.GameType)(nil)).
			Where("tournament_id IS NULL").
			Where("name IN (?)", bun.In(names)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove built-in game types: %w", err)
		}
		return nil
	})
}
