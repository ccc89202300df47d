package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Feed topic roots. Row changes are published per tournament and per game so that a device
// can be granted exactly the subjects of the tournament it belongs to.
const (
	TournamentFeedRoot = "feed.tournament"
	GameFeedRoot       = "feed.game"
)

// PublishWithTournamentScope publishes msg on {baseTopic}.{tournamentID}.
//
// Example:
//   - baseTopic: "feed.tournament"
//   - tournamentID: "7c0d..."
//   - result: "feed.tournament.7c0d..."
func PublishWithTournamentScope(bus message.Publisher, baseTopic string, tournamentID uuid.UUID, msg *message.Message) error {
	if tournamentID == uuid.Nil {
		return fmt.Errorf("tournamentID cannot be empty for tournament-scoped publish")
	}
	return bus.Publish(FormatScopedTopic(baseTopic, tournamentID), msg)
}

// FormatScopedTopic formats {baseTopic}.{id} without publishing.
func FormatScopedTopic(baseTopic string, id uuid.UUID) string {
	return fmt.Sprintf("%s.%s", baseTopic, id)
}

// TournamentFeedTopic is the change feed subject for one tournament.
func TournamentFeedTopic(tournamentID uuid.UUID) string {
	return FormatScopedTopic(TournamentFeedRoot, tournamentID)
}

// GameFeedTopic is the change feed subject for one game.
func GameFeedTopic(gameID uuid.UUID) string {
	return FormatScopedTopic(GameFeedRoot, gameID)
}
