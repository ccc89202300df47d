package permissions

import (
	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
)

// Permissions defines pub/sub permissions for a user.
type Permissions struct {
	Publish   PermissionSet `json:"pub"`
	Subscribe PermissionSet `json:"sub"`
}

// PermissionSet contains allow and deny patterns.
type PermissionSet struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Command subject patterns by module.
const (
	TournamentCommands = "tournament.*.requested.v1"
	GameCommands       = "game.*.requested.v1"
	ScoreboardQueries  = "scoreboard.*.requested.v1"
	ReplyInbox         = "_INBOX.>"
)

// SeatRequests are the commands a device without a seat may send.
var SeatRequests = []string{
	tournamentevents.CreateTournamentRequestedV1,
	tournamentevents.JoinTournamentRequestedV1,
	tournamentevents.ReconnectPlayerRequestedV1,
}

// Builder constructs permission sets from session claims.
type Builder struct{}

// NewBuilder creates a new permission builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForClaims lets a device read its own tournament feed and every game feed. Game ids are not
// known when the device connects, so game topics are granted by wildcard. Spectators may issue
// read queries and reclaim their seat. Claims without a seat get the guest set.
func (b *Builder) ForClaims(claims *authdomain.Claims) *Permissions {
	if claims.IsGuest() {
		return b.ForGuest()
	}

	sub := []string{
		eventbus.TournamentFeedTopic(claims.TournamentID),
		eventbus.GameFeedRoot + ".*",
		ReplyInbox,
	}

	pub := []string{ScoreboardQueries}
	if claims.CanCommand() {
		pub = append(pub, TournamentCommands, GameCommands)
	} else {
		pub = append(pub, tournamentevents.ReconnectPlayerRequestedV1)
	}

	return &Permissions{
		Subscribe: PermissionSet{Allow: sub},
		Publish:   PermissionSet{Allow: pub},
	}
}

// ForGuest lets a device that holds no seat create, join or reconnect and read its replies.
// It sees no feed until it connects again with a session token.
func (b *Builder) ForGuest() *Permissions {
	pub := make([]string, len(SeatRequests))
	copy(pub, SeatRequests)
	return &Permissions{
		Subscribe: PermissionSet{Allow: []string{ReplyInbox}},
		Publish:   PermissionSet{Allow: pub},
	}
}
