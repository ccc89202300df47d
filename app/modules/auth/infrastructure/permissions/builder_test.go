package permissions

import (
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

func TestBuilder_ForClaims(t *testing.T) {
	builder := NewBuilder()
	tournamentID := uuid.New()
	feed := "feed.tournament." + tournamentID.String()

	tests := []struct {
		name       string
		role       tournamenttypes.Role
		wantPub    []string
		wantNotPub []string
	}{
		{
			name:    "referee",
			role:    tournamenttypes.RoleReferee,
			wantPub: []string{TournamentCommands, GameCommands, ScoreboardQueries},
		},
		{
			name:    "player",
			role:    tournamenttypes.RolePlayer,
			wantPub: []string{TournamentCommands, GameCommands, ScoreboardQueries},
		},
		{
			name:       "spectator",
			role:       tournamenttypes.RoleSpectator,
			wantPub:    []string{ScoreboardQueries, "tournament.reconnect.requested.v1"},
			wantNotPub: []string{TournamentCommands, GameCommands},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := builder.ForClaims(&authdomain.Claims{PlayerID: uuid.New(), TournamentID: tournamentID, Role: tt.role})

			for _, s := range []string{feed, "feed.game.*", ReplyInbox} {
				if !contains(p.Subscribe.Allow, s) {
					t.Errorf("expected subscription allow for %s, got %v", s, p.Subscribe.Allow)
				}
			}
			if contains(p.Subscribe.Allow, "feed.tournament.*") {
				t.Error("expected feed access to be scoped to one tournament")
			}
			for _, s := range tt.wantPub {
				if !contains(p.Publish.Allow, s) {
					t.Errorf("expected publish allow for %s", s)
				}
			}
			for _, s := range tt.wantNotPub {
				if contains(p.Publish.Allow, s) {
					t.Errorf("did not expect publish allow for %s", s)
				}
			}
		})
	}
}

func TestBuilder_ForGuest(t *testing.T) {
	builder := NewBuilder()

	for name, p := range map[string]*Permissions{
		"explicit":        builder.ForGuest(),
		"seatless claims": builder.ForClaims(authdomain.GuestClaims(time.Now())),
	} {
		t.Run(name, func(t *testing.T) {
			for _, s := range []string{
				"tournament.create.requested.v1",
				"tournament.join.requested.v1",
				"tournament.reconnect.requested.v1",
			} {
				if !contains(p.Publish.Allow, s) {
					t.Errorf("expected publish allow for %s, got %v", s, p.Publish.Allow)
				}
			}
			for _, s := range []string{TournamentCommands, GameCommands, ScoreboardQueries} {
				if contains(p.Publish.Allow, s) {
					t.Errorf("did not expect publish allow for %s", s)
				}
			}
			if len(p.Subscribe.Allow) != 1 || p.Subscribe.Allow[0] != ReplyInbox {
				t.Errorf("expected guests to subscribe only to %s, got %v", ReplyInbox, p.Subscribe.Allow)
			}
		})
	}

	first := builder.ForGuest()
	first.Publish.Allow[0] = "mutated"
	if builder.ForGuest().Publish.Allow[0] == "mutated" {
		t.Error("expected each guest permission set to own its slice")
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
