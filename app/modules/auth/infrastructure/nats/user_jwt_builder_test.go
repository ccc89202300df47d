package authnats

import (
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/permissions"
	"github.com/google/uuid"
	"github.com/nats-io/nkeys"
)

func TestUserJWTBuilder_BuildUserJWT(t *testing.T) {
	accountKP, _ := nkeys.CreateAccount()
	userKP, _ := nkeys.CreateUser()
	userNkey, _ := userKP.PublicKey()

	builder := NewUserJWTBuilder(accountKP, "APP")

	claims := &authdomain.Claims{
		PlayerID:     uuid.New(),
		TournamentID: uuid.New(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	perms := &permissions.Permissions{
		Publish:   permissions.PermissionSet{Allow: []string{"pub1"}},
		Subscribe: permissions.PermissionSet{Allow: []string{"sub1"}},
	}

	token, err := builder.BuildUserJWT(userNkey, claims, perms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decode(t, accountKP, token)
	if got["sub"] != userNkey {
		t.Errorf("expected subject %s, got %v", userNkey, got["sub"])
	}
	if got["aud"] != "APP" {
		t.Errorf("expected audience APP, got %v", got["aud"])
	}
	if exp, _ := got["exp"].(float64); int64(exp) != claims.ExpiresAt.Unix() {
		t.Errorf("expected expiry to follow the session, got %v", got["exp"])
	}
	nats := got["nats"].(map[string]any)
	pub := nats["pub"].(map[string]any)["allow"].([]any)
	if len(pub) != 1 || pub[0] != "pub1" {
		t.Errorf("unexpected pub allow %v", pub)
	}
}

func TestUserJWTBuilder_BuildUserJWT_Guest(t *testing.T) {
	accountKP, _ := nkeys.CreateAccount()
	userKP, _ := nkeys.CreateUser()
	userNkey, _ := userKP.PublicKey()

	builder := NewUserJWTBuilder(accountKP, "APP")
	claims := authdomain.GuestClaims(time.Now())

	token, err := builder.BuildUserJWT(userNkey, claims, permissions.NewBuilder().ForGuest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decode(t, accountKP, token)
	if got["name"] != "guest" {
		t.Errorf("expected guest name, got %v", got["name"])
	}
	if exp, _ := got["exp"].(float64); int64(exp) != claims.ExpiresAt.Unix() {
		t.Errorf("expected guest expiry, got %v", got["exp"])
	}
	sub := got["nats"].(map[string]any)["sub"].(map[string]any)["allow"].([]any)
	if len(sub) != 1 || sub[0] != permissions.ReplyInbox {
		t.Errorf("unexpected guest sub allow %v", sub)
	}
}

func TestUserJWTBuilder_SignResponse(t *testing.T) {
	accountKP, _ := nkeys.CreateAccount()
	builder := NewUserJWTBuilder(accountKP, "APP")

	token, err := builder.SignResponse("server", "user", "", "invalid token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decode(t, accountKP, token)
	nats := got["nats"].(map[string]any)
	if nats["error"] != "invalid token" {
		t.Errorf("expected error to be carried, got %v", nats["error"])
	}
}
