package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/permissions"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{
		PlayerID:     uuid.New(),
		TournamentID: uuid.New(),
		Identity:     tournamenttypes.AnonymousIdentity("device-1"),
		Role:         tournamenttypes.RolePlayer,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

// ------------------------
// Fake User JWT Builder
// ------------------------

type FakeUserJWTBuilder struct {
	trace []string

	BuildUserJWTFunc func(userNkey string, claims *authdomain.Claims, perms *permissions.Permissions) (string, error)
	SignResponseFunc func(serverKey, userNkey, userJWT, errMsg string) (string, error)
}

func (f *FakeUserJWTBuilder) Trace() []string {
	return f.trace
}

func (f *FakeUserJWTBuilder) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserJWTBuilder) BuildUserJWT(userNkey string, claims *authdomain.Claims, perms *permissions.Permissions) (string, error) {
	f.record("BuildUserJWT")
	if f.BuildUserJWTFunc != nil {
		return f.BuildUserJWTFunc(userNkey, claims, perms)
	}
	return "fake-nats-jwt", nil
}

func (f *FakeUserJWTBuilder) SignResponse(serverKey, userNkey, userJWT, errMsg string) (string, error) {
	f.record("SignResponse")
	if f.SignResponseFunc != nil {
		return f.SignResponseFunc(serverKey, userNkey, userJWT, errMsg)
	}
	return "signed:" + userJWT + errMsg, nil
}

// ------------------------
// Fake Player Reader
// ------------------------

type FakePlayerReader struct {
	GetPlayerFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
}

func (f *FakePlayerReader) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	return nil, scoreboarddb.ErrNotFound
}

var _ PlayerReader = (*FakePlayerReader)(nil)
