package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/party-bracket/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	IssueSessionFunc          func(ctx context.Context, playerID uuid.UUID, identity tournamenttypes.Identity) (*authservice.SessionResponse, error)
	ValidateTokenFunc         func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
	HandleNATSAuthRequestFunc func(ctx context.Context, req *authservice.NATSAuthRequest) (*authservice.NATSAuthResponse, error)
}

func (f *FakeService) IssueSession(ctx context.Context, playerID uuid.UUID, identity tournamenttypes.Identity) (*authservice.SessionResponse, error) {
	if f.IssueSessionFunc != nil {
		return f.IssueSessionFunc(ctx, playerID, identity)
	}
	return &authservice.SessionResponse{Token: "tok", PlayerID: playerID}, nil
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return &authdomain.Claims{}, nil
}

func (f *FakeService) HandleNATSAuthRequest(ctx context.Context, req *authservice.NATSAuthRequest) (*authservice.NATSAuthResponse, error) {
	if f.HandleNATSAuthRequestFunc != nil {
		return f.HandleNATSAuthRequestFunc(ctx, req)
	}
	return &authservice.NATSAuthResponse{Jwt: "test-jwt", SignedResponse: "signed"}, nil
}

var _ authservice.Service = (*FakeService)(nil)
