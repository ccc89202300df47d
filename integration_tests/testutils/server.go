package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/party-bracket/app/modules/game"
	"github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard"
	"github.com/Black-And-White-Club/party-bracket/app/modules/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Server is the command side running against the environment's containers.
type Server struct {
	Tournament *tournament.Module
	Game       *game.Module
	Scoreboard *scoreboard.Module
}

// ServerOption adjusts the router before it runs.
type ServerOption func(*message.Router)

// WithMiddleware installs m on every handler.
func WithMiddleware(m message.HandlerMiddleware) ServerOption {
	return func(r *message.Router) { r.AddMiddleware(m) }
}

// StartServer wires the tournament, game and scoreboard modules onto a fresh router and runs it
// until the test ends. The River queue stays off; sweeps are exercised through the service.
func StartServer(t *testing.T, env *TestEnvironment, opts ...ServerOption) *Server {
	t.Helper()

	ctx, cancel := context.WithCancel(env.Ctx)
	router, err := NewRouter()
	if err != nil {
		cancel()
		t.Fatalf("failed to create router: %v", err)
	}

	feed := changefeed.NewPublisher(env.EventBus, env.Obs.Logger, nil)

	tm, err := tournament.NewTournamentModule(ctx, tournament.Config{DisableQueue: true}, env.Obs, env.EventBus, router, feed, ctx, env.DB)
	if err != nil {
		cancel()
		t.Fatalf("failed to create tournament module: %v", err)
	}
	gm, err := game.NewGameModule(ctx, env.Obs, env.EventBus, router, feed, ctx, env.DB)
	if err != nil {
		cancel()
		t.Fatalf("failed to create game module: %v", err)
	}
	sm, err := scoreboard.NewScoreboardModule(ctx, env.Obs, env.EventBus, router, nil, ctx, env.DB)
	if err != nil {
		cancel()
		t.Fatalf("failed to create scoreboard module: %v", err)
	}

	for _, opt := range opts {
		opt(router)
	}

	go func() {
		if err := router.Run(ctx); err != nil {
			t.Logf("router stopped: %v", err)
		}
	}()

	select {
	case <-router.Running():
	case <-time.After(10 * time.Second):
		cancel()
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		_ = router.Close()
	})

	return &Server{Tournament: tm, Game: gm, Scoreboard: sm}
}
