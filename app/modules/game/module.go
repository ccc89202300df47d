package game

import (
	"context"
	"fmt"
	"sync"

	gameservice "github.com/Black-And-White-Club/party-bracket/app/modules/game/application"
	gamehandlers "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/handlers"
	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	gamerouter "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/router"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the game module.
type Module struct {
	GameService   gameservice.Service
	GameRouter    *gamerouter.GameRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewGameModule creates and initializes a new game module.
func NewGameModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	feed changefeed.Publisher,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger.With("module", "game")
	tracer := obs.Tracer("game")

	logger.InfoContext(ctx, "game.NewGameModule initializing")

	repo := gamedb.NewRepository(db)
	metrics := observability.NewOperationMetrics(obs.Registry, "game")
	service := gameservice.NewGameService(repo, logger, metrics, tracer, db, feed)

	handlers := gamehandlers.NewGameHandlers(service, logger, tracer)

	gameRouter := gamerouter.NewGameRouter(logger, router, eventBus, eventBus, tracer)
	if err := gameRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure game router: %w", err)
	}

	return &Module{
		GameService:   service,
		GameRouter:    gameRouter,
		observability: obs,
	}, nil
}

// Run blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting game module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Game module goroutine stopped")
}

// Close shuts down the game module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping game module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.GameRouter != nil {
		if err := m.GameRouter.Close(); err != nil {
			logger.Error("Error closing GameRouter from module", "error", err)
			return fmt.Errorf("error closing GameRouter: %w", err)
		}
	}

	logger.Info("Game module stopped")
	return nil
}
