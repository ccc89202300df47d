package scoreboard

import (
	"context"
	"fmt"
	"sync"

	scoreboardservice "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/application"
	scoreboardhandlers "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/handlers"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	scoreboardrouter "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/router"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the scoreboard module.
type Module struct {
	ScoreboardService scoreboardservice.Service
	ScoreboardRouter  *scoreboardrouter.ScoreboardRouter
	cancelFunc        context.CancelFunc
	observability     *observability.Observability
}

// NewScoreboardModule wires the read side. httpRouter may be nil when the HTTP API is disabled.
func NewScoreboardModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	httpRouter chi.Router,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger.With("module", "scoreboard")
	tracer := obs.Tracer("scoreboard")

	logger.InfoContext(ctx, "scoreboard.NewScoreboardModule initializing")

	repo := scoreboarddb.NewRepository(db)
	metrics := observability.NewOperationMetrics(obs.Registry, "scoreboard")
	service := scoreboardservice.NewScoreboardService(repo, logger, metrics, tracer, db)

	handlers := scoreboardhandlers.NewScoreboardHandlers(service, logger, tracer)

	sbRouter := scoreboardrouter.NewScoreboardRouter(logger, router, eventBus, eventBus, tracer)
	if err := sbRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure scoreboard router: %w", err)
	}

	if httpRouter != nil {
		scoreboardhandlers.Routes(httpRouter, handlers)
	}

	return &Module{
		ScoreboardService: service,
		ScoreboardRouter:  sbRouter,
		observability:     obs,
	}, nil
}

// Run blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting scoreboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Scoreboard module goroutine stopped")
}

func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping scoreboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ScoreboardRouter != nil {
		if err := m.ScoreboardRouter.Close(); err != nil {
			logger.Error("Error closing ScoreboardRouter from module", "error", err)
			return fmt.Errorf("error closing ScoreboardRouter: %w", err)
		}
	}

	logger.Info("Scoreboard module stopped")
	return nil
}
