package tournament

import (
	"context"
	"fmt"
	"sync"
	"time"

	tournamentservice "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/application"
	tournamenthandlers "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/handlers"
	tournamentqueue "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/router"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Config holds the tournament module settings.
type Config struct {
	DSN           string
	StaleAfter    time.Duration
	SweepInterval time.Duration
	// DisableQueue skips the River client, e.g. when River tables are not migrated.
	DisableQueue bool
}

// Module represents the tournament module.
type Module struct {
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	QueueService      tournamentqueue.QueueService
	cancelFunc        context.CancelFunc
	observability     *observability.Observability
}

// NewTournamentModule creates and initializes a new tournament module.
func NewTournamentModule(
	ctx context.Context,
	cfg Config,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	feed changefeed.Publisher,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger.With("module", "tournament")
	tracer := obs.Tracer("tournament")

	logger.InfoContext(ctx, "tournament.NewTournamentModule initializing")

	repo := tournamentdb.NewRepository(db)
	metrics := observability.NewOperationMetrics(obs.Registry, "tournament")

	service := tournamentservice.NewTournamentService(
		repo, logger, metrics, tracer, db, feed,
		tournamentservice.WithStaleAfter(cfg.StaleAfter),
	)

	handlers := tournamenthandlers.NewTournamentHandlers(service, logger, tracer)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, eventBus, eventBus, tracer)
	if err := tournamentRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	m := &Module{
		TournamentService: service,
		TournamentRouter:  tournamentRouter,
		observability:     obs,
	}

	if !cfg.DisableQueue {
		queue, err := tournamentqueue.NewService(ctx, db, logger, cfg.DSN,
			observability.NewOperationMetrics(obs.Registry, "tournament_queue"),
			obs.Registry, service,
			tournamentqueue.Options{SweepInterval: cfg.SweepInterval, StaleAfter: cfg.StaleAfter},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create tournament queue service: %w", err)
		}
		m.QueueService = queue
	}

	return m, nil
}

// Run starts the tournament module and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start tournament queue service", "error", err)
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close shuts down the tournament module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.QueueService.Stop(stopCtx); err != nil {
			logger.Error("Error stopping tournament queue service", "error", err)
		}
	}

	if m.TournamentRouter != nil {
		if err := m.TournamentRouter.Close(); err != nil {
			logger.Error("Error closing TournamentRouter from module", "error", err)
			return fmt.Errorf("error closing TournamentRouter: %w", err)
		}
	}

	logger.Info("Tournament module stopped")
	return nil
}
