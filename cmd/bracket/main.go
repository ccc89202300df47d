package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/party-bracket/app/modules/auth"
	authhandlers "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/party-bracket/app/modules/game"
	"github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard"
	"github.com/Black-And-White-Club/party-bracket/app/modules/tournament"
	"github.com/Black-And-White-Club/party-bracket/config"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// closer is satisfied by every module.
type closer interface {
	Close() error
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.Init(observability.Config{
		ServiceName: "party-bracket",
		Environment: cfg.Observability.Environment,
		Version:     cfg.Observability.Version,
		LogLevel:    cfg.Observability.LogLevel,
	})
	logger := obs.Logger
	logger.Info("Starting party-bracket")

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger, "party-bracket", obs.Tracer("eventbus"))
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}
	defer eventBus.Close()

	// The auth callout and the replies it signs need a plain connection.
	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name("party-bracket-auth"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}
	router.AddMiddleware(middleware.CorrelationID, middleware.Recoverer)
	if os.Getenv("APP_ENV") != "test" {
		metrics.NewPrometheusMetricsBuilder(obs.Registry, "party_bracket", "router").AddPrometheusRouterMetrics(router)
	}

	httpRouter := chi.NewRouter()
	httpRouter.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		authhandlers.AllowOrigins(cfg.HTTP.AllowedOrigins),
		authhandlers.Throttle(authhandlers.NewDeviceLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst), logger),
	)
	httpRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if !nc.IsConnected() {
			http.Error(w, "nats unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	httpRouter.Handle("/metrics", obs.MetricsHandler())

	feed := changefeed.NewPublisher(eventBus, logger.With("component", "changefeed"), obs.Registry)

	tournamentModule, err := tournament.NewTournamentModule(ctx, tournament.Config{
		DSN:           cfg.Postgres.DSN,
		StaleAfter:    cfg.Tournament.StaleLobbyAfter,
		SweepInterval: cfg.Tournament.SweepInterval,
		DisableQueue:  cfg.Tournament.DisableQueue,
	}, obs, eventBus, router, feed, ctx, db)
	if err != nil {
		log.Fatalf("Failed to create tournament module: %v", err)
	}

	gameModule, err := game.NewGameModule(ctx, obs, eventBus, router, feed, ctx, db)
	if err != nil {
		log.Fatalf("Failed to create game module: %v", err)
	}

	scoreboardModule, err := scoreboard.NewScoreboardModule(ctx, obs, eventBus, router, httpRouter, ctx, db)
	if err != nil {
		log.Fatalf("Failed to create scoreboard module: %v", err)
	}

	authModule, err := auth.NewModule(ctx, cfg, obs, nc, httpRouter, db)
	if err != nil {
		log.Fatalf("Failed to create auth module: %v", err)
	}
	// Without the callout devices connect tokenless, so commands cannot be bound to a seat.
	if cfg.AuthCallout.Enabled {
		router.AddMiddleware(authModule.CommandGuard(eventBus).Middleware)
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go tournamentModule.Run(ctx, &wg)
	go gameModule.Run(ctx, &wg)
	go scoreboardModule.Run(ctx, &wg)
	go authModule.Run(ctx, &wg)

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- router.Run(ctx)
	}()

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-routerErr:
		if err != nil {
			logger.Error("Message router stopped", "error", err)
		}
		cancel()
	}
	logger.Info("Shutting down party-bracket")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", "error", err)
	}
	if err := router.Close(); err != nil {
		logger.Error("Error closing message router", "error", err)
	}
	for _, m := range []closer{authModule, scoreboardModule, gameModule, tournamentModule} {
		if err := m.Close(); err != nil {
			logger.Error("Error during shutdown", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Timed out waiting for modules to stop")
	}

	logger.Info("party-bracket stopped")
}
