package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	authservice "github.com/Black-And-White-Club/party-bracket/app/modules/auth/application"
	authguard "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/guard"
	authhandlers "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/jwt"
	authnats "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/nats"
	authrouter "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/router"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/config"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
	"github.com/uptrace/bun"
)

// Module represents the auth module.
type Module struct {
	config     *config.Config
	service    authservice.Service
	handlers   authhandlers.Handlers
	router     *authrouter.Router
	db         *bun.DB
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new auth module. nc may be nil when the auth callout is disabled, and
// httpRouter may be nil when the HTTP API is disabled.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	nc *nats.Conn,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger.With("module", "auth")
	tracer := obs.Tracer("auth")

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// The issuer key must match auth_callout.issuer in the NATS server config.
	var userJWTBuilder authnats.UserJWTBuilder
	if cfg.AuthCallout.Enabled {
		accountKey, err := nkeys.FromSeed([]byte(cfg.AuthCallout.IssuerNKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse account key: %w", err)
		}
		userJWTBuilder = authnats.NewUserJWTBuilder(accountKey, cfg.AuthCallout.Account)
	}

	service := authservice.NewService(
		jwtProvider,
		userJWTBuilder,
		scoreboarddb.NewRepository(db),
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	var router *authrouter.Router
	if cfg.AuthCallout.Enabled {
		if nc == nil {
			return nil, fmt.Errorf("auth callout enabled without a NATS connection")
		}
		router = authrouter.NewRouter(handlers, nc)
	}

	if httpRouter != nil {
		httpRouter.Post("/api/auth/session", handlers.HandleHTTPSession)
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		router:   router,
		db:       db,
		logger:   logger,
	}, nil
}

// Run starts the auth callout subscription and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.router != nil {
		if err := m.router.Start(m.config.AuthCallout.Subject); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start auth router", "error", err)
			return
		}
	}

	m.logger.InfoContext(ctx, "Auth module started",
		"auth_callout_enabled", m.config.AuthCallout.Enabled,
	)

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Auth module goroutine stopped")
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.router != nil {
		if err := m.router.Stop(); err != nil {
			m.logger.Error("Error stopping auth router", "error", err)
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("Auth module stopped")
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}

// CommandGuard binds seat-bound commands to the sending device's session. Replies to rejected
// commands go out on publisher.
func (m *Module) CommandGuard(publisher message.Publisher) *authguard.Guard {
	return authguard.New(m.service, scoreboarddb.NewRepository(m.db), publisher, m.logger.With("component", "command_guard"))
}
