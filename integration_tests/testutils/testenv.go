package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"

	_ "github.com/jackc/pgx/v5/stdlib"

	gamemigrations "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/party-bracket/config"
	"github.com/Black-And-White-Club/party-bracket/integration_tests/containers"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

// TestEnvironment holds the containers and connections shared by a package's integration tests.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	NatsConn      *nats.Conn
	Config        *config.Config
	Obs           *observability.Observability
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetTestEnv returns the package-wide environment, starting it on first use. Integration tests
// are skipped in -short mode.
func GetTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = NewTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Fatalf("Test environment initialization failed: %v", sharedEnvErr)
	}
	return sharedEnv
}

// NewTestEnvironment starts Postgres and NATS, migrates the schema and connects an event bus.
func NewTestEnvironment(parent context.Context) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(parent)
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel, Obs: observability.NewNoop()}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bun.NewDB(sqlDB, pgdialect.New())

	if err := RunMigrations(ctx, env.DB); err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	natsConn, err := nats.Connect(natsURL, nats.Timeout(10*time.Second))
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	env.NatsConn = natsConn

	eventBus, err := eventbus.NewEventBus(ctx, natsURL, env.Obs.Logger, "bracket-test", env.Obs.Tracer("test"))
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to create EventBus: %w", err)
	}
	env.EventBus = eventBus

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
		JWT: config.JWTConfig{
			Secret:     "integration-secret",
			Issuer:     "party-bracket",
			Audience:   "party-bracket",
			DefaultTTL: time.Hour,
		},
	}
	return env, nil
}

// RunMigrations applies every module's migrations in dependency order.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"tournament", tournamentmigrations.Migrations},
		{"game", gamemigrations.Migrations},
	}
	for _, m := range modules {
		migrator := migrate.NewMigrator(db, m.migrations,
			migrate.WithTableName("bun_migrations_"+m.name),
			migrate.WithLocksTableName("bun_migration_locks_"+m.name),
		)
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// NewRouter returns a watermill router with a short close timeout.
func NewRouter() (*message.Router, error) {
	return message.NewRouter(message.RouterConfig{CloseTimeout: 500 * time.Millisecond}, watermill.NopLogger{})
}

// ResetDatabase empties every table between tests.
func (env *TestEnvironment) ResetDatabase(ctx context.Context) error {
	_, err := env.DB.ExecContext(ctx, `TRUNCATE TABLE titles, game_results, player_stats, games, leader_votes, players, teams, tournaments RESTART IDENTITY CASCADE`)
	return err
}

// Close releases connections and terminates the containers.
func (env *TestEnvironment) Close() {
	if env.EventBus != nil {
		_ = env.EventBus.Close()
	}
	if env.NatsConn != nil {
		env.NatsConn.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	ctx := context.Background()
	if env.NatsContainer != nil {
		_ = env.NatsContainer.Terminate(ctx)
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(ctx)
	}
	env.CancelContext()
}

// CloseShared tears down the package-wide environment if one was started. Call it from TestMain.
func CloseShared() {
	if sharedEnv != nil {
		sharedEnv.Close()
	}
}
