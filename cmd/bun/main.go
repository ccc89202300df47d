package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	tournamentservice "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/application"
	tournamentqueue "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/config"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace/noop"

	gamemigrations "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories/migrations"
)

// moduleMigrator pairs a module with its migrator. Order matters: game tables reference
// tournament tables.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := []moduleMigrator{
		{"tournament", migrate.NewMigrator(db, tournamentmigrations.Migrations, migrate.WithTableName("bun_migrations_tournament"), migrate.WithLocksTableName("bun_migration_locks_tournament"))},
		{"game", migrate.NewMigrator(db, gamemigrations.Migrations, migrate.WithTableName("bun_migrations_game"), migrate.WithLocksTableName("bun_migration_locks_game"))},
	}

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "party-bracket database tooling",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators, cfg),
			newLobbiesCommand(cfg, db),
		},
	}

	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

func findMigrator(migrators []moduleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.name == name {
			return m.migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

func newMultiModuleDBCommand(migrators []moduleMigrator, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skip-river", Usage: "do not migrate River's job tables"},
				},
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Running migrations for module: %s\n", m.name)
						if err := m.migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.migrator.Migrate(c.Context)
						_ = m.migrator.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					if c.Bool("skip-river") {
						return nil
					}
					fmt.Println("Running River migrations")
					return tournamentqueue.Migrate(c.Context, cfg.Postgres.DSN, slog.Default())
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						fmt.Printf("Rolling back migrations for module: %s\n", m.name)
						group, err := m.migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					migrator, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

func newLobbiesCommand(cfg *config.Config, db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "lobbies",
		Usage: "lobby maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "sweep",
				Usage: "delete abandoned lobbies now instead of waiting for the periodic job",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "older-than",
						Usage: `age of lobbies to sweep, e.g. "90m" or "3 hours ago"`,
						Value: cfg.Tournament.StaleLobbyAfter.String(),
					},
				},
				Action: func(c *cli.Context) error {
					olderThan, err := parseOlderThan(c.String("older-than"), time.Now())
					if err != nil {
						return err
					}
					return sweepLobbies(c.Context, cfg, db, olderThan)
				},
			},
		},
	}
}

// sweepLobbies runs the sweep in-process. Deletions still reach connected devices when NATS is
// reachable.
func sweepLobbies(ctx context.Context, cfg *config.Config, db *bun.DB, olderThan time.Duration) error {
	logger := slog.Default()
	tracer := noop.NewTracerProvider().Tracer("bun")

	var feed changefeed.Publisher = changefeed.NopPublisher{}
	if cfg.NATS.URL != "" {
		bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger, "party-bracket-cli", tracer)
		if err != nil {
			logger.Warn("Change feed unavailable; devices will not see the sweep", "error", err)
		} else {
			defer bus.Close()
			feed = changefeed.NewPublisher(bus, logger, nil)
		}
	}

	service := tournamentservice.NewTournamentService(
		tournamentdb.NewRepository(db), logger, observability.NoopMetrics{}, tracer, db, feed,
	)
	swept, err := service.SweepStaleLobbies(ctx, olderThan)
	if err != nil {
		return err
	}
	fmt.Printf("Swept %d lobbies older than %s\n", swept, olderThan)
	return nil
}
