package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
)

const queueName = "tournament"

// QueueService schedules background maintenance for the tournament module.
type QueueService interface {
	// EnqueueSweep asks for an immediate stale lobby sweep.
	EnqueueSweep(ctx context.Context, olderThan time.Duration) error
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Options tunes the periodic sweep.
type Options struct {
	SweepInterval time.Duration
	StaleAfter    time.Duration
	MaxWorkers    int
}

func (o Options) withDefaults() Options {
	if o.SweepInterval <= 0 {
		o.SweepInterval = 10 * time.Minute
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = 5
	}
	return o
}

// Service runs the River client for tournament jobs.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      bun.IDB
	metrics observability.OperationMetrics
}

// NewService connects a pgx pool for River, registers the sweep worker and its periodic job.
func NewService(ctx context.Context, db bun.IDB, logger *slog.Logger, dsn string, metrics observability.OperationMetrics, reg prometheus.Registerer, sweeper Sweeper, opts Options) (*Service, error) {
	opts = opts.withDefaults()
	ctxLogger := logger.With(
		attr.String("operation", "new_tournament_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSweepWorker(sweeper, ctxLogger, reg))

	staleAfter := opts.StaleAfter
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			queueName:          {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		Logger:  logger,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(opts.SweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return SweepStaleLobbiesJob{OlderThan: staleAfter}, &river.InsertOpts{Queue: queueName}
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Tournament queue service initialized",
		attr.Duration("sweep_interval", opts.SweepInterval))

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      db,
		metrics: metrics,
	}, nil
}

// Migrate brings River's own tables up to date.
func Migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), &rivermigrate.Config{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}
	logger.Info("River migrations applied", attr.Int("versions", len(res.Versions)))
	return nil
}

// Start starts the River client and its periodic jobs.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))
	s.logger.Info("Tournament queue service started")
	return nil
}

// Stop waits for running jobs and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.logger.Info("Tournament queue service stopped")
	return nil
}

// EnqueueSweep inserts a one-off sweep job.
func (s *Service) EnqueueSweep(ctx context.Context, olderThan time.Duration) error {
	s.metrics.RecordOperationAttempt(ctx, "enqueue_sweep", "river")

	res, err := s.client.Insert(ctx, SweepStaleLobbiesJob{OlderThan: olderThan}, &river.InsertOpts{Queue: queueName})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "enqueue_sweep", "river")
		return fmt.Errorf("failed to enqueue sweep: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_sweep", "river")
	s.logger.Info("Sweep job enqueued",
		attr.Int64("job_id", res.Job.ID),
		attr.Duration("older_than", olderThan))
	return nil
}

// HealthCheck verifies the river_job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Where("kind = ?", SweepStaleLobbiesJob{}.Kind()).
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.logger.Debug("Queue service health check passed", attr.Int("sweep_jobs", count))
	return nil
}
