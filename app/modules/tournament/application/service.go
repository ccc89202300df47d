package tournamentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultStaleAfter is how long an abandoned lobby survives.
const DefaultStaleAfter = 2 * time.Hour

// reconnectScanLimit bounds how many of an identity's players are considered on reconnect.
const reconnectScanLimit = 5

// TournamentService implements the Service interface.
type TournamentService struct {
	repo    tournamentdb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
	feed    changefeed.Publisher

	now        func() time.Time
	roll       tournamentdomain.Roller
	intn       func(n int) int
	staleAfter time.Duration
}

// Option customises a TournamentService.
type Option func(*TournamentService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TournamentService) { s.now = now }
}

// WithRoller overrides the dice target roll.
func WithRoller(roll tournamentdomain.Roller) Option {
	return func(s *TournamentService) { s.roll = roll }
}

// WithRandom overrides the random leader choice.
func WithRandom(intn func(n int) int) Option {
	return func(s *TournamentService) { s.intn = intn }
}

// WithStaleAfter sets the staleness window for lobbies and room codes.
func WithStaleAfter(d time.Duration) Option {
	return func(s *TournamentService) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	feed changefeed.Publisher,
	opts ...Option,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	if feed == nil {
		feed = changefeed.NopPublisher{}
	}
	s := &TournamentService{
		repo:       repo,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
		feed:       feed,
		now:        time.Now,
		roll:       tournamentdomain.RandomRoller(),
		intn:       rand.IntN,
		staleAfter: DefaultStaleAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish fans out the changes of a committed operation. Failures are logged only.
func (s *TournamentService) publish(ctx context.Context, batch *changefeed.Batch) {
	if err := s.feed.Publish(ctx, batch); err != nil {
		s.logger.WarnContext(ctx, "Change feed publish failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
	}
}

// execute runs op inside telemetry and a transaction, publishes the batch once committed and
// unwraps the result.
func execute[S any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	batch *changefeed.Batch,
	op func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (S, error) {
	var zero S
	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runInTx(s, ctx, op)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	s.publish(ctx, batch)
	return *result.Success, nil
}

func fail[S any](err error) (results.OperationResult[S, error], error) {
	return results.FailureResult[S, error](err), nil
}

func ok[S any](v S) (results.OperationResult[S, error], error) {
	return results.SuccessResult[S, error](v), nil
}

func abort[S any](err error) (results.OperationResult[S, error], error) {
	return results.OperationResult[S, error]{}, err
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "TournamentService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "TournamentService", time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "TournamentService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "TournamentService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "TournamentService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *TournamentService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr == nil && result.IsFailure() {
			return errRollback
		}
		return txErr
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}

	return result, err
}

// errRollback discards the writes of an operation that ended in a domain failure.
var errRollback = errors.New("rollback failed operation")
