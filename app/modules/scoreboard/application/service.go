package scoreboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScoreboardService implements the Service interface.
type ScoreboardService struct {
	repo    scoreboarddb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      bun.IDB
	palette ChartPalette
}

// NewScoreboardService creates a new ScoreboardService.
func NewScoreboardService(
	repo scoreboarddb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db bun.IDB,
) *ScoreboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreboardService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		palette: DefaultPalette,
	}
}

// isDomainError reports errors callers get back as-is, without failure metrics.
func isDomainError(err error) bool {
	return errors.Is(err, ErrTournamentNotFound) || errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrNotCompleted)
}

// run wraps a read with tracing, metrics and panic recovery.
func run[S any](
	s *ScoreboardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (S, error),
) (result S, err error) {
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
		s.metrics.RecordOperationAttempt(ctx, operationName, "ScoreboardService")
	}
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "ScoreboardService", time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			var zero S
			result, err = zero, fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "ScoreboardService")
			}
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.RecordOperationSuccess(ctx, operationName, "ScoreboardService")
		}
	case isDomainError(err):
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(err),
		)
	default:
		err = fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "ScoreboardService")
		}
		span.RecordError(err)
	}
	return result, err
}
