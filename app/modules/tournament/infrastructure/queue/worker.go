package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
)

// Sweeper is the slice of the tournament service the sweep job needs.
type Sweeper interface {
	SweepStaleLobbies(ctx context.Context, olderThan time.Duration) (int, error)
}

// SweepWorker runs SweepStaleLobbiesJob.
type SweepWorker struct {
	river.WorkerDefaults[SweepStaleLobbiesJob]

	sweeper Sweeper
	logger  *slog.Logger
	swept   prometheus.Counter
}

// NewSweepWorker creates the worker. reg may be nil.
func NewSweepWorker(sweeper Sweeper, logger *slog.Logger, reg prometheus.Registerer) *SweepWorker {
	swept := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "party_bracket",
		Subsystem: "tournament",
		Name:      "stale_lobbies_swept_total",
		Help:      "Lobby tournaments deleted by the stale sweep.",
	})
	if reg != nil {
		reg.MustRegister(swept)
	}
	return &SweepWorker{sweeper: sweeper, logger: logger, swept: swept}
}

// Work deletes stale lobbies. Errors are returned so River retries the job.
func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepStaleLobbiesJob]) error {
	n, err := w.sweeper.SweepStaleLobbies(ctx, job.Args.OlderThan)
	if err != nil {
		w.logger.ErrorContext(ctx, "Stale lobby sweep failed",
			attr.Int64("job_id", job.ID),
			attr.Int("attempt", job.Attempt),
			attr.Error(err),
		)
		return fmt.Errorf("sweep stale lobbies: %w", err)
	}
	w.swept.Add(float64(n))
	if n > 0 {
		w.logger.InfoContext(ctx, "Stale lobbies swept", attr.Int("count", n))
	}
	return nil
}

// Timeout bounds a single sweep.
func (w *SweepWorker) Timeout(*river.Job[SweepStaleLobbiesJob]) time.Duration {
	return time.Minute
}
