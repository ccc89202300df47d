package observability

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config describes the process-wide observability setup.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	Output      io.Writer
}

// Observability bundles the logger, tracer provider and metrics registry shared by all modules.
type Observability struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Registry       *prometheus.Registry
}

// Init builds a JSON slog logger, the global otel tracer provider and a prometheus registry
// with the Go runtime and process collectors registered.
func Init(cfg Config) *Observability {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:         logger,
		TracerProvider: otel.GetTracerProvider(),
		Registry:       registry,
	}
}

// NewNoop returns an Observability that discards logs and spans. Used by tests.
func NewNoop() *Observability {
	return &Observability{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		TracerProvider: noop.NewTracerProvider(),
		Registry:       prometheus.NewRegistry(),
	}
}

// Tracer returns a named tracer from the configured provider.
func (o *Observability) Tracer(name string) trace.Tracer {
	return o.TracerProvider.Tracer(name)
}

// MetricsHandler serves the registry in the prometheus exposition format.
func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
