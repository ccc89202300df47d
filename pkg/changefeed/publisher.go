package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
)

// Metadata keys set on feed messages.
const (
	MetadataTable = "table"
	MetadataType  = "event_type"
)

// Publisher fans committed changes out to the feed topics.
type Publisher interface {
	Publish(ctx context.Context, batch *Batch) error
}

type busPublisher struct {
	bus       message.Publisher
	logger    *slog.Logger
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewPublisher publishes every change on its tournament topic, and game-scoped changes also
// on their game topic.
func NewPublisher(bus message.Publisher, logger *slog.Logger, reg prometheus.Registerer) Publisher {
	p := &busPublisher{
		bus:    bus,
		logger: logger,
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "party_bracket",
			Subsystem: "changefeed",
			Name:      "published_total",
			Help:      "Change events published.",
		}, []string{"table", "type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "party_bracket",
			Subsystem: "changefeed",
			Name:      "publish_failures_total",
			Help:      "Change events that could not be published.",
		}, []string{"table"}),
	}
	if reg != nil {
		reg.MustRegister(p.published, p.failed)
	}
	return p
}

func (p *busPublisher) Publish(ctx context.Context, batch *Batch) error {
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	if err := batch.Err(); err != nil {
		return err
	}

	var firstErr error
	for _, c := range batch.Changes() {
		if err := p.publishOne(ctx, c); err != nil {
			p.failed.WithLabelValues(c.Table).Inc()
			p.logger.ErrorContext(ctx, "Failed to publish change",
				attr.ExtractCorrelationID(ctx),
				attr.String("table", c.Table),
				attr.String("type", string(c.Type)),
				attr.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.published.WithLabelValues(c.Table, string(c.Type)).Inc()
	}
	return firstErr
}

func (p *busPublisher) publishOne(ctx context.Context, c Change) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	topics := []string{eventbus.TournamentFeedTopic(c.TournamentID)}
	if c.GameID != nil {
		topics = append(topics, eventbus.GameFeedTopic(*c.GameID))
	}

	for _, topic := range topics {
		msg := message.NewMessage(watermill.NewUUID(), body)
		msg.SetContext(ctx)
		msg.Metadata.Set(MetadataTable, c.Table)
		msg.Metadata.Set(MetadataType, string(c.Type))
		if err := p.bus.Publish(topic, msg); err != nil {
			return err
		}
	}
	return nil
}

// NopPublisher drops every batch.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Batch) error { return nil }
