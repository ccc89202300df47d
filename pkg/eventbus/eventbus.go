package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EventBus is the publish/subscribe surface every module talks to.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	tracer     trace.Tracer
	appName    string
	shared     bool
}

// NewEventBus connects a watermill publisher and subscriber to core NATS. Queue groups are
// prefixed with appName so that several replicas share command subjects.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger, appName string, tracer trace.Tracer) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Name(appName),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:         natsURL,
		Marshaler:   marshaler,
		NatsOptions: options,
		JetStream:   wmnats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:              natsURL,
		QueueGroupPrefix: appName,
		SubscribersCount: 4,
		CloseTimeout:     30 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		Unmarshaler:      marshaler,
		NatsOptions:      options,
		JetStream:        wmnats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected", attr.String("nats_url", natsURL), attr.String("app", appName))

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
		tracer:     tracer,
		appName:    appName,
	}, nil
}

// NewInMemoryEventBus returns a bus backed by watermill's gochannel pub/sub. It is used by
// tests and by single-process development runs.
func NewInMemoryEventBus(logger *slog.Logger, tracer trace.Tracer) EventBus {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NewSlogLogger(logger))

	return &eventBus{
		publisher:  pubSub,
		subscriber: pubSub,
		logger:     logger,
		tracer:     tracer,
		appName:    "in-memory",
		shared:     true,
	}
}

// Publish publishes messages to topic inside a producer span.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		if eb.tracer != nil {
			_, span := eb.tracer.Start(msg.Context(), "eventbus.Publish",
				trace.WithSpanKind(trace.SpanKindProducer),
				trace.WithAttributes(
					attribute.String("topic", topic),
					attribute.String("message_id", msg.UUID),
				),
			)
			span.End()
		}
	}

	if err := eb.publisher.Publish(topic, messages...); err != nil {
		eb.logger.Error("Failed to publish message", attr.String("topic", topic), attr.Error(err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	eb.logger.Debug("Published messages", attr.String("topic", topic), attr.Int("count", len(messages)))
	return nil
}

// Subscribe subscribes to topic. NATS wildcards are honoured by the NATS implementation.
func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return ch, nil
}

// Close closes the subscriber first so in-flight handlers can still publish.
func (eb *eventBus) Close() error {
	subErr := eb.subscriber.Close()
	if eb.shared {
		return subErr
	}
	pubErr := eb.publisher.Close()
	if subErr != nil {
		return subErr
	}
	return pubErr
}
