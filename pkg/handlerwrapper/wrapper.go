package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

// CtxKeyReplyTo holds the reply subject of a request/reply command.
const CtxKeyReplyTo ctxKey = "reply_to"

// Metadata keys understood by the wrapper.
const (
	MetadataReplyTo       = "reply_to"
	MetadataCorrelationID = "correlation_id"
	// MetadataSessionToken carries the device's session token on seat-bound commands.
	MetadataSessionToken = "session_token"
)

// Result is a message a handler wants published after it returns.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// ReplyTo returns the reply subject stored on ctx, if any.
func ReplyTo(ctx context.Context) (string, bool) {
	rt, ok := ctx.Value(CtxKeyReplyTo).(string)
	return rt, ok && rt != ""
}

// WrapTransformingTyped decodes the incoming payload into T, runs handler and publishes every
// returned Result. Messages are always acked: undecodable payloads and handler errors are
// logged and dropped because commands are never retried automatically. A request that cannot
// be decoded still gets an INVALID_REQUEST reply when it names a reply subject.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx, span := tracer.Start(msg.Context(), handlerName,
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(attribute.String("message_id", msg.UUID)),
		)
		defer span.End()

		correlationID := msg.Metadata.Get(MetadataCorrelationID)
		if correlationID == "" {
			correlationID = msg.UUID
		}
		ctx = attr.WithCorrelationID(ctx, correlationID)
		if rt := msg.Metadata.Get(MetadataReplyTo); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.SetStatus(codes.Error, "decode failed")
			if rt, ok := ReplyTo(ctx); ok {
				reply := Result{Topic: rt, Payload: events.Failure(events.CodeInvalidRequest, err.Error())}
				if out, encErr := NewResultMessage(ctx, reply, correlationID); encErr == nil {
					_ = publisher.Publish(rt, out)
				}
			}
			return nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil
		}

		for _, r := range results {
			out, err := NewResultMessage(ctx, r, correlationID)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to encode result", attr.String("topic", r.Topic), attr.Error(err))
				continue
			}
			if err := publisher.Publish(r.Topic, out); err != nil {
				logger.ErrorContext(ctx, "Failed to publish result",
					attr.ExtractCorrelationID(ctx),
					attr.String("topic", r.Topic),
					attr.Error(err),
				)
			}
		}
		return nil
	}
}

// NewResultMessage encodes a Result into a watermill message carrying the correlation id.
func NewResultMessage(ctx context.Context, r Result, correlationID string) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	out := message.NewMessage(watermill.NewUUID(), body)
	out.SetContext(ctx)
	out.Metadata.Set(MetadataCorrelationID, correlationID)
	for k, v := range r.Metadata {
		out.Metadata.Set(k, v)
	}
	return out, nil
}
