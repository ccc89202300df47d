package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	scoreboardevents "github.com/Black-And-White-Club/party-bracket/pkg/events/scoreboard"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultRequestTimeout bounds a command round trip when the caller's context has no deadline.
const DefaultRequestTimeout = 10 * time.Second

// Backend is the server surface the resolver needs.
type Backend interface {
	// ReconnectPlayer returns the identity's live session, or nil when it has none.
	ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error)
}

// NATSBackend issues commands over a device NATS connection. Requests use the same envelope as
// server-side commands: the reply subject travels in metadata, not as a NATS reply.
type NATSBackend struct {
	conn      *nats.Conn
	marshaler wmnats.Marshaler
	token     string
}

func NewNATSBackend(conn *nats.Conn) *NATSBackend {
	return &NATSBackend{conn: conn, marshaler: &wmnats.NATSMarshaler{}}
}

// WithSession returns a backend that sends token with every request, as seat-bound commands
// require.
func (b *NATSBackend) WithSession(token string) *NATSBackend {
	cp := *b
	cp.token = token
	return &cp
}

// Request publishes payload on subject and decodes the reply's data into dst. A failure reply is
// returned as *events.ErrorBody.
func (b *NATSBackend) Request(ctx context.Context, subject string, payload, dst any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRequestTimeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", subject, err)
	}

	inbox := b.conn.NewRespInbox()
	sub, err := b.conn.SubscribeSync(inbox)
	if err != nil {
		return fmt.Errorf("subscribe reply inbox: %w", err)
	}
	defer sub.Unsubscribe()

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(handlerwrapper.MetadataReplyTo, inbox)
	msg.Metadata.Set(handlerwrapper.MetadataCorrelationID, msg.UUID)
	if b.token != "" {
		msg.Metadata.Set(handlerwrapper.MetadataSessionToken, b.token)
	}

	natsMsg, err := b.marshaler.Marshal(subject, msg)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", subject, err)
	}
	if err := b.conn.PublishMsg(natsMsg); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	resp, err := sub.NextMsgWithContext(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, nats.ErrTimeout) {
			return fmt.Errorf("%s: %w", subject, context.DeadlineExceeded)
		}
		return fmt.Errorf("await %s reply: %w", subject, err)
	}

	var reply events.RawReply
	if err := json.Unmarshal(resp.Data, &reply); err != nil {
		return fmt.Errorf("decode %s reply: %w", subject, err)
	}
	return reply.Decode(dst)
}

func (b *NATSBackend) ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	var session *tournamenttypes.Session
	err := b.Request(ctx, tournamentevents.ReconnectPlayerRequestedV1,
		tournamentevents.ReconnectPlayerRequestedPayloadV1{Identity: identity}, &session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (b *NATSBackend) Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error) {
	var snap *scoreboardtypes.Snapshot
	err := b.Request(ctx, scoreboardevents.SnapshotRequestedV1,
		scoreboardevents.TournamentRequestedPayloadV1{TournamentID: tournamentID}, &snap)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
