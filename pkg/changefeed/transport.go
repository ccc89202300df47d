package changefeed

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
)

// NATSTransport reads feed topics straight off a NATS connection.
type NATSTransport struct {
	conn *nats.Conn
}

func NewNATSTransport(conn *nats.Conn) *NATSTransport {
	return &NATSTransport{conn: conn}
}

// Bind sets the connection when the transport had to exist before connecting.
func (t *NATSTransport) Bind(conn *nats.Conn) {
	t.conn = conn
}

func (t *NATSTransport) Subscribe(topic string, deliver func([]byte)) (func() error, error) {
	if t.conn == nil {
		return nil, nats.ErrInvalidConnection
	}
	sub, err := t.conn.Subscribe(topic, func(m *nats.Msg) {
		deliver(m.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

// StateHandlers returns nats options that report connection changes to f.
func StateHandlers(f *Feed) []nats.Option {
	return []nats.Option{
		nats.DisconnectErrHandler(func(*nats.Conn, error) {
			f.SetState(StateReconnecting)
		}),
		nats.ReconnectHandler(func(*nats.Conn) {
			f.SetState(StateConnected)
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			f.SetState(StateDisconnected)
		}),
	}
}

// BusTransport reads feed topics from a watermill subscriber. Used in-process and in tests.
type BusTransport struct {
	sub message.Subscriber
}

func NewBusTransport(sub message.Subscriber) *BusTransport {
	return &BusTransport{sub: sub}
}

func (t *BusTransport) Subscribe(topic string, deliver func([]byte)) (func() error, error) {
	ctx, cancel := context.WithCancel(context.Background())
	msgs, err := t.sub.Subscribe(ctx, topic)
	if err != nil {
		cancel()
		return nil, err
	}
	go func() {
		for msg := range msgs {
			deliver(msg.Payload)
			msg.Ack()
		}
	}()
	return func() error {
		cancel()
		return nil
	}, nil
}
