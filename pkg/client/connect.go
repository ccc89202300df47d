package client

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/nats-io/nats.go"
)

// Connect dials NATS with a session token and reports connection changes to feed.
func Connect(url, token string, feed *changefeed.Feed, opts ...nats.Option) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("party-bracket-device"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}
	if token != "" {
		options = append(options, nats.Token(token))
	}
	options = append(options, changefeed.StateHandlers(feed)...)
	options = append(options, opts...)

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	return conn, nil
}
