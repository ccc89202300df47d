package changefeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// eventBuffer is how many matching changes a subscription holds for a slow reader. Changes past
// it are dropped and the reader is told to resync.
const eventBuffer = 64

// ConnectionState is the health of the underlying realtime connection.
type ConnectionState string

const (
	StateConnected    ConnectionState = "connected"
	StateReconnecting ConnectionState = "reconnecting"
	StateDisconnected ConnectionState = "disconnected"
)

// ErrFeedClosed is returned when subscribing on a closed feed.
var ErrFeedClosed = errors.New("change feed closed")

// Filter narrows delivered changes.
type Filter func(Change) bool

// ColumnEquals matches changes whose row has column equal to value. Values are compared in
// their JSON string form so ids and numbers compare uniformly.
func ColumnEquals(column, value string) Filter {
	return func(c Change) bool {
		var row map[string]json.RawMessage
		if err := json.Unmarshal(c.Row(), &row); err != nil {
			return false
		}
		raw, ok := row[column]
		if !ok {
			return false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s == value
		}
		return string(raw) == value
	}
}

// Transport delivers raw feed payloads for a topic.
type Transport interface {
	Subscribe(topic string, deliver func(data []byte)) (cancel func() error, err error)
}

// Feed multiplexes subscriptions over one Transport and fans connection state out to them.
type Feed struct {
	transport Transport

	mu     sync.Mutex
	state  ConnectionState
	subs   map[*Subscription]struct{}
	closed bool
}

// NewFeed creates a feed over t. The initial state is connected.
func NewFeed(t Transport) *Feed {
	return &Feed{
		transport: t,
		state:     StateConnected,
		subs:      make(map[*Subscription]struct{}),
	}
}

// State returns the last reported connection state.
func (f *Feed) State() ConnectionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetState records a connection state change and notifies every live subscription.
func (f *Feed) SetState(s ConnectionState) {
	f.mu.Lock()
	if f.state == s {
		f.mu.Unlock()
		return
	}
	f.state = s
	subs := make([]*Subscription, 0, len(f.subs))
	for sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		sub.notify(s)
	}
}

// Subscribe opens a subscription on topic for changes to table matching mask and filter.
// A nil filter accepts everything.
func (f *Feed) Subscribe(topic, table string, mask EventMask, filter Filter) (*Subscription, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFeedClosed
	}
	f.mu.Unlock()

	sub := &Subscription{
		feed:   f,
		topic:  topic,
		table:  table,
		mask:   mask,
		filter: filter,
		events: make(chan Change, eventBuffer),
		states: make(chan ConnectionState, 8),
		resync: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	cancel, err := f.transport.Subscribe(topic, sub.deliver)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	sub.cancel = cancel

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub, nil
}

// Close unsubscribes everything.
func (f *Feed) Close() error {
	f.mu.Lock()
	f.closed = true
	subs := make([]*Subscription, 0, len(f.subs))
	for sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Feed) remove(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
}

// Subscription is one live feed subscription.
type Subscription struct {
	feed   *Feed
	topic  string
	table  string
	mask   EventMask
	filter Filter
	cancel func() error

	events chan Change
	states chan ConnectionState
	resync chan struct{}
	done   chan struct{}

	dropped atomic.Uint64

	once      sync.Once
	cancelErr error
}

// Events delivers matching changes. It is never closed; select on Done as well.
func (s *Subscription) Events() <-chan Change { return s.events }

// States delivers connection state changes.
func (s *Subscription) States() <-chan ConnectionState { return s.states }

// Resync fires after changes were dropped because Events was not drained. The reader's view is
// stale until it reloads a snapshot. Several drops before the reader notices fire once.
func (s *Subscription) Resync() <-chan struct{} { return s.resync }

// Dropped is the number of changes dropped since the subscription opened.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Done is closed once the subscription has been cancelled.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Topic is the subscribed topic.
func (s *Subscription) Topic() string { return s.topic }

// Unsubscribe cancels the subscription. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() error {
	s.once.Do(func() {
		close(s.done)
		if s.cancel != nil {
			s.cancelErr = s.cancel()
		}
		s.feed.remove(s)
	})
	return s.cancelErr
}

func (s *Subscription) deliver(data []byte) {
	var c Change
	if err := json.Unmarshal(data, &c); err != nil {
		return
	}
	if s.table != "" && c.Table != s.table {
		return
	}
	if !s.mask.Matches(c.Type) {
		return
	}
	if s.filter != nil && !s.filter(c) {
		return
	}
	select {
	case <-s.done:
	case s.events <- c:
	default:
		// The transport's delivery goroutine must never wait on a reader.
		s.dropped.Add(1)
		select {
		case s.resync <- struct{}{}:
		default:
		}
	}
}

func (s *Subscription) notify(state ConnectionState) {
	select {
	case <-s.done:
	case s.states <- state:
	default:
		// slow reader; the latest state is still available from Feed.State
	}
}
