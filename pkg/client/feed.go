package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	"github.com/google/uuid"
)

const resyncTimeout = 10 * time.Second

// Snapshotter loads a tournament's full state after the feed fell behind.
type Snapshotter interface {
	Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error)
}

// FeedOpener keeps the device subscribed to its tournament topic.
type FeedOpener interface {
	FeedOpen(tournamentID uuid.UUID) bool
	OpenFeed(tournamentID uuid.UUID) error
}

// FeedSync pumps one tournament topic into a Store.
type FeedSync struct {
	feed      *changefeed.Feed
	store     *Store
	snapshots Snapshotter
	logger    *slog.Logger

	mu           sync.Mutex
	sub          *changefeed.Subscription
	tournamentID uuid.UUID
}

// NewFeedSync creates a FeedSync. With a nil snapshots a lagging feed is only logged.
func NewFeedSync(feed *changefeed.Feed, store *Store, snapshots Snapshotter, logger *slog.Logger) *FeedSync {
	return &FeedSync{feed: feed, store: store, snapshots: snapshots, logger: logger}
}

func (f *FeedSync) FeedOpen(tournamentID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub != nil && f.tournamentID == tournamentID
}

// OpenFeed subscribes to tournamentID, replacing a subscription to any other tournament.
func (f *FeedSync) OpenFeed(tournamentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub != nil {
		if f.tournamentID == tournamentID {
			return nil
		}
		_ = f.sub.Unsubscribe()
		f.sub = nil
	}

	sub, err := f.feed.Subscribe(eventbus.TournamentFeedTopic(tournamentID), "", changefeed.MaskAll, nil)
	if err != nil {
		return err
	}
	f.sub = sub
	f.tournamentID = tournamentID
	f.store.Dispatch(ConnectionChanged{State: f.feed.State()})

	go f.pump(sub, tournamentID)

	f.logger.Debug("Feed opened", attr.UUID("tournament_id", tournamentID))
	return nil
}

// Close drops the current subscription.
func (f *FeedSync) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub == nil {
		return nil
	}
	err := f.sub.Unsubscribe()
	f.sub = nil
	return err
}

func (f *FeedSync) pump(sub *changefeed.Subscription, tournamentID uuid.UUID) {
	for {
		select {
		case <-sub.Done():
			return
		case c := <-sub.Events():
			f.store.Dispatch(FeedEvent{Change: c})
		case s := <-sub.States():
			f.store.Dispatch(ConnectionChanged{State: s})
		case <-sub.Resync():
			f.resync(sub, tournamentID)
		}
	}
}

// resync replaces the store's state after the subscription dropped changes. Buffered changes
// predate the snapshot and are discarded.
func (f *FeedSync) resync(sub *changefeed.Subscription, tournamentID uuid.UUID) {
	for drained := false; !drained; {
		select {
		case <-sub.Events():
		default:
			drained = true
		}
	}
	f.logger.Warn("Feed fell behind",
		attr.UUID("tournament_id", tournamentID),
		attr.Int64("dropped", int64(sub.Dropped())),
	)
	if f.snapshots == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
	defer cancel()
	snap, err := f.snapshots.Snapshot(ctx, tournamentID)
	if err != nil {
		f.logger.Error("Resync snapshot failed", attr.UUID("tournament_id", tournamentID), attr.Error(err))
		return
	}
	var playerID uuid.UUID
	if p := f.store.State().Player; p != nil {
		playerID = p.ID
	}
	f.store.Dispatch(SnapshotLoaded{Snapshot: snap, PlayerID: playerID})
}
