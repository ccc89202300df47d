package client

import (
	"context"
	"sync"

	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

type FakeBackend struct {
	mu    sync.Mutex
	trace []string

	ReconnectPlayerFunc func(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	SnapshotFunc        func(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error)
}

func (f *FakeBackend) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeBackend) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeBackend) ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	f.record("ReconnectPlayer")
	if f.ReconnectPlayerFunc != nil {
		return f.ReconnectPlayerFunc(ctx, identity)
	}
	return nil, nil
}

func (f *FakeBackend) Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error) {
	f.record("Snapshot")
	if f.SnapshotFunc != nil {
		return f.SnapshotFunc(ctx, tournamentID)
	}
	return nil, nil
}

type FakeFeedOpener struct {
	open    map[uuid.UUID]bool
	trace   []string
	OpenErr error
}

func (f *FakeFeedOpener) FeedOpen(tournamentID uuid.UUID) bool {
	return f.open[tournamentID]
}

func (f *FakeFeedOpener) OpenFeed(tournamentID uuid.UUID) error {
	f.trace = append(f.trace, "OpenFeed")
	if f.OpenErr != nil {
		return f.OpenErr
	}
	if f.open == nil {
		f.open = map[uuid.UUID]bool{}
	}
	f.open[tournamentID] = true
	return nil
}

var (
	_ Backend    = (*FakeBackend)(nil)
	_ FeedOpener = (*FakeFeedOpener)(nil)
	_ Backend    = (*NATSBackend)(nil)
	_ FeedOpener = (*FeedSync)(nil)
)
