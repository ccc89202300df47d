package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
)

// DefaultReconnectTimeout bounds the reconnect lookup.
const DefaultReconnectTimeout = 5 * time.Second

// ResolveState is the outcome of session resolution.
type ResolveState string

const (
	ResolveLoading ResolveState = "loading"
	ResolveReady   ResolveState = "ready"
	ResolveExpired ResolveState = "expired"
	ResolveError   ResolveState = "error"
)

// Resolution is what the shell should do after Resolve.
type Resolution struct {
	State ResolveState
	// Redirect is the path to navigate to, empty when the device should stay put.
	Redirect string
	Err      error
}

// ResolveOptions describe where the device currently is.
type ResolveOptions struct {
	CurrentPath      string
	SuppressRedirect bool
}

// Resolver restores a device's session on start-up or reconnect.
type Resolver struct {
	backend Backend
	store   *Store
	feed    FeedOpener
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	state ResolveState
}

// NewResolver creates a resolver. A zero timeout means DefaultReconnectTimeout.
func NewResolver(backend Backend, store *Store, feed FeedOpener, timeout time.Duration, logger *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultReconnectTimeout
	}
	return &Resolver{
		backend: backend,
		store:   store,
		feed:    feed,
		timeout: timeout,
		logger:  logger,
		state:   ResolveLoading,
	}
}

// State is the state of the last resolution.
func (r *Resolver) State() ResolveState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) finish(res Resolution) Resolution {
	r.mu.Lock()
	r.state = res.State
	r.mu.Unlock()
	return res
}

// Resolve reuses a live session already in the store, or asks the server for the identity's
// session.
func (r *Resolver) Resolve(ctx context.Context, identity tournamenttypes.Identity, opts ResolveOptions) Resolution {
	r.mu.Lock()
	r.state = ResolveLoading
	r.mu.Unlock()

	if st := r.store.State(); st.HasLiveSession() {
		return r.finish(r.refresh(ctx, st))
	}

	session, err := r.reconnect(ctx, identity)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		r.logger.WarnContext(ctx, "Reconnect timed out", attr.Duration("timeout", r.timeout))
		return r.finish(Resolution{State: ResolveExpired})
	case err != nil:
		r.logger.ErrorContext(ctx, "Reconnect failed", attr.Error(err))
		return r.finish(Resolution{State: ResolveError, Err: err})
	case session == nil || session.Tournament == nil || session.Player == nil:
		return r.finish(Resolution{State: ResolveExpired})
	case session.Tournament.Status == tournamenttypes.StatusCompleted:
		return r.finish(Resolution{State: ResolveExpired})
	}

	snap, err := r.backend.Snapshot(ctx, session.Tournament.ID)
	if err != nil {
		return r.finish(Resolution{State: ResolveError, Err: fmt.Errorf("load snapshot: %w", err)})
	}
	if snap == nil || snap.Tournament == nil {
		return r.finish(Resolution{State: ResolveExpired})
	}
	r.store.Dispatch(SnapshotLoaded{Snapshot: snap, PlayerID: session.Player.ID})

	if err := r.feed.OpenFeed(session.Tournament.ID); err != nil {
		return r.finish(Resolution{State: ResolveError, Err: fmt.Errorf("open feed: %w", err)})
	}

	res := Resolution{State: ResolveReady}
	if !opts.SuppressRedirect {
		st := r.store.State()
		target := RouteFor(snap.Tournament.Status, nil)
		if g := st.CurrentGame(); g != nil {
			target = RouteFor(snap.Tournament.Status, &g.ID)
		}
		if ShouldRedirect(opts.CurrentPath, target) {
			res.Redirect = target
		}
	}
	return r.finish(res)
}

// refresh keeps an existing session alive: the feed is reopened if it dropped, and the snapshot
// reloaded when the store lost its player list.
func (r *Resolver) refresh(ctx context.Context, st State) Resolution {
	tid := st.Tournament.ID
	if !r.feed.FeedOpen(tid) {
		if err := r.feed.OpenFeed(tid); err != nil {
			return Resolution{State: ResolveError, Err: fmt.Errorf("open feed: %w", err)}
		}
	}
	if len(st.Players) == 0 {
		snap, err := r.backend.Snapshot(ctx, tid)
		if err != nil {
			return Resolution{State: ResolveError, Err: fmt.Errorf("load snapshot: %w", err)}
		}
		r.store.Dispatch(SnapshotLoaded{Snapshot: snap, PlayerID: st.Player.ID})
	}
	return Resolution{State: ResolveReady}
}

// reconnect races the backend call against the timeout so an unresponsive backend cannot hold
// the device in loading.
func (r *Resolver) reconnect(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		session *tournamenttypes.Session
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := r.backend.ReconnectPlayer(ctx, identity)
		done <- result{s, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}
		return res.session, res.err
	}
}
