// Package client is the device side of a tournament: a single state store fed by snapshots,
// the change feed and local command results, plus session resolution on start-up.
package client

import (
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// State is what a device knows about its tournament. Rows are never mutated in place, so a
// State handed to a subscriber stays valid after later dispatches.
type State struct {
	Tournament *tournamenttypes.Tournament
	Player     *tournamenttypes.Player
	Players    []*tournamenttypes.Player
	Teams      []*tournamenttypes.Team
	Votes      []*tournamenttypes.LeaderVote
	Games      []*gametypes.Game
	Titles     []*gametypes.Title
	Connection changefeed.ConnectionState
}

// HasLiveSession reports whether the device holds a seat in a tournament that is still running.
func (s State) HasLiveSession() bool {
	return s.Tournament != nil && s.Player != nil && s.Tournament.Status.IsLive()
}

// CurrentGame is the latest picked game that has not completed.
func (s State) CurrentGame() *gametypes.Game {
	var current *gametypes.Game
	for _, g := range s.Games {
		if g.Status == gametypes.StatusCompleted {
			continue
		}
		if current == nil || g.GameOrder > current.GameOrder {
			current = g
		}
	}
	return current
}

func (s State) clone() State {
	out := s
	out.Players = append([]*tournamenttypes.Player(nil), s.Players...)
	out.Teams = append([]*tournamenttypes.Team(nil), s.Teams...)
	out.Votes = append([]*tournamenttypes.LeaderVote(nil), s.Votes...)
	out.Games = append([]*gametypes.Game(nil), s.Games...)
	out.Titles = append([]*gametypes.Title(nil), s.Titles...)
	return out
}

// Listener receives a copy of the state after every dispatch. Listeners must not dispatch
// synchronously.
type Listener func(State)

// Store holds the device state. Dispatch is the only way to change it.
type Store struct {
	logger *slog.Logger

	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger:    logger,
		state:     State{Connection: changefeed.StateDisconnected},
		listeners: make(map[int]Listener),
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies a and notifies listeners in dispatch order.
func (s *Store) Dispatch(a Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := s.state.clone()
	a.apply(&next, s.logger)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.clone())
	}
}

func upsert[T any](rows []*T, row *T, id func(*T) uuid.UUID) []*T {
	key := id(row)
	for i, r := range rows {
		if id(r) == key {
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

func remove[T any](rows []*T, key uuid.UUID, id func(*T) uuid.UUID) []*T {
	out := rows[:0]
	for _, r := range rows {
		if id(r) != key {
			out = append(out, r)
		}
	}
	return out
}

func playerID(p *tournamenttypes.Player) uuid.UUID   { return p.ID }
func teamID(t *tournamenttypes.Team) uuid.UUID       { return t.ID }
func voteID(v *tournamenttypes.LeaderVote) uuid.UUID { return v.ID }
func gameID(g *gametypes.Game) uuid.UUID             { return g.ID }
func titleID(t *gametypes.Title) uuid.UUID           { return t.ID }
