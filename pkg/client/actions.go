package client

import (
	"log/slog"

	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Action is a state transition understood by Store.
type Action interface {
	apply(s *State, logger *slog.Logger)
}

// SnapshotLoaded replaces the tournament state with a freshly fetched snapshot. PlayerID
// selects the device's own seat.
type SnapshotLoaded struct {
	Snapshot *scoreboardtypes.Snapshot
	PlayerID uuid.UUID
}

func (a SnapshotLoaded) apply(s *State, _ *slog.Logger) {
	if a.Snapshot == nil {
		return
	}
	conn := s.Connection
	*s = State{
		Tournament: a.Snapshot.Tournament,
		Players:    append([]*tournamenttypes.Player(nil), a.Snapshot.Players...),
		Teams:      append([]*tournamenttypes.Team(nil), a.Snapshot.Teams...),
		Votes:      append([]*tournamenttypes.LeaderVote(nil), a.Snapshot.Votes...),
		Games:      append([]*gametypes.Game(nil), a.Snapshot.Games...),
		Titles:     append([]*gametypes.Title(nil), a.Snapshot.Titles...),
		Connection: conn,
	}
	for _, p := range s.Players {
		if p.ID == a.PlayerID {
			s.Player = p
		}
	}
}

// FeedEvent applies one change from the feed. Feed rows are authoritative and overwrite
// whatever the device holds.
type FeedEvent struct {
	Change changefeed.Change
}

func (a FeedEvent) apply(s *State, logger *slog.Logger) {
	c := a.Change
	if s.Tournament == nil || c.TournamentID != s.Tournament.ID {
		return
	}

	var err error
	switch c.Table {
	case changefeed.TableTournaments:
		row := new(tournamenttypes.Tournament)
		if err = c.Decode(row); err == nil {
			if c.Type == changefeed.EventDelete {
				*s = State{Connection: s.Connection}
				return
			}
			s.Tournament = row
		}
	case changefeed.TablePlayers:
		row := new(tournamenttypes.Player)
		if err = c.Decode(row); err == nil {
			mine := s.Player != nil && s.Player.ID == row.ID
			if c.Type == changefeed.EventDelete {
				s.Players = remove(s.Players, row.ID, playerID)
				if mine {
					s.Player = nil
				}
			} else {
				s.Players = upsert(s.Players, row, playerID)
				if mine {
					s.Player = row
				}
			}
		}
	case changefeed.TableTeams:
		row := new(tournamenttypes.Team)
		if err = c.Decode(row); err == nil {
			s.Teams = applyRow(s.Teams, c.Type, row, teamID)
		}
	case changefeed.TableLeaderVotes:
		row := new(tournamenttypes.LeaderVote)
		if err = c.Decode(row); err == nil {
			s.Votes = applyRow(s.Votes, c.Type, row, voteID)
		}
	case changefeed.TableGames:
		row := new(gametypes.Game)
		if err = c.Decode(row); err == nil {
			s.Games = applyRow(s.Games, c.Type, row, gameID)
		}
	case changefeed.TableTitles:
		row := new(gametypes.Title)
		if err = c.Decode(row); err == nil {
			s.Titles = applyRow(s.Titles, c.Type, row, titleID)
		}
	}
	if err != nil && logger != nil {
		logger.Warn("Dropping undecodable feed change",
			attr.String("table", c.Table),
			attr.String("type", string(c.Type)),
			attr.Error(err),
		)
	}
}

func applyRow[T any](rows []*T, t changefeed.EventType, row *T, id func(*T) uuid.UUID) []*T {
	if t == changefeed.EventDelete {
		return remove(rows, id(row), id)
	}
	return upsert(rows, row, id)
}

// OperationSucceeded merges the rows returned by a local command so the device does not wait
// for the feed to echo its own write. Result may be a session, a row, or a slice of titles.
type OperationSucceeded struct {
	Result any
}

func (a OperationSucceeded) apply(s *State, _ *slog.Logger) {
	switch r := a.Result.(type) {
	case *tournamenttypes.Session:
		if r == nil || r.Tournament == nil {
			return
		}
		if s.Tournament == nil || s.Tournament.ID != r.Tournament.ID {
			*s = State{Connection: s.Connection}
		}
		s.Tournament = r.Tournament
		if r.Player != nil {
			s.Player = r.Player
			s.Players = upsert(s.Players, r.Player, playerID)
		}
	case *tournamenttypes.Tournament:
		if r != nil && s.Tournament != nil && s.Tournament.ID == r.ID {
			s.Tournament = r
		}
	case *tournamenttypes.Player:
		if r != nil {
			s.Players = upsert(s.Players, r, playerID)
			if s.Player != nil && s.Player.ID == r.ID {
				s.Player = r
			}
		}
	case *tournamenttypes.Team:
		if r != nil {
			s.Teams = upsert(s.Teams, r, teamID)
		}
	case *tournamenttypes.VoteOutcome:
		if r != nil && r.Vote != nil {
			s.Votes = upsert(s.Votes, r.Vote, voteID)
		}
	case *gametypes.Game:
		if r != nil {
			s.Games = upsert(s.Games, r, gameID)
		}
	case []*gametypes.Title:
		for _, t := range r {
			s.Titles = upsert(s.Titles, t, titleID)
		}
	}
}

// ConnectionChanged records the realtime connection state.
type ConnectionChanged struct {
	State changefeed.ConnectionState
}

func (a ConnectionChanged) apply(s *State, _ *slog.Logger) {
	s.Connection = a.State
}

// Reset forgets the tournament, keeping only the connection state.
type Reset struct{}

func (Reset) apply(s *State, _ *slog.Logger) {
	*s = State{Connection: s.Connection}
}
