package changefeed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType is the kind of row change.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// EventMask selects which event types a subscription receives.
type EventMask uint8

const (
	MaskInsert EventMask = 1 << iota
	MaskUpdate
	MaskDelete

	MaskAll = MaskInsert | MaskUpdate | MaskDelete
)

// Matches reports whether t is selected by m.
func (m EventMask) Matches(t EventType) bool {
	switch t {
	case EventInsert:
		return m&MaskInsert != 0
	case EventUpdate:
		return m&MaskUpdate != 0
	case EventDelete:
		return m&MaskDelete != 0
	default:
		return false
	}
}

// Table names carried on changes.
const (
	TableTournaments = "tournaments"
	TablePlayers     = "players"
	TableTeams       = "teams"
	TableLeaderVotes = "leader_votes"
	TableGames       = "games"
	TablePlayerStats = "player_stats"
	TableGameResults = "game_results"
	TableTitles      = "titles"
	TableGameTypes   = "game_types"
)

// Change is one row-level change event.
type Change struct {
	Table        string          `json:"table"`
	Type         EventType       `json:"type"`
	Old          json.RawMessage `json:"old,omitempty"`
	New          json.RawMessage `json:"new,omitempty"`
	TournamentID uuid.UUID       `json:"tournament_id"`
	GameID       *uuid.UUID      `json:"game_id,omitempty"`
	At           time.Time       `json:"at"`
}

// Row returns the new row, or the old row for deletes.
func (c Change) Row() json.RawMessage {
	if c.Type == EventDelete || len(c.New) == 0 {
		return c.Old
	}
	return c.New
}

// Decode unmarshals Row into dst.
func (c Change) Decode(dst any) error {
	row := c.Row()
	if len(row) == 0 {
		return fmt.Errorf("change on %s carries no row", c.Table)
	}
	return json.Unmarshal(row, dst)
}

// Batch collects the changes made by one operation. It is published only after the
// operation's transaction commits.
type Batch struct {
	tournamentID uuid.UUID
	gameID       *uuid.UUID
	changes      []Change
	err          error
	now          func() time.Time
}

// NewBatch starts a batch for one tournament.
func NewBatch(tournamentID uuid.UUID) *Batch {
	return &Batch{tournamentID: tournamentID, now: time.Now}
}

// SetTournament binds the batch once the tournament id is known. Changes recorded before
// without a tournament are rebound too.
func (b *Batch) SetTournament(tournamentID uuid.UUID) {
	b.tournamentID = tournamentID
	for i := range b.changes {
		if b.changes[i].TournamentID == uuid.Nil {
			b.changes[i].TournamentID = tournamentID
		}
	}
}

// ForGame tags subsequent changes with a game id so they also reach the game topic.
func (b *Batch) ForGame(gameID uuid.UUID) *Batch {
	id := gameID
	b.gameID = &id
	return b
}

func (b *Batch) Insert(table string, row any) {
	b.add(table, EventInsert, nil, row)
}

func (b *Batch) Update(table string, old, row any) {
	b.add(table, EventUpdate, old, row)
}

func (b *Batch) Delete(table string, old any) {
	b.add(table, EventDelete, old, nil)
}

// DeleteIn records a delete on another tournament's topic.
func (b *Batch) DeleteIn(tournamentID uuid.UUID, table string, old any) {
	b.addFor(tournamentID, table, EventDelete, old, nil)
}

func (b *Batch) add(table string, eventType EventType, old, row any) {
	b.addFor(b.tournamentID, table, eventType, old, row)
}

func (b *Batch) addFor(tournamentID uuid.UUID, table string, eventType EventType, old, row any) {
	c := Change{
		Table:        table,
		Type:         eventType,
		TournamentID: tournamentID,
		GameID:       b.gameID,
		At:           b.now().UTC(),
	}
	var err error
	if old != nil {
		if c.Old, err = json.Marshal(old); err != nil {
			b.setErr(fmt.Errorf("marshal old %s row: %w", table, err))
			return
		}
	}
	if row != nil {
		if c.New, err = json.Marshal(row); err != nil {
			b.setErr(fmt.Errorf("marshal new %s row: %w", table, err))
			return
		}
	}
	b.changes = append(b.changes, c)
}

func (b *Batch) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Changes returns the collected changes in write order.
func (b *Batch) Changes() []Change {
	out := make([]Change, len(b.changes))
	copy(out, b.changes)
	return out
}

// Err returns the first encoding error, if any.
func (b *Batch) Err() error {
	return b.err
}

// Len is the number of collected changes.
func (b *Batch) Len() int {
	return len(b.changes)
}
