// Package scoreboardevents holds the read-side command subjects of the scoreboard module.
package scoreboardevents

import "github.com/google/uuid"

const (
	SnapshotRequestedV1      = "scoreboard.snapshot.requested.v1"
	ScoreboardRequestedV1    = "scoreboard.get.requested.v1"
	CeremonyRequestedV1      = "scoreboard.ceremony.requested.v1"
	HistoryRequestedV1       = "scoreboard.history.requested.v1"
	HistoryDetailRequestedV1 = "scoreboard.history_detail.requested.v1"
	PlayerDetailRequestedV1  = "scoreboard.player_detail.requested.v1"
)

type TournamentRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}

type HistoryRequestedPayloadV1 struct {
	Limit int `json:"limit"`
}

type PlayerDetailRequestedPayloadV1 struct {
	PlayerID uuid.UUID `json:"player_id"`
}
