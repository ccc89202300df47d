package scoreboardhandlers

import (
	"context"
	"net/http"

	scoreboardevents "github.com/Black-And-White-Club/party-bracket/pkg/events/scoreboard"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
)

// Handlers serves the read side over NATS request/reply and plain HTTP.
type Handlers interface {
	HandleSnapshot(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScoreboard(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCeremony(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleHistory(ctx context.Context, payload *scoreboardevents.HistoryRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleHistoryDetail(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePlayerDetail(ctx context.Context, payload *scoreboardevents.PlayerDetailRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleHTTPScoreboard(w http.ResponseWriter, r *http.Request)
	HandleHTTPCeremony(w http.ResponseWriter, r *http.Request)
	HandleHTTPTitleChart(w http.ResponseWriter, r *http.Request)
	HandleHTTPHistory(w http.ResponseWriter, r *http.Request)
	HandleHTTPHistoryDetail(w http.ResponseWriter, r *http.Request)
	HandleHTTPExport(w http.ResponseWriter, r *http.Request)
	HandleHTTPPlayerDetail(w http.ResponseWriter, r *http.Request)
}
