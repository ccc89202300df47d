package client

import (
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

var statusRoutes = map[tournamenttypes.Status]string{
	tournamenttypes.StatusLobby:      "/lobby",
	tournamenttypes.StatusTeamSelect: "/teams",
	tournamenttypes.StatusShuffling:  "/teams/reveal",
	tournamenttypes.StatusPicking:    "/pick",
	tournamenttypes.StatusPlaying:    "/play",
	tournamenttypes.StatusScoring:    "/scoring",
	tournamenttypes.StatusCompleted:  "/ceremony",
}

// RouteFor is the screen a device in status belongs on. Playing and scoring carry the current
// game id when one is known.
func RouteFor(status tournamenttypes.Status, gameID *uuid.UUID) string {
	route, ok := statusRoutes[status]
	if !ok {
		return "/"
	}
	if gameID != nil && (status == tournamenttypes.StatusPlaying || status == tournamenttypes.StatusScoring) {
		return route + "/" + gameID.String()
	}
	return route
}

// ShouldRedirect reports whether a device on current must move to target. A device already on
// target or one of its sub-paths stays put, so /play/:gameId survives a bare /play target.
func ShouldRedirect(current, target string) bool {
	current = trimRoute(current)
	target = trimRoute(target)
	if current == target {
		return false
	}
	return !strings.HasPrefix(current, target+"/")
}

// trimRoute drops the query, fragment and trailing slash.
func trimRoute(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
