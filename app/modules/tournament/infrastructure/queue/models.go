package tournamentqueue

import "time"

// SweepStaleLobbiesJob deletes abandoned lobbies. A zero OlderThan uses the service default.
type SweepStaleLobbiesJob struct {
	OlderThan time.Duration `json:"older_than"`
}

// Kind returns the job type identifier for River
func (SweepStaleLobbiesJob) Kind() string { return "sweep_stale_lobbies" }
