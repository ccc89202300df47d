package tournamenttypes

import "fmt"

// Status is the phase of a tournament. The string values are persisted and sent to devices.
type Status string

const (
	StatusLobby      Status = "lobby"
	StatusTeamSelect Status = "team_select"
	StatusShuffling  Status = "shuffling"
	StatusPicking    Status = "picking"
	StatusPlaying    Status = "playing"
	StatusScoring    Status = "scoring"
	StatusCompleted  Status = "completed"
)

// AllStatuses lists every status in phase order.
var AllStatuses = []Status{
	StatusLobby,
	StatusTeamSelect,
	StatusShuffling,
	StatusPicking,
	StatusPlaying,
	StatusScoring,
	StatusCompleted,
}

var validTransitions = map[Status][]Status{
	StatusLobby:      {StatusTeamSelect},
	StatusTeamSelect: {StatusShuffling},
	StatusShuffling:  {StatusPicking},
	StatusPicking:    {StatusPlaying},
	StatusPlaying:    {StatusScoring},
	StatusScoring:    {StatusPicking, StatusCompleted},
	StatusCompleted:  {},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsLive reports whether the tournament still holds its room code.
func (s Status) IsLive() bool {
	return s.IsValid() && s != StatusCompleted
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a persisted string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown tournament status %q", raw)
	}
	return s, nil
}
