package gametypes

// Status is the lifecycle state of one picked game.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusScoring   Status = "scoring"
	StatusTitles    Status = "titles"
	StatusCompleted Status = "completed"
)

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusActive},
	StatusActive:    {StatusScoring, StatusTitles},
	StatusScoring:   {StatusTitles},
	StatusTitles:    {StatusCompleted},
	StatusCompleted: {},
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

// AcceptsStats reports whether player stats may still be written or corrected.
func (s Status) AcceptsStats() bool {
	return s == StatusActive || s == StatusScoring || s == StatusTitles
}
