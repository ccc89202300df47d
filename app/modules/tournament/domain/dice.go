package tournamentdomain

import (
	"errors"
	"math/rand/v2"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

var (
	ErrInvalidDiceValue = errors.New("dice value must be between 1 and 6")
	ErrDiceUnknownTeam  = errors.New("team is not part of this dice roll")
	ErrDiceRoundClosed  = errors.New("dice round already rolled, reset to roll again")
	ErrNoDiceWinner     = errors.New("dice roll has no winner")
)

// Roller draws the dice target.
type Roller func() int

// RandomRoller rolls a fair six-sided die.
func RandomRoller() Roller {
	return func() int { return rand.IntN(6) + 1 }
}

// FixedRoller always rolls v.
func FixedRoller(v int) Roller {
	return func() int { return v }
}

func validDiceValue(v int) bool {
	return v >= 1 && v <= 6
}

// SubmitDicePick records a team's pick. Once every team in teamIDs has picked, a target is
// rolled and the round is resolved. The input is never mutated.
func SubmitDicePick(data *tournamenttypes.DiceRollData, teamIDs []uuid.UUID, teamID uuid.UUID, value int, roll Roller) (*tournamenttypes.DiceRollData, error) {
	if !validDiceValue(value) {
		return nil, ErrInvalidDiceValue
	}
	if !containsID(teamIDs, teamID) {
		return nil, ErrDiceUnknownTeam
	}

	next := cloneDice(data)
	if next.Target != nil {
		return nil, ErrDiceRoundClosed
	}
	next.Picks[teamID] = value

	for _, id := range teamIDs {
		if _, ok := next.Picks[id]; !ok {
			return next, nil
		}
	}
	return ResolveDice(next, roll())
}

// ResolveDice computes distances to target. The strictly closest team wins; an exact tie leaves
// WinnerID nil.
func ResolveDice(data *tournamenttypes.DiceRollData, target int) (*tournamenttypes.DiceRollData, error) {
	if !validDiceValue(target) {
		return nil, ErrInvalidDiceValue
	}
	next := cloneDice(data)
	t := target
	next.Target = &t
	next.Distances = make(map[uuid.UUID]int, len(next.Picks))
	next.WinnerID = nil

	best := -1
	tied := false
	var winner uuid.UUID
	for id, pick := range next.Picks {
		d := abs(pick - target)
		next.Distances[id] = d
		switch {
		case best == -1 || d < best:
			best, winner, tied = d, id, false
		case d == best:
			tied = true
		}
	}
	if best >= 0 && !tied {
		w := winner
		next.WinnerID = &w
	}
	return next, nil
}

// ResetDice clears the picks and starts the next round.
func ResetDice(data *tournamenttypes.DiceRollData) *tournamenttypes.DiceRollData {
	next := tournamenttypes.NewDiceRollData()
	if data != nil {
		next.Round = data.Round + 1
	}
	return next
}

// DiceWinner returns the resolved winner.
func DiceWinner(data *tournamenttypes.DiceRollData) (uuid.UUID, error) {
	if data == nil || data.WinnerID == nil {
		return uuid.Nil, ErrNoDiceWinner
	}
	return *data.WinnerID, nil
}

func cloneDice(data *tournamenttypes.DiceRollData) *tournamenttypes.DiceRollData {
	if data == nil {
		return tournamenttypes.NewDiceRollData()
	}
	next := &tournamenttypes.DiceRollData{
		Round: data.Round,
		Picks: make(map[uuid.UUID]int, len(data.Picks)),
	}
	for k, v := range data.Picks {
		next.Picks[k] = v
	}
	if data.Target != nil {
		t := *data.Target
		next.Target = &t
	}
	if data.Distances != nil {
		next.Distances = make(map[uuid.UUID]int, len(data.Distances))
		for k, v := range data.Distances {
			next.Distances[k] = v
		}
	}
	if data.WinnerID != nil {
		w := *data.WinnerID
		next.WinnerID = &w
	}
	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
