package gamedomain

import (
	"bytes"
	"sort"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
)

// Award is one title earned by one player.
type Award struct {
	PlayerID    uuid.UUID
	Name        string
	Description string
	IsFunny     bool
}

type statValue struct {
	playerID uuid.UUID
	value    gametypes.StatValue
}

// EvaluateTitles applies every definition to the game's stats. Ties at an extremum all qualify.
// Awards come out in definition order, then player id order.
func EvaluateTitles(defs []gametypes.TitleDefinition, stats []*gametypes.PlayerStat) []Award {
	byKey := map[string][]statValue{}
	for _, s := range stats {
		byKey[s.StatKey] = append(byKey[s.StatKey], statValue{playerID: s.PlayerID, value: s.StatValue})
	}
	for key := range byKey {
		vals := byKey[key]
		sort.Slice(vals, func(i, j int) bool {
			return bytes.Compare(vals[i].playerID[:], vals[j].playerID[:]) < 0
		})
	}

	var awards []Award
	for _, def := range defs {
		if def.Condition == nil {
			continue
		}
		for _, playerID := range qualifying(def.Condition, byKey[def.Condition.Stat()]) {
			awards = append(awards, Award{
				PlayerID:    playerID,
				Name:        def.Name,
				Description: def.Description,
				IsFunny:     def.IsFunny,
			})
		}
	}
	return awards
}

func qualifying(cond gametypes.Condition, vals []statValue) []uuid.UUID {
	var out []uuid.UUID
	switch c := cond.(type) {
	case gametypes.Highest:
		return extremum(vals, func(a, b float64) bool { return a > b })
	case gametypes.Lowest:
		return extremum(vals, func(a, b float64) bool { return a < b })
	case gametypes.Exact:
		for _, v := range vals {
			if n, ok := v.value.Number(); ok && n == c.Value {
				out = append(out, v.playerID)
			}
		}
	case gametypes.Flag:
		for _, v := range vals {
			if b, ok := v.value.Bool(); ok && b {
				out = append(out, v.playerID)
			}
		}
	case gametypes.Threshold:
		for _, v := range vals {
			if n, ok := v.value.Number(); ok && n >= c.Min {
				out = append(out, v.playerID)
			}
		}
	}
	return out
}

// extremum returns every player whose numeric value equals the best one under better.
func extremum(vals []statValue, better func(a, b float64) bool) []uuid.UUID {
	var (
		best  float64
		found bool
		out   []uuid.UUID
	)
	for _, v := range vals {
		n, ok := v.value.Number()
		if !ok {
			continue
		}
		switch {
		case !found || better(n, best):
			best, found = n, true
			out = []uuid.UUID{v.playerID}
		case n == best:
			out = append(out, v.playerID)
		}
	}
	return out
}

// TitlesFor turns awards into title rows for one game.
func TitlesFor(tournamentID uuid.UUID, gameID *uuid.UUID, awards []Award) []*gametypes.Title {
	titles := make([]*gametypes.Title, 0, len(awards))
	for _, a := range awards {
		titles = append(titles, &gametypes.Title{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			GameID:       gameID,
			PlayerID:     a.PlayerID,
			TitleName:    a.Name,
			TitleDesc:    a.Description,
			IsFunny:      a.IsFunny,
			Points:       gametypes.DefaultTitlePoints,
		})
	}
	return titles
}
