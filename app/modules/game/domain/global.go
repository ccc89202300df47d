package gamedomain

import (
	"bytes"
	"sort"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
)

// Ceremony title names.
const (
	TitleMVP         = "MVP"
	TitleHoarder     = "Title Hoarder"
	TitleLateBloomer = "Late Bloomer"
	TitleConsistent  = "Consistent"
	TitleComicRelief = "Comic Relief"
)

const (
	minHoarderGames   = 2
	minConsistentHits = 2
)

type playerTally struct {
	titles       int
	funny        int
	games        map[uuid.UUID]bool
	firstHalf    int
	secondHalf   int
	gamesByTitle map[string]map[uuid.UUID]bool
}

// GlobalTitles aggregates per-game titles into ceremony awards. Global titles in the input are
// ignored. Games are split into halves by game_order at floor(len(games)/2).
func GlobalTitles(games []*gametypes.Game, titles []*gametypes.Title) []Award {
	order := make(map[uuid.UUID]int, len(games))
	for _, g := range games {
		order[g.ID] = g.GameOrder
	}
	firstHalfEnd := len(games) / 2

	tallies := map[uuid.UUID]*playerTally{}
	for _, t := range titles {
		if t.IsGlobal() {
			continue
		}
		gameID := *t.GameID
		pt := tallies[t.PlayerID]
		if pt == nil {
			pt = &playerTally{games: map[uuid.UUID]bool{}, gamesByTitle: map[string]map[uuid.UUID]bool{}}
			tallies[t.PlayerID] = pt
		}
		pt.titles++
		if t.IsFunny {
			pt.funny++
		}
		pt.games[gameID] = true
		if pt.gamesByTitle[t.TitleName] == nil {
			pt.gamesByTitle[t.TitleName] = map[uuid.UUID]bool{}
		}
		pt.gamesByTitle[t.TitleName][gameID] = true
		if o, ok := order[gameID]; ok {
			if o <= firstHalfEnd {
				pt.firstHalf++
			} else {
				pt.secondHalf++
			}
		}
	}

	players := make([]uuid.UUID, 0, len(tallies))
	for id := range tallies {
		players = append(players, id)
	}
	sort.Slice(players, func(i, j int) bool {
		return bytes.Compare(players[i][:], players[j][:]) < 0
	})

	var awards []Award
	add := func(ids []uuid.UUID, name, desc string, funny bool) {
		for _, id := range ids {
			awards = append(awards, Award{PlayerID: id, Name: name, Description: desc, IsFunny: funny})
		}
	}

	add(mostOf(players, tallies, 1, func(p *playerTally) int { return p.titles }),
		TitleMVP, "Most titles in the tournament", false)
	add(mostOf(players, tallies, minHoarderGames, func(p *playerTally) int { return len(p.games) }),
		TitleHoarder, "Titles across the most games", false)

	var bloomers, consistent []uuid.UUID
	for _, id := range players {
		pt := tallies[id]
		if pt.secondHalf > pt.firstHalf {
			bloomers = append(bloomers, id)
		}
		for _, gs := range pt.gamesByTitle {
			if len(gs) >= minConsistentHits {
				consistent = append(consistent, id)
				break
			}
		}
	}
	add(bloomers, TitleLateBloomer, "More titles in the second half than the first", false)
	add(consistent, TitleConsistent, "Won the same title in different games", false)

	add(mostOf(players, tallies, 1, func(p *playerTally) int { return p.funny }),
		TitleComicRelief, "Most funny titles", true)

	return awards
}

// mostOf returns every player tied at the highest score, provided it reaches min.
func mostOf(players []uuid.UUID, tallies map[uuid.UUID]*playerTally, atLeast int, score func(*playerTally) int) []uuid.UUID {
	best := 0
	var out []uuid.UUID
	for _, id := range players {
		s := score(tallies[id])
		switch {
		case s > best:
			best = s
			out = []uuid.UUID{id}
		case s == best && s > 0:
			out = append(out, id)
		}
	}
	if best < atLeast {
		return nil
	}
	return out
}
