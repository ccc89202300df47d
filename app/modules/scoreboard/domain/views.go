package scoreboarddomain

import (
	"sort"
	"strings"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Rows are the fetched rows of one tournament the views are built from.
type Rows struct {
	Tournament *tournamenttypes.Tournament
	Players    []*tournamenttypes.Player
	Teams      []*tournamenttypes.Team
	Games      []*gametypes.Game
	GameTypes  []*gametypes.GameType
	Results    []*gametypes.GameResult
	Titles     []*gametypes.Title
}

type index struct {
	players   map[uuid.UUID]*tournamenttypes.Player
	teams     map[uuid.UUID]*tournamenttypes.Team
	games     map[uuid.UUID]*gametypes.Game
	gameTypes map[uuid.UUID]*gametypes.GameType
	results   map[uuid.UUID]*gametypes.GameResult
}

func newIndex(r Rows) index {
	idx := index{
		players:   make(map[uuid.UUID]*tournamenttypes.Player, len(r.Players)),
		teams:     make(map[uuid.UUID]*tournamenttypes.Team, len(r.Teams)),
		games:     make(map[uuid.UUID]*gametypes.Game, len(r.Games)),
		gameTypes: make(map[uuid.UUID]*gametypes.GameType, len(r.GameTypes)),
		results:   make(map[uuid.UUID]*gametypes.GameResult, len(r.Results)),
	}
	for _, p := range r.Players {
		idx.players[p.ID] = p
	}
	for _, t := range r.Teams {
		idx.teams[t.ID] = t
	}
	for _, g := range r.Games {
		idx.games[g.ID] = g
	}
	for _, gt := range r.GameTypes {
		idx.gameTypes[gt.ID] = gt
	}
	for _, res := range r.Results {
		idx.results[res.GameID] = res
	}
	return idx
}

func (idx index) teamName(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if t, ok := idx.teams[*id]; ok {
		return t.Name
	}
	return ""
}

// SortTeams orders teams by points, highest first. Equal points keep name order.
func SortTeams(teams []*tournamenttypes.Team) []*tournamenttypes.Team {
	out := append([]*tournamenttypes.Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BuildScoreboard assembles the standings. Only completed games are listed.
func BuildScoreboard(r Rows) scoreboardtypes.Scoreboard {
	idx := newIndex(r)

	games := make([]scoreboardtypes.GameSummary, 0, len(r.Games))
	for _, g := range r.Games {
		if g.Status != gametypes.StatusCompleted {
			continue
		}
		s := scoreboardtypes.GameSummary{
			ID:               g.ID,
			GameOrder:        g.GameOrder,
			PickedByTeamID:   g.PickedByTeam,
			PickedByTeamName: idx.teamName(&g.PickedByTeam),
		}
		if gt, ok := idx.gameTypes[g.GameTypeID]; ok {
			s.GameTypeName, s.Emoji = gt.Name, gt.Emoji
		}
		if res, ok := idx.results[g.ID]; ok && res.WinningTeamID != nil {
			s.WinningTeamID = res.WinningTeamID
			s.WinningTeamName = idx.teamName(res.WinningTeamID)
		}
		games = append(games, s)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameOrder < games[j].GameOrder })

	titles := idx.titleViews(r.Titles)
	return scoreboardtypes.Scoreboard{
		Tournament:  r.Tournament,
		Teams:       SortTeams(r.Teams),
		Players:     r.Players,
		Games:       games,
		Titles:      titles,
		Leaderboard: Leaderboard(titles),
	}
}

func (idx index) titleViews(titles []*gametypes.Title) []scoreboardtypes.TitleView {
	out := make([]scoreboardtypes.TitleView, 0, len(titles))
	for _, t := range titles {
		v := scoreboardtypes.TitleView{
			ID:          t.ID,
			GameID:      t.GameID,
			PlayerID:    t.PlayerID,
			Name:        t.TitleName,
			Description: t.TitleDesc,
			IsFunny:     t.IsFunny,
			Points:      t.Points,
		}
		if p, ok := idx.players[t.PlayerID]; ok {
			v.PlayerName = p.Name
			v.TeamID = p.TeamID
			v.TeamName = idx.teamName(p.TeamID)
		}
		if t.GameID != nil {
			if g, ok := idx.games[*t.GameID]; ok {
				v.GameOrder = g.GameOrder
			}
		}
		out = append(out, v)
	}
	// Ceremony titles last, game titles in play order.
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].GameID == nil, out[j].GameID == nil
		if gi != gj {
			return gj
		}
		return out[i].GameOrder < out[j].GameOrder
	})
	return out
}

// Leaderboard counts titles per player, most first. Ties are ordered by name.
func Leaderboard(titles []scoreboardtypes.TitleView) []scoreboardtypes.LeaderboardEntry {
	byPlayer := map[uuid.UUID]*scoreboardtypes.LeaderboardEntry{}
	for _, t := range titles {
		e, ok := byPlayer[t.PlayerID]
		if !ok {
			e = &scoreboardtypes.LeaderboardEntry{PlayerID: t.PlayerID, PlayerName: t.PlayerName, TeamName: t.TeamName}
			byPlayer[t.PlayerID] = e
		}
		e.Titles++
		e.Points += t.Points
	}
	out := make([]scoreboardtypes.LeaderboardEntry, 0, len(byPlayer))
	for _, e := range byPlayer {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Titles != out[j].Titles {
			return out[i].Titles > out[j].Titles
		}
		ni, nj := strings.ToLower(out[i].PlayerName), strings.ToLower(out[j].PlayerName)
		if ni != nj {
			return ni < nj
		}
		return out[i].PlayerID.String() < out[j].PlayerID.String()
	})
	return out
}

// BuildCeremony adds the outcome to the scoreboard. A lone team wins by default.
func BuildCeremony(r Rows) scoreboardtypes.Ceremony {
	c := scoreboardtypes.Ceremony{Scoreboard: BuildScoreboard(r)}
	teams := c.Teams
	switch {
	case len(teams) == 1:
		c.WinnerTeamID = &teams[0].ID
	case len(teams) >= 2:
		if teams[0].TotalPoints == teams[1].TotalPoints {
			c.Tie = true
		} else {
			c.WinnerTeamID = &teams[0].ID
		}
	}
	return c
}

// HistoryEntries lists completed tournaments, newest first.
func HistoryEntries(tournaments []*tournamenttypes.Tournament) []scoreboardtypes.HistoryEntry {
	out := make([]scoreboardtypes.HistoryEntry, 0, len(tournaments))
	for _, t := range tournaments {
		if t.Status != tournamenttypes.StatusCompleted {
			continue
		}
		out = append(out, scoreboardtypes.HistoryEntry{
			TournamentID: t.ID,
			Name:         t.Name,
			RoomCode:     t.RoomCode,
			NumGames:     t.NumGames,
			CompletedAt:  t.UpdatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out
}

// BuildPlayerDetail breaks a player's stats down per game. Total points is the sum of the
// player's title points.
func BuildPlayerDetail(player *tournamenttypes.Player, r Rows, stats []*gametypes.PlayerStat) scoreboardtypes.PlayerDetail {
	idx := newIndex(r)
	d := scoreboardtypes.PlayerDetail{
		Player:   player,
		TeamName: idx.teamName(player.TeamID),
		Games:    []scoreboardtypes.PlayerGame{},
	}

	var own []*gametypes.Title
	for _, t := range r.Titles {
		if t.PlayerID == player.ID {
			own = append(own, t)
			d.TotalPoints += t.Points
		}
	}
	d.Titles = idx.titleViews(own)

	perGame := map[uuid.UUID]*scoreboardtypes.PlayerGame{}
	game := func(id uuid.UUID) *scoreboardtypes.PlayerGame {
		if pg, ok := perGame[id]; ok {
			return pg
		}
		pg := &scoreboardtypes.PlayerGame{GameID: id, Stats: []scoreboardtypes.StatEntry{}, Titles: []string{}}
		if g, ok := idx.games[id]; ok {
			pg.GameOrder = g.GameOrder
			if gt, ok := idx.gameTypes[g.GameTypeID]; ok {
				pg.GameTypeName = gt.Name
			}
		}
		perGame[id] = pg
		return pg
	}
	for _, s := range stats {
		if s.PlayerID != player.ID {
			continue
		}
		pg := game(s.GameID)
		pg.Stats = append(pg.Stats, scoreboardtypes.StatEntry{Key: s.StatKey, Value: s.StatValue})
	}
	for _, t := range own {
		if t.GameID != nil {
			pg := game(*t.GameID)
			pg.Titles = append(pg.Titles, t.TitleName)
		}
	}

	for _, pg := range perGame {
		sort.Slice(pg.Stats, func(i, j int) bool { return pg.Stats[i].Key < pg.Stats[j].Key })
		d.Games = append(d.Games, *pg)
	}
	sort.Slice(d.Games, func(i, j int) bool { return d.Games[i].GameOrder < d.Games[j].GameOrder })
	return d
}
