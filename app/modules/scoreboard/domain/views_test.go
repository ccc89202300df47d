package scoreboarddomain

import (
	"testing"
	"time"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type world struct {
	rows       Rows
	red, blue  *tournamenttypes.Team
	ada, bo    *tournamenttypes.Player
	g1, g2, g3 *gametypes.Game
}

func newWorld() *world {
	w := &world{}
	tid := uuid.New()
	w.red = &tournamenttypes.Team{ID: uuid.New(), TournamentID: tid, Name: "Red", TotalPoints: 1}
	w.blue = &tournamenttypes.Team{ID: uuid.New(), TournamentID: tid, Name: "Blue", TotalPoints: 1.5}
	w.ada = &tournamenttypes.Player{ID: uuid.New(), TournamentID: tid, Name: "Ada", TeamID: &w.red.ID}
	w.bo = &tournamenttypes.Player{ID: uuid.New(), TournamentID: tid, Name: "Bo", TeamID: &w.blue.ID}

	trivia := &gametypes.GameType{ID: uuid.New(), Name: "Trivia", Emoji: "🧠"}
	pong := &gametypes.GameType{ID: uuid.New(), Name: "Beer Pong", Emoji: "🏓"}
	w.g1 = &gametypes.Game{ID: uuid.New(), TournamentID: tid, GameTypeID: trivia.ID, Status: gametypes.StatusCompleted, PickedByTeam: w.red.ID, GameOrder: 1}
	w.g2 = &gametypes.Game{ID: uuid.New(), TournamentID: tid, GameTypeID: pong.ID, Status: gametypes.StatusCompleted, PickedByTeam: w.blue.ID, GameOrder: 2}
	w.g3 = &gametypes.Game{ID: uuid.New(), TournamentID: tid, GameTypeID: trivia.ID, Status: gametypes.StatusActive, PickedByTeam: w.red.ID, GameOrder: 3}

	title := func(game *gametypes.Game, p *tournamenttypes.Player, name string) *gametypes.Title {
		var gid *uuid.UUID
		if game != nil {
			gid = &game.ID
		}
		return &gametypes.Title{ID: uuid.New(), TournamentID: tid, GameID: gid, PlayerID: p.ID, TitleName: name, Points: gametypes.DefaultTitlePoints}
	}

	w.rows = Rows{
		Tournament: &tournamenttypes.Tournament{ID: tid, Name: "Friday", Status: tournamenttypes.StatusCompleted},
		Players:    []*tournamenttypes.Player{w.ada, w.bo},
		Teams:      []*tournamenttypes.Team{w.red, w.blue},
		// Out of order on purpose.
		Games:     []*gametypes.Game{w.g2, w.g3, w.g1},
		GameTypes: []*gametypes.GameType{trivia, pong},
		Results: []*gametypes.GameResult{
			{GameID: w.g1.ID, WinningTeamID: &w.blue.ID},
			{GameID: w.g2.ID},
		},
		Titles: []*gametypes.Title{
			title(nil, w.bo, "MVP"),
			title(w.g2, w.bo, "Sniper"),
			title(w.g1, w.ada, "Know-It-All"),
			title(w.g1, w.bo, "Blank Stare"),
			title(w.g2, w.ada, "Butterfingers"),
		},
	}
	return w
}

func TestBuildScoreboard(t *testing.T) {
	w := newWorld()

	sb := BuildScoreboard(w.rows)

	assert.Equal(t, []*tournamenttypes.Team{w.blue, w.red}, sb.Teams)

	wantGames := []scoreboardtypes.GameSummary{
		{ID: w.g1.ID, GameOrder: 1, GameTypeName: "Trivia", Emoji: "🧠", PickedByTeamID: w.red.ID, PickedByTeamName: "Red", WinningTeamID: &w.blue.ID, WinningTeamName: "Blue"},
		{ID: w.g2.ID, GameOrder: 2, GameTypeName: "Beer Pong", Emoji: "🏓", PickedByTeamID: w.blue.ID, PickedByTeamName: "Blue"},
	}
	if diff := cmp.Diff(wantGames, sb.Games); diff != "" {
		t.Errorf("games mismatch (-want +got):\n%s", diff)
	}

	var order []string
	for _, v := range sb.Titles {
		order = append(order, v.Name)
	}
	assert.Equal(t, []string{"Know-It-All", "Blank Stare", "Sniper", "Butterfingers", "MVP"}, order)
	assert.Equal(t, "Red", sb.Titles[0].TeamName)
	assert.Equal(t, "Ada", sb.Titles[0].PlayerName)

	wantBoard := []scoreboardtypes.LeaderboardEntry{
		{PlayerID: w.bo.ID, PlayerName: "Bo", TeamName: "Blue", Titles: 3, Points: 1.5},
		{PlayerID: w.ada.ID, PlayerName: "Ada", TeamName: "Red", Titles: 2, Points: 1},
	}
	if diff := cmp.Diff(wantBoard, sb.Leaderboard); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaderboard_TiesByName(t *testing.T) {
	zed, amy := uuid.New(), uuid.New()
	board := Leaderboard([]scoreboardtypes.TitleView{
		{PlayerID: zed, PlayerName: "zed", Points: 0.5},
		{PlayerID: amy, PlayerName: "Amy", Points: 0.5},
	})
	require.Len(t, board, 2)
	assert.Equal(t, "Amy", board[0].PlayerName)
	assert.Equal(t, "zed", board[1].PlayerName)
}

func TestBuildCeremony(t *testing.T) {
	tests := []struct {
		name       string
		points     []float64
		wantWinner int
		wantTie    bool
	}{
		{name: "higher total wins", points: []float64{2, 3.5}, wantWinner: 1},
		{name: "equal totals tie", points: []float64{2, 2}, wantWinner: -1, wantTie: true},
		{name: "single team wins by default", points: []float64{0}, wantWinner: 0},
		{name: "no teams", wantWinner: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var teams []*tournamenttypes.Team
			for i, p := range tt.points {
				teams = append(teams, &tournamenttypes.Team{ID: uuid.New(), Name: string(rune('A' + i)), TotalPoints: p})
			}

			c := BuildCeremony(Rows{Teams: teams})

			assert.Equal(t, tt.wantTie, c.Tie)
			if tt.wantWinner < 0 {
				assert.Nil(t, c.WinnerTeamID)
				return
			}
			require.NotNil(t, c.WinnerTeamID)
			assert.Equal(t, teams[tt.wantWinner].ID, *c.WinnerTeamID)
		})
	}
}

func TestHistoryEntries(t *testing.T) {
	now := time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC)
	older := &tournamenttypes.Tournament{ID: uuid.New(), Name: "Older", Status: tournamenttypes.StatusCompleted, UpdatedAt: now.Add(-24 * time.Hour)}
	newer := &tournamenttypes.Tournament{ID: uuid.New(), Name: "Newer", Status: tournamenttypes.StatusCompleted, UpdatedAt: now}
	live := &tournamenttypes.Tournament{ID: uuid.New(), Name: "Live", Status: tournamenttypes.StatusPlaying, UpdatedAt: now}

	entries := HistoryEntries([]*tournamenttypes.Tournament{older, live, newer})

	require.Len(t, entries, 2)
	assert.Equal(t, "Newer", entries[0].Name)
	assert.Equal(t, "Older", entries[1].Name)
}

func TestBuildPlayerDetail(t *testing.T) {
	w := newWorld()
	stats := []*gametypes.PlayerStat{
		{GameID: w.g2.ID, PlayerID: w.ada.ID, StatKey: "cups", StatValue: gametypes.NumberValue(2)},
		{GameID: w.g1.ID, PlayerID: w.ada.ID, StatKey: "correct", StatValue: gametypes.NumberValue(9)},
		{GameID: w.g1.ID, PlayerID: w.ada.ID, StatKey: "bonus", StatValue: gametypes.BoolValue(true)},
		{GameID: w.g1.ID, PlayerID: w.bo.ID, StatKey: "correct", StatValue: gametypes.NumberValue(1)},
	}

	d := BuildPlayerDetail(w.ada, w.rows, stats)

	assert.Equal(t, "Red", d.TeamName)
	assert.Equal(t, 1.0, d.TotalPoints)
	want := []scoreboardtypes.PlayerGame{
		{
			GameID:       w.g1.ID,
			GameOrder:    1,
			GameTypeName: "Trivia",
			Stats: []scoreboardtypes.StatEntry{
				{Key: "bonus", Value: gametypes.BoolValue(true)},
				{Key: "correct", Value: gametypes.NumberValue(9)},
			},
			Titles: []string{"Know-It-All"},
		},
		{
			GameID:       w.g2.ID,
			GameOrder:    2,
			GameTypeName: "Beer Pong",
			Stats:        []scoreboardtypes.StatEntry{{Key: "cups", Value: gametypes.NumberValue(2)}},
			Titles:       []string{"Butterfingers"},
		},
	}
	if diff := cmp.Diff(want, d.Games); diff != "" {
		t.Errorf("games mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPlayerDetail_NoStats(t *testing.T) {
	loner := &tournamenttypes.Player{ID: uuid.New(), Name: "Cy"}

	d := BuildPlayerDetail(loner, Rows{}, nil)

	assert.Empty(t, d.Games)
	assert.NotNil(t, d.Games)
	assert.Zero(t, d.TotalPoints)
}
