package gamedomain

import (
	"testing"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fourGames() []*gametypes.Game {
	games := make([]*gametypes.Game, 4)
	for i := range games {
		games[i] = &gametypes.Game{ID: uuid.New(), GameOrder: i + 1}
	}
	return games
}

func title(player uuid.UUID, game *gametypes.Game, name string, funny bool) *gametypes.Title {
	id := game.ID
	return &gametypes.Title{PlayerID: player, GameID: &id, TitleName: name, IsFunny: funny}
}

func TestGlobalTitles_LateBloomerBoundary(t *testing.T) {
	games := fourGames()
	bloomer, steady := pid(1), pid(2)

	titles := []*gametypes.Title{
		title(bloomer, games[1], "A", false),
		title(bloomer, games[2], "B", false),
		title(bloomer, games[3], "C", false),
		title(steady, games[0], "D", false),
		title(steady, games[3], "E", false),
	}

	awards := GlobalTitles(games, titles)
	assert.Equal(t, []uuid.UUID{bloomer}, winners(awards, TitleLateBloomer))
}

func TestGlobalTitles(t *testing.T) {
	games := fourGames()
	a, b, c := pid(1), pid(2), pid(3)

	titles := []*gametypes.Title{
		title(a, games[0], "Sharpshooter", false),
		title(a, games[1], "Sharpshooter", false),
		title(a, games[1], "Butterfingers", true),
		title(b, games[0], "Butterfingers", true),
		title(b, games[2], "Clown", true),
		title(b, games[3], "Speedy", false),
		title(c, games[0], "Speedy", false),
		{PlayerID: c, TitleName: TitleMVP},
	}

	awards := GlobalTitles(games, titles)

	assert.Equal(t, []uuid.UUID{a, b}, winners(awards, TitleMVP), "ties all qualify")
	assert.Equal(t, []uuid.UUID{b}, winners(awards, TitleHoarder))
	assert.Equal(t, []uuid.UUID{a}, winners(awards, TitleConsistent))
	assert.Equal(t, []uuid.UUID{b}, winners(awards, TitleComicRelief))
	assert.Equal(t, []uuid.UUID{b}, winners(awards, TitleLateBloomer))

	for _, aw := range awards {
		assert.Equal(t, aw.Name == TitleComicRelief, aw.IsFunny, aw.Name)
	}
}

func TestGlobalTitles_Minimums(t *testing.T) {
	games := fourGames()
	a := pid(1)

	awards := GlobalTitles(games, []*gametypes.Title{title(a, games[0], "Solo", false)})

	assert.Equal(t, []uuid.UUID{a}, winners(awards, TitleMVP))
	assert.Empty(t, winners(awards, TitleHoarder), "one game is not a hoard")
	assert.Empty(t, winners(awards, TitleComicRelief), "no funny titles")
	assert.Empty(t, winners(awards, TitleConsistent))
	assert.Empty(t, winners(awards, TitleLateBloomer))

	assert.Empty(t, GlobalTitles(games, nil))
}
