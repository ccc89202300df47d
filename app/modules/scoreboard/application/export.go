package scoreboardservice

import (
	"context"
	"fmt"

	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetStandings   = "Standings"
	SheetGames       = "Games"
	SheetTitles      = "Titles"
	SheetLeaderboard = "Leaderboard"
)

// ExportHistory renders a completed tournament as an xlsx workbook.
func (s *ScoreboardService) ExportHistory(ctx context.Context, tournamentID uuid.UUID) ([]byte, error) {
	return run(s, ctx, "ExportHistory", tournamentID.String(), func(ctx context.Context) ([]byte, error) {
		c, err := s.completedCeremony(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return BuildWorkbook(c)
	})
}

// BuildWorkbook writes one sheet per ceremony section.
func BuildWorkbook(c *scoreboardtypes.Ceremony) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStandings); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetGames, SheetTitles, SheetLeaderboard} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	standings := [][]any{{"Team", "Points", "Result"}}
	for _, t := range c.Teams {
		result := ""
		switch {
		case c.Tie:
			result = "Tie"
		case c.WinnerTeamID != nil && *c.WinnerTeamID == t.ID:
			result = "Winner"
		}
		standings = append(standings, []any{t.Name, t.TotalPoints, result})
	}

	games := [][]any{{"#", "Game", "Picked by", "Winner"}}
	for _, g := range c.Games {
		games = append(games, []any{g.GameOrder, g.GameTypeName, g.PickedByTeamName, g.WinningTeamName})
	}

	titles := [][]any{{"Game", "Title", "Player", "Team", "Points"}}
	for _, t := range c.Titles {
		game := "Ceremony"
		if t.GameID != nil {
			game = fmt.Sprintf("Game %d", t.GameOrder)
		}
		titles = append(titles, []any{game, t.Name, t.PlayerName, t.TeamName, t.Points})
	}

	board := [][]any{{"Player", "Team", "Titles", "Points"}}
	for _, e := range c.Leaderboard {
		board = append(board, []any{e.PlayerName, e.TeamName, e.Titles, e.Points})
	}

	for sheet, rows := range map[string][][]any{
		SheetStandings:   standings,
		SheetGames:       games,
		SheetTitles:      titles,
		SheetLeaderboard: board,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return nil, fmt.Errorf("style %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
