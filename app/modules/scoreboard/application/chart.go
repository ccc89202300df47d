package scoreboardservice

import (
	"bytes"
	"context"

	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colours the rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	TextColor  drawing.Color
}

var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("1b1f2a"),
	Bar:        drawing.ColorFromHex("f5b700"),
	TextColor:  drawing.ColorFromHex("f1f1f1"),
}

// maxChartBars keeps labels readable.
const maxChartBars = 12

// TitleChart renders the title leaderboard as a PNG bar chart.
func (s *ScoreboardService) TitleChart(ctx context.Context, tournamentID uuid.UUID) ([]byte, error) {
	return run(s, ctx, "TitleChart", tournamentID.String(), func(ctx context.Context) ([]byte, error) {
		sb, err := s.Scoreboard(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return RenderTitleChart(sb.Tournament.Name, sb.Leaderboard, s.palette)
	})
}

// RenderTitleChart draws one bar per player, sized by title count.
func RenderTitleChart(name string, board []scoreboardtypes.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	if len(board) == 0 {
		return renderNoDataPlaceholder(palette)
	}
	if len(board) > maxChartBars {
		board = board[:maxChartBars]
	}

	bars := make([]chart.Value, 0, len(board))
	most := 0
	for _, e := range board {
		bars = append(bars, chart.Value{
			Label: e.PlayerName,
			Value: float64(e.Titles),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		})
		if e.Titles > most {
			most = e.Titles
		}
	}

	graph := chart.BarChart{
		Title:      name,
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      800,
		Height:     400,
		BarWidth:   40,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(most)},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No titles awarded yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		// Render refuses a chart without series, so draw a line in the background colour.
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{StrokeColor: palette.Background},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
