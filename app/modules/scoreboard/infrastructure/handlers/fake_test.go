package scoreboardhandlers

import (
	"context"

	scoreboardservice "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/application"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	"github.com/google/uuid"
)

// ------------------------
// Fake Scoreboard Service
// ------------------------

type FakeScoreboardService struct {
	trace []string

	SnapshotFunc      func(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error)
	ScoreboardFunc    func(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Scoreboard, error)
	CeremonyFunc      func(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error)
	HistoryFunc       func(ctx context.Context, limit int) ([]scoreboardtypes.HistoryEntry, error)
	HistoryDetailFunc func(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error)
	PlayerDetailFunc  func(ctx context.Context, playerID uuid.UUID) (*scoreboardtypes.PlayerDetail, error)
	ExportHistoryFunc func(ctx context.Context, tournamentID uuid.UUID) ([]byte, error)
	TitleChartFunc    func(ctx context.Context, tournamentID uuid.UUID) ([]byte, error)
}

func NewFakeScoreboardService() *FakeScoreboardService {
	return &FakeScoreboardService{trace: []string{}}
}

func (f *FakeScoreboardService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreboardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreboardService) Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error) {
	f.record("Snapshot")
	if f.SnapshotFunc != nil {
		return f.SnapshotFunc(ctx, tournamentID)
	}
	return &scoreboardtypes.Snapshot{}, nil
}

func (f *FakeScoreboardService) Scoreboard(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Scoreboard, error) {
	f.record("Scoreboard")
	if f.ScoreboardFunc != nil {
		return f.ScoreboardFunc(ctx, tournamentID)
	}
	return &scoreboardtypes.Scoreboard{}, nil
}

func (f *FakeScoreboardService) Ceremony(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error) {
	f.record("Ceremony")
	if f.CeremonyFunc != nil {
		return f.CeremonyFunc(ctx, tournamentID)
	}
	return &scoreboardtypes.Ceremony{}, nil
}

func (f *FakeScoreboardService) History(ctx context.Context, limit int) ([]scoreboardtypes.HistoryEntry, error) {
	f.record("History")
	if f.HistoryFunc != nil {
		return f.HistoryFunc(ctx, limit)
	}
	return []scoreboardtypes.HistoryEntry{}, nil
}

func (f *FakeScoreboardService) HistoryDetail(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error) {
	f.record("HistoryDetail")
	if f.HistoryDetailFunc != nil {
		return f.HistoryDetailFunc(ctx, tournamentID)
	}
	return &scoreboardtypes.Ceremony{}, nil
}

func (f *FakeScoreboardService) PlayerDetail(ctx context.Context, playerID uuid.UUID) (*scoreboardtypes.PlayerDetail, error) {
	f.record("PlayerDetail")
	if f.PlayerDetailFunc != nil {
		return f.PlayerDetailFunc(ctx, playerID)
	}
	return &scoreboardtypes.PlayerDetail{}, nil
}

func (f *FakeScoreboardService) ExportHistory(ctx context.Context, tournamentID uuid.UUID) ([]byte, error) {
	f.record("ExportHistory")
	if f.ExportHistoryFunc != nil {
		return f.ExportHistoryFunc(ctx, tournamentID)
	}
	return []byte("xlsx"), nil
}

func (f *FakeScoreboardService) TitleChart(ctx context.Context, tournamentID uuid.UUID) ([]byte, error) {
	f.record("TitleChart")
	if f.TitleChartFunc != nil {
		return f.TitleChartFunc(ctx, tournamentID)
	}
	return []byte("png"), nil
}

var _ scoreboardservice.Service = (*FakeScoreboardService)(nil)
