package scoreboardservice

import (
	"context"
	"errors"
	"strconv"

	scoreboarddomain "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/domain"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

func (s *ScoreboardService) getTournament(ctx context.Context, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	t, err := s.repo.GetTournament(ctx, s.db, id)
	if errors.Is(err, scoreboarddb.ErrNotFound) {
		return nil, ErrTournamentNotFound
	}
	return t, err
}

// loadRows fetches every row the views are built from.
func (s *ScoreboardService) loadRows(ctx context.Context, tournamentID uuid.UUID) (scoreboarddomain.Rows, error) {
	t, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return scoreboarddomain.Rows{}, err
	}
	rows := scoreboarddomain.Rows{Tournament: t}
	if rows.Players, err = s.repo.ListPlayers(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	if rows.Teams, err = s.repo.ListTeams(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	if rows.Games, err = s.repo.ListGames(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	if rows.GameTypes, err = s.repo.ListGameTypes(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	if rows.Results, err = s.repo.ListResults(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	if rows.Titles, err = s.repo.ListTitles(ctx, s.db, t.ID); err != nil {
		return rows, err
	}
	return rows, nil
}

func (s *ScoreboardService) Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error) {
	return run(s, ctx, "Snapshot", tournamentID.String(), func(ctx context.Context) (*scoreboardtypes.Snapshot, error) {
		rows, err := s.loadRows(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		votes, err := s.repo.ListVotes(ctx, s.db, tournamentID)
		if err != nil {
			return nil, err
		}
		return &scoreboardtypes.Snapshot{
			Tournament: rows.Tournament,
			Players:    rows.Players,
			Teams:      rows.Teams,
			Votes:      votes,
			Games:      rows.Games,
			Titles:     rows.Titles,
		}, nil
	})
}

func (s *ScoreboardService) Scoreboard(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Scoreboard, error) {
	return run(s, ctx, "Scoreboard", tournamentID.String(), func(ctx context.Context) (*scoreboardtypes.Scoreboard, error) {
		rows, err := s.loadRows(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		sb := scoreboarddomain.BuildScoreboard(rows)
		return &sb, nil
	})
}

func (s *ScoreboardService) Ceremony(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error) {
	return run(s, ctx, "Ceremony", tournamentID.String(), func(ctx context.Context) (*scoreboardtypes.Ceremony, error) {
		rows, err := s.loadRows(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		c := scoreboarddomain.BuildCeremony(rows)
		return &c, nil
	})
}

func (s *ScoreboardService) History(ctx context.Context, limit int) ([]scoreboardtypes.HistoryEntry, error) {
	return run(s, ctx, "History", strconv.Itoa(limit), func(ctx context.Context) ([]scoreboardtypes.HistoryEntry, error) {
		ts, err := s.repo.ListCompletedTournaments(ctx, s.db, limit)
		if err != nil {
			return nil, err
		}
		return scoreboarddomain.HistoryEntries(ts), nil
	})
}

func (s *ScoreboardService) HistoryDetail(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error) {
	return run(s, ctx, "HistoryDetail", tournamentID.String(), func(ctx context.Context) (*scoreboardtypes.Ceremony, error) {
		return s.completedCeremony(ctx, tournamentID)
	})
}

func (s *ScoreboardService) completedCeremony(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error) {
	rows, err := s.loadRows(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if rows.Tournament.Status != tournamenttypes.StatusCompleted {
		return nil, ErrNotCompleted
	}
	c := scoreboarddomain.BuildCeremony(rows)
	return &c, nil
}

func (s *ScoreboardService) PlayerDetail(ctx context.Context, playerID uuid.UUID) (*scoreboardtypes.PlayerDetail, error) {
	return run(s, ctx, "PlayerDetail", playerID.String(), func(ctx context.Context) (*scoreboardtypes.PlayerDetail, error) {
		player, err := s.repo.GetPlayer(ctx, s.db, playerID)
		if errors.Is(err, scoreboarddb.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		if err != nil {
			return nil, err
		}
		rows, err := s.loadRows(ctx, player.TournamentID)
		if err != nil {
			return nil, err
		}
		stats, err := s.repo.ListPlayerStats(ctx, s.db, player.ID)
		if err != nil {
			return nil, err
		}
		d := scoreboarddomain.BuildPlayerDetail(player, rows, stats)
		return &d, nil
	})
}
