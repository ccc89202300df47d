package tournamentservice

import (
	"context"
	"errors"
	"strings"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type teamResult = results.OperationResult[*tournamenttypes.Team, error]
type playerResult = results.OperationResult[*tournamenttypes.Player, error]

// CreateTeam adds one of the tournament's two teams.
func (s *TournamentService) CreateTeam(ctx context.Context, tournamentID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	batch := changefeed.NewBatch(tournamentID)
	return execute(s, ctx, "CreateTeam", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (teamResult, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return fail[*tournamenttypes.Team](ErrInvalidName)
		}
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Team](err)
		}
		teams, err := s.repo.ListTeams(ctx, db, t.ID)
		if err != nil {
			return abort[*tournamenttypes.Team](err)
		}
		if len(teams) >= tournamentdomain.MaxTeams {
			return fail[*tournamenttypes.Team](ErrTeamLimit)
		}

		team := &tournamenttypes.Team{TournamentID: t.ID, Name: name}
		if err := s.repo.CreateTeam(ctx, db, team); err != nil {
			return abort[*tournamenttypes.Team](err)
		}
		batch.Insert(changefeed.TableTeams, team)
		return ok(team)
	})
}

// UpdateTeamName renames a team.
func (s *TournamentService) UpdateTeamName(ctx context.Context, teamID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "UpdateTeamName", teamID.String(), batch, func(ctx context.Context, db bun.IDB) (teamResult, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return fail[*tournamenttypes.Team](ErrInvalidName)
		}
		old, err := s.getTeam(ctx, db, teamID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Team](err)
		}
		batch.SetTournament(old.TournamentID)

		updated, err := s.repo.UpdateTeamName(ctx, db, teamID, name)
		if err != nil {
			return abort[*tournamenttypes.Team](mapNotFound(err, ErrTeamNotFound))
		}
		batch.Update(changefeed.TableTeams, old, updated)
		return ok(updated)
	})
}

// JoinTeam moves a player onto a team. Votes tied to the previous team are dropped.
func (s *TournamentService) JoinTeam(ctx context.Context, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "JoinTeam", playerID.String(), batch, func(ctx context.Context, db bun.IDB) (playerResult, error) {
		return s.joinTeamLogic(ctx, db, batch, playerID, teamID)
	})
}

func (s *TournamentService) joinTeamLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, playerID, teamID uuid.UUID) (playerResult, error) {
	p, err := s.getPlayer(ctx, db, playerID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Player](err)
	}
	team, err := s.getTeam(ctx, db, teamID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Player](err)
	}
	if team.TournamentID != p.TournamentID {
		return fail[*tournamenttypes.Player](ErrTeamMismatch)
	}
	if !p.Role.CanJoinTeam() {
		return fail[*tournamenttypes.Player](ErrInvalidRole)
	}
	batch.SetTournament(p.TournamentID)

	t, err := s.lockTournament(ctx, db, p.TournamentID)
	if err != nil {
		return failOrAbort[*tournamenttypes.Player](err)
	}
	if !teamsOpen(t) {
		return fail[*tournamenttypes.Player](ErrWrongPhase)
	}
	if t.DraftInProgress() {
		return fail[*tournamenttypes.Player](ErrDraftInProgress)
	}
	if p.IsOnTeam(team.ID) {
		return ok(p)
	}

	if p.TeamID != nil {
		s.cleanupVotes(ctx, db, batch, *p.TeamID, p.ID)
	}
	updated, err := s.repo.AssignTeam(ctx, db, p.ID, &team.ID)
	if err != nil {
		return abort[*tournamenttypes.Player](err)
	}
	batch.Update(changefeed.TablePlayers, p, updated)

	players, err := s.repo.ListPlayers(ctx, db, t.ID)
	if err != nil {
		return abort[*tournamenttypes.Player](err)
	}
	if _, err := s.maybeBeginShuffle(ctx, db, batch, t, players); err != nil {
		return abort[*tournamenttypes.Player](err)
	}
	return ok(updated)
}

// LeaveTeam takes a player off their team, dropping their leadership and related votes.
func (s *TournamentService) LeaveTeam(ctx context.Context, playerID uuid.UUID) (*tournamenttypes.Player, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "LeaveTeam", playerID.String(), batch, func(ctx context.Context, db bun.IDB) (playerResult, error) {
		p, err := s.getPlayer(ctx, db, playerID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Player](err)
		}
		if p.TeamID == nil {
			return ok(p)
		}
		batch.SetTournament(p.TournamentID)

		t, err := s.lockTournament(ctx, db, p.TournamentID)
		if err != nil {
			return failOrAbort[*tournamenttypes.Player](err)
		}
		if !teamsOpen(t) {
			return fail[*tournamenttypes.Player](ErrWrongPhase)
		}
		if t.DraftInProgress() {
			return fail[*tournamenttypes.Player](ErrDraftInProgress)
		}

		s.cleanupVotes(ctx, db, batch, *p.TeamID, p.ID)
		updated, err := s.repo.AssignTeam(ctx, db, p.ID, nil)
		if err != nil {
			return abort[*tournamenttypes.Player](err)
		}
		batch.Update(changefeed.TablePlayers, p, updated)
		return ok(updated)
	})
}

// VoteForLeader records a vote and crowns the candidate once a strict majority of the team
// agrees.
func (s *TournamentService) VoteForLeader(ctx context.Context, teamID, voterID, candidateID uuid.UUID) (*tournamenttypes.VoteOutcome, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "VoteForLeader", teamID.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[*tournamenttypes.VoteOutcome, error], error) {
		return s.voteForLeaderLogic(ctx, db, batch, teamID, voterID, candidateID)
	})
}

func (s *TournamentService) voteForLeaderLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, teamID, voterID, candidateID uuid.UUID) (results.OperationResult[*tournamenttypes.VoteOutcome, error], error) {
	team, err := s.getTeam(ctx, db, teamID)
	if err != nil {
		return failOrAbort[*tournamenttypes.VoteOutcome](err)
	}
	batch.SetTournament(team.TournamentID)

	t, err := s.lockTournament(ctx, db, team.TournamentID)
	if err != nil {
		return failOrAbort[*tournamenttypes.VoteOutcome](err)
	}
	if !teamsOpen(t) {
		return fail[*tournamenttypes.VoteOutcome](ErrWrongPhase)
	}

	members, err := s.repo.ListTeamMembers(ctx, db, teamID)
	if err != nil {
		return abort[*tournamenttypes.VoteOutcome](err)
	}
	memberIDs := make([]uuid.UUID, 0, len(members))
	var voter, candidate *tournamenttypes.Player
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
		if m.ID == voterID {
			voter = m
		}
		if m.ID == candidateID {
			candidate = m
		}
	}
	if voter == nil || candidate == nil {
		return fail[*tournamenttypes.VoteOutcome](ErrNotTeamMember)
	}

	vote := &tournamenttypes.LeaderVote{TeamID: teamID, VoterID: voterID, CandidateID: candidateID}
	if err := s.repo.UpsertVote(ctx, db, vote); err != nil {
		return abort[*tournamenttypes.VoteOutcome](err)
	}
	batch.Insert(changefeed.TableLeaderVotes, vote)
	outcome := &tournamenttypes.VoteOutcome{Vote: vote}

	votes, err := s.repo.ListTeamVotes(ctx, db, teamID)
	if err != nil {
		return abort[*tournamenttypes.VoteOutcome](err)
	}
	winner, found := tournamentdomain.TallyLeader(votes, memberIDs)
	if !found {
		return ok(outcome)
	}
	outcome.LeaderID = &winner

	for _, m := range members {
		if m.ID == winner && m.IsLeader {
			return ok(outcome)
		}
	}

	cleared, err := s.repo.ClearTeamLeaders(ctx, db, teamID)
	if err != nil {
		return abort[*tournamenttypes.VoteOutcome](err)
	}
	for _, c := range cleared {
		batch.Update(changefeed.TablePlayers, nil, c)
	}
	leader, err := s.repo.SetLeader(ctx, db, winner)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrConflict) {
			return abort[*tournamenttypes.VoteOutcome](ErrConcurrentUpdate)
		}
		return abort[*tournamenttypes.VoteOutcome](err)
	}
	batch.Update(changefeed.TablePlayers, nil, leader)
	return ok(outcome)
}
