package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	minGames = 1
	maxGames = 20
)

type sessionResult = results.OperationResult[*tournamenttypes.Session, error]

// CreateTournament opens a lobby and seats the caller as referee.
func (s *TournamentService) CreateTournament(ctx context.Context, name, roomCode string, numGames int, refereeName string, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "CreateTournament", roomCode, batch, func(ctx context.Context, db bun.IDB) (sessionResult, error) {
		return s.createTournamentLogic(ctx, db, batch, name, roomCode, numGames, refereeName, identity)
	})
}

func (s *TournamentService) createTournamentLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, name, roomCode string, numGames int, refereeName string, identity tournamenttypes.Identity) (sessionResult, error) {
	name, refereeName = strings.TrimSpace(name), strings.TrimSpace(refereeName)
	if name == "" || refereeName == "" {
		return fail[*tournamenttypes.Session](ErrInvalidName)
	}
	code, err := tournamenttypes.NormalizeRoomCode(roomCode)
	if err != nil {
		return fail[*tournamenttypes.Session](err)
	}
	if numGames < minGames || numGames > maxGames {
		return fail[*tournamenttypes.Session](ErrInvalidGameCount)
	}
	if err := identity.Validate(); err != nil {
		return fail[*tournamenttypes.Session](err)
	}

	now := s.now()

	// A referee refreshing the create page abandons the lobby they already opened.
	own, err := s.repo.ListRefereeLobbies(ctx, db, identity)
	if err != nil {
		return abort[*tournamenttypes.Session](err)
	}
	for _, t := range own {
		deleted, err := s.repo.DeleteTournament(ctx, db, t.ID, tournamenttypes.StatusLobby)
		if errors.Is(err, tournamentdb.ErrConflict) {
			continue
		}
		if err != nil {
			return abort[*tournamenttypes.Session](err)
		}
		batch.DeleteIn(deleted.ID, changefeed.TableTournaments, deleted)
	}

	holder, err := s.repo.GetLiveByRoomCode(ctx, db, code)
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound):
	case err != nil:
		return abort[*tournamenttypes.Session](err)
	case tournamentdomain.RoomCodeReclaimable(holder, now, s.staleAfter):
		deleted, err := s.repo.DeleteTournament(ctx, db, holder.ID, tournamenttypes.StatusLobby)
		if errors.Is(err, tournamentdb.ErrConflict) {
			return fail[*tournamenttypes.Session](ErrRoomCodeTaken)
		}
		if err != nil {
			return abort[*tournamenttypes.Session](err)
		}
		s.logger.InfoContext(ctx, "Reclaimed stale room code",
			attr.ExtractCorrelationID(ctx),
			attr.String("room_code", code),
			attr.UUID("stale_tournament_id", deleted.ID),
		)
		batch.DeleteIn(deleted.ID, changefeed.TableTournaments, deleted)
	default:
		return fail[*tournamenttypes.Session](ErrRoomCodeTaken)
	}

	t := &tournamenttypes.Tournament{
		Name:     name,
		RoomCode: code,
		Status:   tournamenttypes.StatusLobby,
		NumGames: numGames,
	}
	if err := s.repo.CreateTournament(ctx, db, t); err != nil {
		if errors.Is(err, tournamentdb.ErrUniqueViolation) {
			return fail[*tournamenttypes.Session](ErrRoomCodeTaken)
		}
		return abort[*tournamenttypes.Session](err)
	}
	batch.SetTournament(t.ID)
	batch.Insert(changefeed.TableTournaments, t)

	referee := &tournamenttypes.Player{
		TournamentID: t.ID,
		Name:         refereeName,
		Role:         tournamenttypes.RoleReferee,
	}
	referee.SetIdentity(identity)
	inserted, err := s.repo.CreatePlayer(ctx, db, referee)
	if err != nil {
		return abort[*tournamenttypes.Session](err)
	}
	if !inserted {
		return abort[*tournamenttypes.Session](fmt.Errorf("referee seat for %s already taken", t.ID))
	}
	batch.Insert(changefeed.TablePlayers, referee)

	updated, err := s.repo.SetReferee(ctx, db, t.ID, referee.ID)
	if err != nil {
		return abort[*tournamenttypes.Session](err)
	}
	batch.Update(changefeed.TableTournaments, t, updated)

	return ok(&tournamenttypes.Session{Tournament: updated, Player: referee})
}

// JoinTournament seats a player or spectator in a lobby. Joining again with the same identity
// returns the existing seat.
func (s *TournamentService) JoinTournament(ctx context.Context, roomCode, name string, identity tournamenttypes.Identity, role tournamenttypes.Role) (*tournamenttypes.Session, error) {
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "JoinTournament", roomCode, batch, func(ctx context.Context, db bun.IDB) (sessionResult, error) {
		return s.joinTournamentLogic(ctx, db, batch, roomCode, name, identity, role)
	})
}

func (s *TournamentService) joinTournamentLogic(ctx context.Context, db bun.IDB, batch *changefeed.Batch, roomCode, name string, identity tournamenttypes.Identity, role tournamenttypes.Role) (sessionResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fail[*tournamenttypes.Session](ErrInvalidName)
	}
	code, err := tournamenttypes.NormalizeRoomCode(roomCode)
	if err != nil {
		return fail[*tournamenttypes.Session](err)
	}
	if err := identity.Validate(); err != nil {
		return fail[*tournamenttypes.Session](err)
	}
	if role == "" {
		role = tournamenttypes.RolePlayer
	}
	if !role.IsValid() || role == tournamenttypes.RoleReferee {
		return fail[*tournamenttypes.Session](ErrInvalidRole)
	}

	t, err := s.repo.GetLiveByRoomCode(ctx, db, code)
	if errors.Is(err, tournamentdb.ErrNotFound) {
		return fail[*tournamenttypes.Session](ErrTournamentNotFound)
	}
	if err != nil {
		return abort[*tournamenttypes.Session](err)
	}
	if t.Status != tournamenttypes.StatusLobby {
		return fail[*tournamenttypes.Session](ErrTournamentStarted)
	}
	batch.SetTournament(t.ID)

	existing, err := s.repo.GetPlayerByIdentity(ctx, db, t.ID, identity)
	if err == nil {
		return ok(&tournamenttypes.Session{Tournament: t, Player: existing})
	}
	if !errors.Is(err, tournamentdb.ErrNotFound) {
		return abort[*tournamenttypes.Session](err)
	}

	p := &tournamenttypes.Player{
		TournamentID: t.ID,
		Name:         name,
		Role:         role,
	}
	p.SetIdentity(identity)
	inserted, err := s.repo.CreatePlayer(ctx, db, p)
	if err != nil {
		return abort[*tournamenttypes.Session](err)
	}
	if !inserted {
		// a concurrent join with the same identity won the insert
		p, err = s.repo.GetPlayerByIdentity(ctx, db, t.ID, identity)
		if err != nil {
			return abort[*tournamenttypes.Session](err)
		}
		return ok(&tournamenttypes.Session{Tournament: t, Player: p})
	}
	batch.Insert(changefeed.TablePlayers, p)

	return ok(&tournamenttypes.Session{Tournament: t, Player: p})
}

// ReconnectPlayer resolves the identity's newest seat in a tournament that is not completed.
func (s *TournamentService) ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	return execute(s, ctx, "ReconnectPlayer", identity.String(), nil, func(ctx context.Context, db bun.IDB) (sessionResult, error) {
		if err := identity.Validate(); err != nil {
			return fail[*tournamenttypes.Session](err)
		}
		sessions, err := s.repo.RecentSessions(ctx, db, identity, reconnectScanLimit)
		if err != nil {
			return abort[*tournamenttypes.Session](err)
		}
		for _, session := range sessions {
			if session.Tournament.Status != tournamenttypes.StatusCompleted {
				return ok(&tournamenttypes.Session{Tournament: session.Tournament, Player: session.Player})
			}
		}
		return ok[*tournamenttypes.Session](nil)
	})
}

// CancelTournament deletes a lobby on the referee's request.
func (s *TournamentService) CancelTournament(ctx context.Context, tournamentID, actorID uuid.UUID) error {
	batch := changefeed.NewBatch(tournamentID)
	_, err := execute(s, ctx, "CancelTournament", tournamentID.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		t, err := s.lockTournament(ctx, db, tournamentID)
		if err != nil {
			return failOrAbort[bool](err)
		}
		if !isReferee(t, actorID) {
			return fail[bool](ErrNotReferee)
		}
		if t.Status != tournamenttypes.StatusLobby {
			return fail[bool](ErrWrongPhase)
		}
		deleted, err := s.repo.DeleteTournament(ctx, db, t.ID, tournamenttypes.StatusLobby)
		if errors.Is(err, tournamentdb.ErrConflict) {
			return fail[bool](ErrWrongPhase)
		}
		if err != nil {
			return abort[bool](err)
		}
		batch.Delete(changefeed.TableTournaments, deleted)
		return ok(true)
	})
	return err
}
