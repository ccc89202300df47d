package tournamentservice

import (
	"context"
	"errors"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/Black-And-White-Club/party-bracket/pkg/results"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SweepStaleLobbies deletes lobbies older than olderThan that hold at most one player. A zero
// window uses the service default.
func (s *TournamentService) SweepStaleLobbies(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = s.staleAfter
	}
	batch := changefeed.NewBatch(uuid.Nil)
	return execute(s, ctx, "SweepStaleLobbies", olderThan.String(), batch, func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		now := s.now()
		lobbies, err := s.repo.ListLobbiesCreatedBefore(ctx, db, now.Add(-olderThan))
		if err != nil {
			return abort[int](err)
		}

		swept := 0
		for _, l := range lobbies {
			if !tournamentdomain.IsStaleLobby(l.Tournament, l.PlayerCount, now, olderThan) {
				continue
			}
			deleted, err := s.repo.DeleteTournament(ctx, db, l.Tournament.ID, tournamenttypes.StatusLobby)
			if errors.Is(err, tournamentdb.ErrConflict) {
				continue
			}
			if err != nil {
				return abort[int](err)
			}
			s.logger.InfoContext(ctx, "Swept stale lobby",
				attr.ExtractCorrelationID(ctx),
				attr.UUID("tournament_id", deleted.ID),
				attr.String("room_code", deleted.RoomCode),
			)
			batch.DeleteIn(deleted.ID, changefeed.TableTournaments, deleted)
			swept++
		}
		return ok(swept)
	})
}
