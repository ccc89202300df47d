package tournament_integration_tests

import (
	"context"
	"errors"
	"testing"
	"time"

	authservice "github.com/Black-And-White-Club/party-bracket/app/modules/auth/application"
	authguard "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/guard"
	authjwt "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/jwt"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/integration_tests/testutils"
	"github.com/Black-And-White-Club/party-bracket/pkg/client"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_SeatBoundCommands(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))

	repo := scoreboarddb.NewRepository(env.DB)
	auth := authservice.NewService(
		authjwt.NewProvider("integration-secret-at-least-32-chars!", "", ""),
		nil,
		repo,
		authservice.Config{DefaultTTL: time.Hour},
		env.Obs.Logger,
		env.Obs.Tracer("auth"),
	)
	guard := authguard.New(auth, repo, env.EventBus, env.Obs.Logger)
	testutils.StartServer(t, env, testutils.WithMiddleware(guard.Middleware))

	ctx, cancel := context.WithTimeout(env.Ctx, 30*time.Second)
	defer cancel()

	anon := client.NewNATSBackend(env.NatsConn)
	refereeIdentity := testutils.DeviceIdentity()
	created := createLobby(t, ctx, anon, refereeIdentity)

	playerIdentity := testutils.DeviceIdentity()
	var joined *tournamenttypes.Session
	require.NoError(t, anon.Request(ctx, tournamentevents.JoinTournamentRequestedV1, tournamentevents.JoinTournamentRequestedPayloadV1{
		RoomCode: created.Tournament.RoomCode,
		Name:     testutils.PlayerName(),
		Identity: playerIdentity,
		Role:     tournamenttypes.RolePlayer,
	}, &joined))

	refereeSession, err := auth.IssueSession(ctx, created.Player.ID, refereeIdentity)
	require.NoError(t, err)
	playerSession, err := auth.IssueSession(ctx, joined.Player.ID, playerIdentity)
	require.NoError(t, err)

	cancelAs := func(b *client.NATSBackend) error {
		var out map[string]bool
		return b.Request(ctx, tournamentevents.CancelTournamentRequestedV1, tournamentevents.TournamentActorPayloadV1{
			TournamentID: created.Tournament.ID,
			ActorID:      created.Player.ID,
		}, &out)
	}
	codeOf := func(err error) string {
		var body *events.ErrorBody
		if errors.As(err, &body) {
			return body.Code
		}
		return ""
	}

	assert.Equal(t, "UNAUTHORIZED", codeOf(cancelAs(anon)), "no session")
	assert.Equal(t, "FORBIDDEN", codeOf(cancelAs(anon.WithSession(playerSession.Token))), "player posing as referee")
	require.NoError(t, cancelAs(anon.WithSession(refereeSession.Token)))

	exists, err := env.DB.NewSelect().
		Model((*tournamenttypes.Tournament)(nil)).
		Where("id = ?", created.Tournament.ID).
		Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "referee's cancel should delete the lobby")
}
