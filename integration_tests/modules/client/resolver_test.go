package client_integration_tests

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Black-And-White-Club/party-bracket/integration_tests/testutils"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/client"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_RestoresDeviceSession(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))
	testutils.StartServer(t, env)

	ctx, cancel := context.WithTimeout(env.Ctx, 30*time.Second)
	defer cancel()

	device, err := client.LoadDeviceFile(filepath.Join(t.TempDir(), "device.yaml"))
	require.NoError(t, err)

	backend := client.NewNATSBackend(env.NatsConn)
	var session *tournamenttypes.Session
	require.NoError(t, backend.Request(ctx, tournamentevents.CreateTournamentRequestedV1, tournamentevents.CreateTournamentRequestedPayloadV1{
		Name:        testutils.TournamentName(),
		RoomCode:    testutils.RoomCode(),
		NumGames:    2,
		RefereeName: testutils.PlayerName(),
		Identity:    device.Identity(),
	}, &session))
	require.NotNil(t, session)

	feed := changefeed.NewFeed(changefeed.NewNATSTransport(env.NatsConn))
	defer feed.Close()

	store := client.NewStore(env.Obs.Logger)
	feedSync := client.NewFeedSync(feed, store, backend, env.Obs.Logger)
	defer feedSync.Close()

	resolver := client.NewResolver(backend, store, feedSync, 0, env.Obs.Logger)
	res := resolver.Resolve(ctx, device.Identity(), client.ResolveOptions{CurrentPath: "/"})

	require.NoError(t, res.Err)
	assert.Equal(t, client.ResolveReady, res.State)
	assert.Equal(t, "/lobby", res.Redirect)
	assert.True(t, feedSync.FeedOpen(session.Tournament.ID))

	st := store.State()
	require.NotNil(t, st.Player)
	assert.Equal(t, session.Player.ID, st.Player.ID)
	assert.Len(t, st.Players, 1)

	var joined *tournamenttypes.Session
	require.NoError(t, backend.Request(ctx, tournamentevents.JoinTournamentRequestedV1, tournamentevents.JoinTournamentRequestedPayloadV1{
		RoomCode: session.Tournament.RoomCode,
		Name:     testutils.PlayerName(),
		Identity: testutils.DeviceIdentity(),
		Role:     tournamenttypes.RolePlayer,
	}, &joined))

	assert.Eventually(t, func() bool {
		return len(store.State().Players) == 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestResolver_ExpiredWithoutSession(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))
	testutils.StartServer(t, env)

	ctx, cancel := context.WithTimeout(env.Ctx, 15*time.Second)
	defer cancel()

	feed := changefeed.NewFeed(changefeed.NewNATSTransport(env.NatsConn))
	defer feed.Close()
	backend := client.NewNATSBackend(env.NatsConn)
	store := client.NewStore(env.Obs.Logger)
	feedSync := client.NewFeedSync(feed, store, backend, env.Obs.Logger)
	defer feedSync.Close()

	resolver := client.NewResolver(backend, store, feedSync, 0, env.Obs.Logger)
	res := resolver.Resolve(ctx, testutils.DeviceIdentity(), client.ResolveOptions{CurrentPath: "/"})

	assert.Equal(t, client.ResolveExpired, res.State)
	assert.Empty(t, res.Redirect)
	assert.False(t, store.State().HasLiveSession())
}
