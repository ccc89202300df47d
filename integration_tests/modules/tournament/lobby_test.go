package tournament_integration_tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Black-And-White-Club/party-bracket/integration_tests/testutils"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	"github.com/Black-And-White-Club/party-bracket/pkg/client"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTimeout = 5 * time.Second

func createLobby(t *testing.T, ctx context.Context, backend *client.NATSBackend, referee tournamenttypes.Identity) *tournamenttypes.Session {
	t.Helper()
	var session *tournamenttypes.Session
	err := backend.Request(ctx, tournamentevents.CreateTournamentRequestedV1, tournamentevents.CreateTournamentRequestedPayloadV1{
		Name:        testutils.TournamentName(),
		RoomCode:    testutils.RoomCode(),
		NumGames:    3,
		RefereeName: testutils.PlayerName(),
		Identity:    referee,
	}, &session)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func TestLobby_CreateJoinReconnect(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))
	testutils.StartServer(t, env)

	ctx, cancel := context.WithTimeout(env.Ctx, 30*time.Second)
	defer cancel()

	backend := client.NewNATSBackend(env.NatsConn)
	referee := testutils.DeviceIdentity()
	created := createLobby(t, ctx, backend, referee)

	assert.Equal(t, tournamenttypes.StatusLobby, created.Tournament.Status)
	assert.Equal(t, tournamenttypes.RoleReferee, created.Player.Role)
	assert.Equal(t, referee, created.Player.Identity())

	feed := changefeed.NewFeed(changefeed.NewNATSTransport(env.NatsConn))
	defer feed.Close()
	sub, err := feed.Subscribe(eventbus.TournamentFeedTopic(created.Tournament.ID), changefeed.TablePlayers, changefeed.MaskAll, nil)
	require.NoError(t, err)

	player := testutils.DeviceIdentity()
	var joined *tournamenttypes.Session
	err = backend.Request(ctx, tournamentevents.JoinTournamentRequestedV1, tournamentevents.JoinTournamentRequestedPayloadV1{
		RoomCode: created.Tournament.RoomCode,
		Name:     testutils.PlayerName(),
		Identity: player,
		Role:     tournamenttypes.RolePlayer,
	}, &joined)
	require.NoError(t, err)
	require.NotNil(t, joined)
	assert.Equal(t, created.Tournament.ID, joined.Tournament.ID)

	select {
	case change := <-sub.Events():
		var row tournamenttypes.Player
		require.NoError(t, change.Decode(&row))
		assert.Equal(t, changefeed.EventInsert, change.Type)
		assert.Equal(t, joined.Player.ID, row.ID)
	case <-time.After(defaultTimeout):
		t.Fatal("timed out waiting for the player insert on the change feed")
	}

	reconnected, err := backend.ReconnectPlayer(ctx, player)
	require.NoError(t, err)
	require.NotNil(t, reconnected)
	assert.Equal(t, joined.Player.ID, reconnected.Player.ID)

	snap, err := backend.Snapshot(ctx, created.Tournament.ID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Players, 2)
}

func TestLobby_JoinUnknownRoomCode(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))
	testutils.StartServer(t, env)

	ctx, cancel := context.WithTimeout(env.Ctx, 15*time.Second)
	defer cancel()

	var joined *tournamenttypes.Session
	err := client.NewNATSBackend(env.NatsConn).Request(ctx, tournamentevents.JoinTournamentRequestedV1, tournamentevents.JoinTournamentRequestedPayloadV1{
		RoomCode: "ZZZZZ",
		Name:     testutils.PlayerName(),
		Identity: testutils.DeviceIdentity(),
		Role:     tournamenttypes.RolePlayer,
	}, &joined)

	var body *events.ErrorBody
	require.True(t, errors.As(err, &body), "expected an error reply, got %v", err)
	assert.Equal(t, "TOURNAMENT_NOT_FOUND", body.Code)
	assert.Nil(t, joined)
}

func TestLobby_ReconnectWithoutSession(t *testing.T) {
	env := testutils.GetTestEnv(t)
	require.NoError(t, env.ResetDatabase(env.Ctx))
	testutils.StartServer(t, env)

	ctx, cancel := context.WithTimeout(env.Ctx, 15*time.Second)
	defer cancel()

	session, err := client.NewNATSBackend(env.NatsConn).ReconnectPlayer(ctx, testutils.DeviceIdentity())
	require.NoError(t, err)
	assert.Nil(t, session)
}
