package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovesync/server/internal/repository/room"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := redisclient.NewClient(&redisclient.Options{Addr: s.Addr()})

	return NewRepo(rc, time.Hour, slog.Default()), s
}

func TestAddMemberIsIdempotent(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	params := &room.AddMemberParams{RoomId: "42", SessionId: "session-1"}
	require.NoError(t, r.AddMember(ctx, params))
	require.NoError(t, r.AddMember(ctx, params))

	memberIds, err := r.GetMemberIds(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"session-1"}, memberIds)
}

func TestRemoveMemberDeletesEmptyRoom(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{RoomId: "42", SessionId: "session-1"}))
	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{RoomId: "42", SessionId: "session-2"}))
	require.NoError(t, r.SetControlState(ctx, &room.SetControlStateParams{
		RoomId: "42",
		State:  room.ControlState{Action: "play", Time: 1},
	}))

	require.NoError(t, r.RemoveMember(ctx, &room.RemoveMemberParams{RoomId: "42", SessionId: "session-1"}))
	assert.True(t, s.Exists("room:42:members"), "room with members left must survive")

	require.NoError(t, r.RemoveMember(ctx, &room.RemoveMemberParams{RoomId: "42", SessionId: "session-2"}))
	assert.False(t, s.Exists("room:42:members"))
	assert.False(t, s.Exists("room:42:state"))
}

func TestSessionRoom(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	roomId, err := r.GetSessionRoom(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, roomId, "unjoined session has no room")

	require.NoError(t, r.SetSessionRoom(ctx, "session-1", "42"))

	roomId, err = r.GetSessionRoom(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "42", roomId)

	require.NoError(t, r.RemoveSessionRoom(ctx, "session-1"))

	roomId, err = r.GetSessionRoom(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, roomId)
}

func TestControlStateRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.GetControlState(ctx, "42")
	assert.ErrorIs(t, err, room.ErrNoState)

	state := room.ControlState{Action: "seek", Time: 37.5, VideoId: "abc123xyz00"}
	require.NoError(t, r.SetControlState(ctx, &room.SetControlStateParams{RoomId: "42", State: state}))

	got, err := r.GetControlState(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestRoomKeysCarryTTL(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{RoomId: "42", SessionId: "session-1"}))
	require.NoError(t, r.SetControlState(ctx, &room.SetControlStateParams{
		RoomId: "42",
		State:  room.ControlState{Action: "play"},
	}))

	assert.Greater(t, s.TTL("room:42:members"), time.Duration(0))
	assert.Greater(t, s.TTL("room:42:state"), time.Duration(0))
}
