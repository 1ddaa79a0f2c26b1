package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/groovesync/server/internal/repository/room"
)

func (r repo) AddMember(ctx context.Context, params *room.AddMemberParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	memberListKey := r.getMemberListKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	pipe.SAdd(ctx, memberListKey, params.SessionId)
	pipe.Expire(ctx, memberListKey, r.roomExp)

	if err := r.executePipe(ctx, pipe); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}

// removeMemberScript drops a member and deletes the room keys when the
// set empties. It runs server-side so a concurrent join can never land
// between the cardinality check and the delete.
var removeMemberScript = redis.NewScript(`
redis.call('srem', KEYS[1], ARGV[1])
local left = redis.call('scard', KEYS[1])
if left == 0 then
	redis.call('del', KEYS[1], KEYS[2])
end
return left
`)

// RemoveMember drops the session from the room's member set and deletes
// the room keys when the set empties, so idle rooms do not accumulate.
func (r repo) RemoveMember(ctx context.Context, params *room.RemoveMemberParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	keys := []string{r.getMemberListKey(params.RoomId), r.getStateKey(params.RoomId)}
	if err := removeMemberScript.Run(ctx, r.rc, keys, params.SessionId).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}

func (r repo) GetMemberIds(ctx context.Context, roomId string) ([]string, error) {
	r.logger.DebugContext(ctx, "called", "room_id", roomId)
	memberIds, err := r.rc.SMembers(ctx, r.getMemberListKey(roomId)).Result()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return nil, err
	}

	return memberIds, nil
}

func (r repo) SetSessionRoom(ctx context.Context, sessionId, roomId string) error {
	r.logger.DebugContext(ctx, "called", "session_id", sessionId, "room_id", roomId)
	if err := r.rc.Set(ctx, r.getSessionRoomKey(sessionId), roomId, r.roomExp).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}

// GetSessionRoom returns an empty string when the session has not
// joined a room.
func (r repo) GetSessionRoom(ctx context.Context, sessionId string) (string, error) {
	r.logger.DebugContext(ctx, "called", "session_id", sessionId)
	roomId, err := r.rc.Get(ctx, r.getSessionRoomKey(sessionId)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}

		r.logger.DebugContext(ctx, "returned", "error", err)
		return "", err
	}

	return roomId, nil
}

func (r repo) RemoveSessionRoom(ctx context.Context, sessionId string) error {
	r.logger.DebugContext(ctx, "called", "session_id", sessionId)
	if err := r.rc.Del(ctx, r.getSessionRoomKey(sessionId)).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}
