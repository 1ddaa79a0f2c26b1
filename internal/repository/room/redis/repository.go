package redis

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc      *redis.Client
	roomExp time.Duration
	logger  *slog.Logger
}

// NewRepo returns a room repository backed by redis. roomExp bounds the
// lifetime of idle room keys; every write refreshes it.
func NewRepo(rc *redis.Client, roomExp time.Duration, logger *slog.Logger) *repo {
	return &repo{
		rc:      rc,
		roomExp: roomExp,
		logger:  logger,
	}
}

func (r repo) getMemberListKey(roomId string) string {
	return "room:" + roomId + ":members"
}

func (r repo) getStateKey(roomId string) string {
	return "room:" + roomId + ":state"
}

func (r repo) getSessionRoomKey(sessionId string) string {
	return "session:" + sessionId + ":room"
}
