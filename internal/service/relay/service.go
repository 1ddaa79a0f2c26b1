package relay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/groovesync/server/internal/repository/room"
	"github.com/groovesync/server/pkg/wsrouter"
)

var (
	ErrEmptyRoomId = errors.New("empty room id")
	ErrEmptyAction = errors.New("empty action")
)

type iRoomRepo interface {
	AddMember(context.Context, *room.AddMemberParams) error
	RemoveMember(context.Context, *room.RemoveMemberParams) error
	GetMemberIds(ctx context.Context, roomId string) ([]string, error)
	SetSessionRoom(ctx context.Context, sessionId, roomId string) error
	GetSessionRoom(ctx context.Context, sessionId string) (string, error)
	RemoveSessionRoom(ctx context.Context, sessionId string) error
	SetControlState(context.Context, *room.SetControlStateParams) error
	GetControlState(ctx context.Context, roomId string) (room.ControlState, error)
}

type iConnRepo interface {
	Add(*wsrouter.Conn, string) error
	RemoveByConn(*wsrouter.Conn) (string, error)
	GetConn(sessionId string) (*wsrouter.Conn, error)
}

type service struct {
	roomRepo iRoomRepo
	connRepo iConnRepo
	logger   *slog.Logger
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, logger *slog.Logger) *service {
	return &service{
		roomRepo: roomRepo,
		connRepo: connRepo,
		logger:   logger,
	}
}
