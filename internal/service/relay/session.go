package relay

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/groovesync/server/internal/repository/room"
	"github.com/groovesync/server/pkg/wsrouter"
)

type ConnectSessionParams struct {
	Conn *wsrouter.Conn
}

type ConnectSessionResponse struct {
	SessionId string
}

func (s service) ConnectSession(ctx context.Context, params *ConnectSessionParams) (ConnectSessionResponse, error) {
	sessionId := uuid.NewString()
	if err := s.connRepo.Add(params.Conn, sessionId); err != nil {
		return ConnectSessionResponse{}, fmt.Errorf("failed to register connection: %w", err)
	}

	return ConnectSessionResponse{SessionId: sessionId}, nil
}

type DisconnectSessionParams struct {
	Conn *wsrouter.Conn
}

type DisconnectSessionResponse struct {
	SessionId string
	RoomId    string
}

// DisconnectSession removes the connection from the registry and from
// whatever room it belonged to, so later broadcasts never target a dead
// connection.
func (s service) DisconnectSession(ctx context.Context, params *DisconnectSessionParams) (DisconnectSessionResponse, error) {
	sessionId, err := s.connRepo.RemoveByConn(params.Conn)
	if err != nil {
		return DisconnectSessionResponse{}, fmt.Errorf("failed to unregister connection: %w", err)
	}

	roomId, err := s.roomRepo.GetSessionRoom(ctx, sessionId)
	if err != nil {
		return DisconnectSessionResponse{}, fmt.Errorf("failed to get session room: %w", err)
	}

	if roomId != "" {
		if err := s.leaveRoom(ctx, sessionId, roomId); err != nil {
			return DisconnectSessionResponse{}, err
		}
	}

	return DisconnectSessionResponse{
		SessionId: sessionId,
		RoomId:    roomId,
	}, nil
}

func (s service) leaveRoom(ctx context.Context, sessionId, roomId string) error {
	if err := s.roomRepo.RemoveMember(ctx, &room.RemoveMemberParams{
		RoomId:    roomId,
		SessionId: sessionId,
	}); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := s.roomRepo.RemoveSessionRoom(ctx, sessionId); err != nil {
		return fmt.Errorf("failed to remove session room: %w", err)
	}

	return nil
}
