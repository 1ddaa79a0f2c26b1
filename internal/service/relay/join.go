package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/groovesync/server/internal/repository/room"
	"github.com/groovesync/server/pkg/wsrouter"
)

type JoinRoomParams struct {
	SessionId string
	RoomId    string
}

type JoinRoomResponse struct {
	// Rejoined is true when the session was already a member of the
	// room; the caller skips the join notification then.
	Rejoined bool
	// LeftRoomId names the room the session was moved out of, if any.
	LeftRoomId string
	// Conns are the other current members to notify.
	Conns []*wsrouter.Conn
	// State is the room's last control state for the joiner, nil when
	// the room has none yet.
	State *room.ControlState
}

// JoinRoom adds the session to the room's member set. Joining replaces
// any previous room membership, and joining the same room twice is a
// no-op.
func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	if params.RoomId == "" {
		return JoinRoomResponse{}, ErrEmptyRoomId
	}

	prevRoomId, err := s.roomRepo.GetSessionRoom(ctx, params.SessionId)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to get session room: %w", err)
	}

	if prevRoomId == params.RoomId {
		return JoinRoomResponse{Rejoined: true}, nil
	}

	if prevRoomId != "" {
		if err := s.leaveRoom(ctx, params.SessionId, prevRoomId); err != nil {
			return JoinRoomResponse{}, err
		}
	}

	if err := s.roomRepo.AddMember(ctx, &room.AddMemberParams{
		RoomId:    params.RoomId,
		SessionId: params.SessionId,
	}); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to add member: %w", err)
	}

	if err := s.roomRepo.SetSessionRoom(ctx, params.SessionId, params.RoomId); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to set session room: %w", err)
	}

	conns, err := s.getRoomConns(ctx, params.RoomId, params.SessionId)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to get room conns: %w", err)
	}

	resp := JoinRoomResponse{
		LeftRoomId: prevRoomId,
		Conns:      conns,
	}

	state, err := s.roomRepo.GetControlState(ctx, params.RoomId)
	switch {
	case err == nil:
		resp.State = &state
	case !errors.Is(err, room.ErrNoState):
		return JoinRoomResponse{}, fmt.Errorf("failed to get control state: %w", err)
	}

	return resp, nil
}
