package relay

import (
	"context"
	"fmt"

	"github.com/groovesync/server/internal/repository/room"
	"github.com/groovesync/server/pkg/wsrouter"
)

type ControlParams struct {
	SessionId string
	RoomId    string
	Action    string
	Time      float64
	VideoId   string
}

type ControlResponse struct {
	// Conns are the other current members of the room; the sender never
	// receives its own event back.
	Conns []*wsrouter.Conn
	State room.ControlState
}

// Control records the event as the room's last control state and
// returns the connections it must be relayed to.
func (s service) Control(ctx context.Context, params *ControlParams) (ControlResponse, error) {
	if params.RoomId == "" {
		return ControlResponse{}, ErrEmptyRoomId
	}
	if params.Action == "" {
		return ControlResponse{}, ErrEmptyAction
	}

	state := room.ControlState{
		Action:  params.Action,
		Time:    params.Time,
		VideoId: params.VideoId,
	}

	if err := s.roomRepo.SetControlState(ctx, &room.SetControlStateParams{
		RoomId: params.RoomId,
		State:  state,
	}); err != nil {
		return ControlResponse{}, fmt.Errorf("failed to set control state: %w", err)
	}

	conns, err := s.getRoomConns(ctx, params.RoomId, params.SessionId)
	if err != nil {
		return ControlResponse{}, fmt.Errorf("failed to get room conns: %w", err)
	}

	return ControlResponse{
		Conns: conns,
		State: state,
	}, nil
}
