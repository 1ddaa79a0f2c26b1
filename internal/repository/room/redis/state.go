package redis

import (
	"context"

	"github.com/groovesync/server/internal/repository/room"
)

func (r repo) SetControlState(ctx context.Context, params *room.SetControlStateParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	stateKey := r.getStateKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, stateKey,
		"action", params.State.Action,
		"time", params.State.Time,
		"video_id", params.State.VideoId,
	)
	pipe.Expire(ctx, stateKey, r.roomExp)

	if err := r.executePipe(ctx, pipe); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}

func (r repo) GetControlState(ctx context.Context, roomId string) (room.ControlState, error) {
	r.logger.DebugContext(ctx, "called", "room_id", roomId)
	fields, err := r.rc.HGetAll(ctx, r.getStateKey(roomId)).Result()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.ControlState{}, err
	}

	if len(fields) == 0 {
		return room.ControlState{}, room.ErrNoState
	}

	return room.ControlState{
		Action:  fields["action"],
		Time:    r.fieldToFloat64(fields["time"]),
		VideoId: fields["video_id"],
	}, nil
}
