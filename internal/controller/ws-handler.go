package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/groovesync/server/internal/service/relay"
	"github.com/groovesync/server/pkg/wsrouter"
)

// ChatId accepts both the string and the numeric JSON form of a chat
// identifier and canonicalizes it to text, so "42" and 42 land in the
// same room.
type ChatId string

func (id *ChatId) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ChatId(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ChatId(n.String())

	return nil
}

func (id ChatId) String() string {
	return string(id)
}

type EmptyInput struct{}

func (c controller) handleAlive(_ context.Context, _ *wsrouter.Conn, _ EmptyInput) error {
	return nil
}

type JoinInput struct {
	ChatId ChatId `json:"chat_id"`
}

func (c controller) handleJoin(ctx context.Context, conn *wsrouter.Conn, input JoinInput) error {
	sessionId := c.getSessionIdFromCtx(ctx)

	joinResp, err := c.relayService.JoinRoom(ctx, &relay.JoinRoomParams{
		SessionId: sessionId,
		RoomId:    input.ChatId.String(),
	})
	if err != nil {
		if errors.Is(err, relay.ErrEmptyRoomId) {
			c.logger.InfoContext(ctx, "join dropped: empty chat id")
			return nil
		}

		return fmt.Errorf("failed to join room: %w", err)
	}

	if joinResp.Rejoined {
		return nil
	}

	c.broadcast(ctx, joinResp.Conns, &Output{
		Type: "status_message",
		Payload: map[string]string{
			"message": "a member joined the room",
		},
	})

	if joinResp.State != nil {
		if err := c.writeToConn(ctx, conn, &Output{
			Type:    "sync_state",
			Payload: joinResp.State,
		}); err != nil {
			return fmt.Errorf("failed to write to conn: %w", err)
		}
	}

	return nil
}

type ControlInput struct {
	ChatId  ChatId  `json:"chat_id" validate:"required"`
	Action  string  `json:"action" validate:"required,oneof=play pause seek"`
	Time    float64 `json:"time" validate:"gte=0"`
	VideoId string  `json:"video_id"`
}

func (c controller) handleControl(ctx context.Context, _ *wsrouter.Conn, input ControlInput) error {
	sessionId := c.getSessionIdFromCtx(ctx)

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(ctx, "control dropped", "errors", validationErrors)
		return nil
	}

	controlResp, err := c.relayService.Control(ctx, &relay.ControlParams{
		SessionId: sessionId,
		RoomId:    input.ChatId.String(),
		Action:    input.Action,
		Time:      input.Time,
		VideoId:   input.VideoId,
	})
	if err != nil {
		if errors.Is(err, relay.ErrEmptyRoomId) || errors.Is(err, relay.ErrEmptyAction) {
			c.logger.InfoContext(ctx, "control dropped", "error", err)
			return nil
		}

		return fmt.Errorf("failed to relay control event: %w", err)
	}

	c.broadcast(ctx, controlResp.Conns, &Output{
		Type:    "sync_control",
		Payload: controlResp.State,
	})

	return nil
}
