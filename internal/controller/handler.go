package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/groovesync/server/internal/service/relay"
	"github.com/groovesync/server/pkg/ctxlogger"
	"github.com/groovesync/server/pkg/wsrouter"
)

func (c controller) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	conn := wsrouter.NewConn(ws)

	connectResp, err := c.relayService.ConnectSession(r.Context(), &relay.ConnectSessionParams{
		Conn: conn,
	})
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to connect session", "error", err)
		conn.Close()
		return
	}
	defer c.disconnect(r.Context(), conn)

	ctx := context.WithValue(r.Context(), sessionIdCtxKey, connectResp.SessionId)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("session_id", connectResp.SessionId))

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "websocket connection closed", "error", err)
	}
}

func (c controller) disconnect(ctx context.Context, conn *wsrouter.Conn) {
	disconnectResp, err := c.relayService.DisconnectSession(ctx, &relay.DisconnectSessionParams{
		Conn: conn,
	})
	if err != nil {
		c.logger.InfoContext(ctx, "failed to disconnect session", "error", err)
		return
	}

	c.logger.InfoContext(ctx, "session disconnected",
		"session_id", disconnectResp.SessionId,
		"room_id", disconnectResp.RoomId,
	)
}
