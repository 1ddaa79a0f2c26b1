package controller

import (
	"context"
	"strconv"
	"time"

	"github.com/groovesync/server/pkg/wsrouter"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (c controller) generateTimeBasedId() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 36) + "-" + c.generator.GenerateRandomString(6)
}

// broadcast writes out to every conn. A failed write to one recipient
// never aborts delivery to the rest; failures are logged and skipped.
func (c controller) broadcast(ctx context.Context, conns []*wsrouter.Conn, out *Output) {
	for _, conn := range conns {
		if err := conn.WriteJSON(out); err != nil {
			c.logger.InfoContext(ctx, "failed to write to conn", "error", err)
		}
	}
}

func (c controller) writeToConn(ctx context.Context, conn *wsrouter.Conn, out *Output) error {
	return conn.WriteJSON(out)
}
