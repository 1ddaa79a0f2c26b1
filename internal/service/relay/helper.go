package relay

import (
	"context"

	"golang.org/x/exp/slices"

	"github.com/groovesync/server/pkg/wsrouter"
)

// getRoomConns resolves the live connections of a room's members,
// excluding excludeSessionId. Members whose connection is gone are
// skipped instead of aborting the fan-out: delivery to each recipient
// is independent.
func (s service) getRoomConns(ctx context.Context, roomId, excludeSessionId string) ([]*wsrouter.Conn, error) {
	memberIds, err := s.roomRepo.GetMemberIds(ctx, roomId)
	if err != nil {
		return nil, err
	}

	memberIds = slices.DeleteFunc(memberIds, func(id string) bool {
		return id == excludeSessionId
	})

	conns := make([]*wsrouter.Conn, 0, len(memberIds))
	for _, memberId := range memberIds {
		conn, err := s.connRepo.GetConn(memberId)
		if err != nil {
			s.logger.DebugContext(ctx, "skipping member without live connection",
				"session_id", memberId, "error", err)
			continue
		}

		conns = append(conns, conn)
	}

	return conns, nil
}
