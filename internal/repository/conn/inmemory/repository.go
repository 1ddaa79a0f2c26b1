package inmemory

import (
	"log/slog"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/groovesync/server/internal/repository/conn"
	"github.com/groovesync/server/pkg/wsrouter"
)

// repo is a bidirectional registry of live websocket connections and
// their session ids. It is the only in-process mutable state the relay
// keeps; room membership lives in redis.
type repo struct {
	connList map[*wsrouter.Conn]string
	idList   map[string]*wsrouter.Conn
	logger   *slog.Logger
	mu       sync.RWMutex
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		connList: make(map[*wsrouter.Conn]string),
		idList:   make(map[string]*wsrouter.Conn),
		logger:   logger,
	}
}

func (r *repo) Add(c *wsrouter.Conn, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connList[c] != "" || r.idList[sessionId] != nil {
		return conn.ErrAlreadyExists
	}

	r.connList[c] = sessionId
	r.idList[sessionId] = c

	return nil
}

// RemoveByConn unregisters the connection and returns the session id it
// was registered under.
func (r *repo) RemoveByConn(c *wsrouter.Conn) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionId, ok := r.connList[c]
	if !ok {
		return "", conn.ErrNotFound
	}

	delete(r.connList, c)
	delete(r.idList, sessionId)

	return sessionId, nil
}

func (r *repo) GetConn(sessionId string) (*wsrouter.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.idList[sessionId]
	if !ok {
		return nil, conn.ErrNotFound
	}

	return c, nil
}

func (r *repo) GetSessionId(c *wsrouter.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionId, ok := r.connList[c]
	if !ok {
		return "", conn.ErrNotFound
	}

	return sessionId, nil
}

// SessionIds snapshots the registered session ids.
func (r *repo) SessionIds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.idList)
}
