package controller

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	conninmemory "github.com/groovesync/server/internal/repository/conn/inmemory"
	roomredis "github.com/groovesync/server/internal/repository/room/redis"
	"github.com/groovesync/server/internal/service/media"
	"github.com/groovesync/server/internal/service/relay"
)

func newTestMux(t *testing.T, mediaCfg *media.Config) http.Handler {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	logger := slog.Default()
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	roomRepo := roomredis.NewRepo(rc, time.Hour, logger)
	connRepo := conninmemory.NewRepo(logger)
	relayService := relay.NewService(roomRepo, connRepo, logger)
	mediaService := media.NewService(mediaCfg, logger)

	c := NewController(relayService, mediaService, &Config{
		PlayerURL: "http://localhost:3000",
	}, logger)

	return c.GetMux()
}

func writeAsset(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.mp3")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

func assetContent(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}
