package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovesync/server/internal/service/media"
)

func newStreamMux(t *testing.T, content []byte, chunkSize int64) http.Handler {
	t.Helper()

	return newTestMux(t, &media.Config{
		Path:        writeAsset(t, content),
		ContentType: "audio/mpeg",
		ChunkSize:   chunkSize,
	})
}

func TestStreamAudioFullContent(t *testing.T) {
	content := assetContent(4096)
	mux := newStreamMux(t, content, 1024)

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "4096", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestStreamAudioExplicitRange(t *testing.T) {
	content := assetContent(4096)
	mux := newStreamMux(t, content, 1024)

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	req.Header.Set("Range", "bytes=100-199")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 100-199/4096", w.Header().Get("Content-Range"))
	assert.Equal(t, "100", w.Header().Get("Content-Length"))
	assert.Equal(t, content[100:200], w.Body.Bytes())
}

func TestStreamAudioOpenEndedRangeIsCapped(t *testing.T) {
	content := assetContent(4096)
	mux := newStreamMux(t, content, 1024)

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	req.Header.Set("Range", "bytes=0-")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 0-1023/4096", w.Header().Get("Content-Range"))
	assert.Equal(t, content[:1024], w.Body.Bytes())
}

func TestStreamAudioMalformedRangeDegrades(t *testing.T) {
	content := assetContent(4096)
	mux := newStreamMux(t, content, 1024)

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	req.Header.Set("Range", "bytes=abc-def")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Range"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestStreamAudioUnsatisfiableRange(t *testing.T) {
	mux := newStreamMux(t, assetContent(4096), 1024)

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	req.Header.Set("Range", "bytes=4096-")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
	assert.Equal(t, "bytes */4096", w.Header().Get("Content-Range"))
}

func TestStreamAudioMissingAsset(t *testing.T) {
	mux := newTestMux(t, &media.Config{
		Path:        filepath.Join(t.TempDir(), "missing.mp3"),
		ContentType: "audio/mpeg",
		ChunkSize:   1024,
	})

	req := httptest.NewRequest(http.MethodGet, "/stream-audio", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamAudioHead(t *testing.T) {
	mux := newStreamMux(t, assetContent(4096), 1024)

	req := httptest.NewRequest(http.MethodHead, "/stream-audio", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4096", w.Header().Get("Content-Length"))
	assert.Empty(t, w.Body.Bytes())

	req = httptest.NewRequest(http.MethodHead, "/stream-audio", nil)
	req.Header.Set("Range", "bytes=0-99")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 0-99/4096", w.Header().Get("Content-Range"))
	assert.Empty(t, w.Body.Bytes())
}

func TestStreamAudioOptions(t *testing.T) {
	mux := newStreamMux(t, assetContent(64), 1024)

	req := httptest.NewRequest(http.MethodOptions, "/stream-audio", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Range, Content-Type, Accept", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}
