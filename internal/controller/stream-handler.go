package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/groovesync/server/internal/service/media"
)

func (c controller) setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Range, Content-Type, Accept")
	w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD")
}

// handleStreamAudio serves the audio asset for GET and HEAD, honoring
// an optional Range header. A malformed Range degrades to the full
// asset instead of failing the request; clients with broken range
// support still get playable audio.
func (c controller) handleStreamAudio(w http.ResponseWriter, r *http.Request) {
	c.setStreamHeaders(w)

	asset, err := c.mediaService.Stat()
	if err != nil {
		if errors.Is(err, media.ErrAssetNotFound) {
			c.logger.WarnContext(r.Context(), "audio asset not found", "error", err)
			http.Error(w, "audio asset not found", http.StatusNotFound)
			return
		}

		c.logger.ErrorContext(r.Context(), "failed to stat audio asset", "error", err)
		http.Error(w, "internal server error during streaming", http.StatusInternalServerError)
		return
	}

	byteRange, ranged, err := c.mediaService.ResolveRange(r.Header.Get("Range"), asset.Size)
	if err != nil {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", asset.Size))
		http.Error(w, "requested range not satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return
	}

	w.Header().Set("Content-Type", asset.ContentType)

	if !ranged {
		c.serveFull(w, r, asset)
		return
	}

	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", byteRange.Start, byteRange.End, asset.Size))
	w.Header().Set("Content-Length", strconv.FormatInt(byteRange.Length(), 10))

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusPartialContent)
		return
	}

	// The slice is read in full before any status is written: a failed
	// read yields a 500, never a truncated 206 body.
	data, err := c.mediaService.ReadRange(byteRange)
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to read byte range", "error", err)
		http.Error(w, "internal server error during streaming", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusPartialContent)
	if _, err := w.Write(data); err != nil {
		c.logger.DebugContext(r.Context(), "failed to write response body", "error", err)
	}
}

func (c controller) serveFull(w http.ResponseWriter, r *http.Request, asset media.Asset) {
	w.Header().Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := c.mediaService.ServeFull(w); err != nil {
		c.logger.ErrorContext(r.Context(), "failed streaming full asset", "error", err)
	}
}

func (c controller) handleStreamAudioOptions(w http.ResponseWriter, r *http.Request) {
	c.setStreamHeaders(w)
	w.Header().Set("Access-Control-Max-Age", "3600")
	w.WriteHeader(http.StatusNoContent)
}
