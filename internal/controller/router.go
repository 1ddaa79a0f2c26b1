package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)

	r.Get("/", c.handleHealth)
	r.Get("/api/player-link", c.handlePlayerLink)

	r.Get("/stream-audio", c.handleStreamAudio)
	r.Head("/stream-audio", c.handleStreamAudio)
	r.Options("/stream-audio", c.handleStreamAudioOptions)

	r.HandleFunc("/ws", c.handleWS)

	return r
}
