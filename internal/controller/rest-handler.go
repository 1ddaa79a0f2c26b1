package controller

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/groovesync/server/pkg/rest"
)

func (c controller) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("server is alive and ready for streaming"))
}

type playerLinkQuery struct {
	ChatId string `json:"chat_id" validate:"required"`
}

// handlePlayerLink builds the player url the chat-bot layer embeds in
// its reply; the player client uses the chat id for both the relay join
// and the media fetch.
func (c controller) handlePlayerLink(w http.ResponseWriter, r *http.Request) {
	query := playerLinkQuery{ChatId: r.URL.Query().Get("chat-id")}

	if validationErrors, ok := c.validate.Validate(query); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	playerLink := fmt.Sprintf("%s?chat_id=%s", c.playerURL, url.QueryEscape(query.ChatId))

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]string{
		"url": playerLink,
	}})
}
