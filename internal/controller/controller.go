package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/groovesync/server/internal/service/media"
	"github.com/groovesync/server/internal/service/relay"
	"github.com/groovesync/server/pkg/randstr"
	"github.com/groovesync/server/pkg/validator"
	"github.com/groovesync/server/pkg/wsrouter"
)

type iRelayService interface {
	ConnectSession(context.Context, *relay.ConnectSessionParams) (relay.ConnectSessionResponse, error)
	DisconnectSession(context.Context, *relay.DisconnectSessionParams) (relay.DisconnectSessionResponse, error)
	JoinRoom(context.Context, *relay.JoinRoomParams) (relay.JoinRoomResponse, error)
	Control(context.Context, *relay.ControlParams) (relay.ControlResponse, error)
}

type iMediaService interface {
	Stat() (media.Asset, error)
	ResolveRange(header string, size int64) (media.ByteRange, bool, error)
	ReadRange(media.ByteRange) ([]byte, error)
	ServeFull(io.Writer) (int64, error)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	// PlayerURL is the base url of the separately hosted player client,
	// used to build the link the chat-bot layer sends into a chat.
	PlayerURL string
}

type controller struct {
	relayService iRelayService
	mediaService iMediaService
	playerURL    string
	upgrader     websocket.Upgrader
	validate     *validator.Validator
	generator    iGenerator
	wsmux        *wsrouter.WSRouter
	logger       *slog.Logger
}

func NewController(relayService iRelayService, mediaService iMediaService, cfg *Config, logger *slog.Logger) *controller {
	c := &controller{
		relayService: relayService,
		mediaService: mediaService,
		playerURL:    cfg.PlayerURL,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate:  validator.NewValidator(),
		generator: randstr.New([]byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")),
		logger:    logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
