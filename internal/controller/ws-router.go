package controller

import (
	"github.com/groovesync/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.wsRequestIdWSMw())
	mux.Use(c.loggerWSMw())

	wsrouter.Handle(mux, "alive", c.handleAlive)
	wsrouter.Handle(mux, "join", c.handleJoin)
	wsrouter.Handle(mux, "control", c.handleControl)

	return mux
}
