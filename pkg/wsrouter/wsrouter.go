package wsrouter

import (
	"context"
	"encoding/json"
	"fmt"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc handles a single inbound message. The payload is decoded
// into T by Handle before the middleware chain runs, so middlewares see
// it as any.
type HandlerFunc[T any] func(ctx context.Context, conn *Conn, payload T) error

type Middleware func(next HandlerFunc[any]) HandlerFunc[any]

type WSRouter struct {
	routes      map[string]HandlerFunc[any]
	middlewares []Middleware
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc[any])}
}

func (r *WSRouter) Use(mw ...Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// Handle registers handler for messageType. It is a package function
// because methods cannot carry their own type parameters.
func Handle[T any](r *WSRouter, messageType string, handler HandlerFunc[T]) {
	r.routes[messageType] = func(ctx context.Context, conn *Conn, payload any) error {
		raw, ok := payload.(json.RawMessage)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", payload)
		}

		var input T
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("failed to unmarshal %q payload: %w", messageType, err)
			}
		}

		return handler(ctx, conn, input)
	}
}

// ServeConn reads messages from conn until a read error occurs and
// dispatches each to its registered handler. Handler errors do not
// terminate the connection; the middleware chain observes them and the
// loop keeps reading.
func (r *WSRouter) ServeConn(ctx context.Context, conn *Conn) error {
	defer conn.Close()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		route, exists := r.routes[msg.Type]
		if !exists {
			conn.WriteJSON(map[string]string{"error": "unknown message type"})
			continue
		}

		handler := route
		for i := len(r.middlewares) - 1; i >= 0; i-- {
			handler = r.middlewares[i](handler)
		}

		mctx := context.WithValue(ctx, messageTypeKey, msg.Type)
		handler(mctx, conn, json.RawMessage(msg.Payload))
	}
}
