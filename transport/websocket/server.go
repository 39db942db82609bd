package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	StartGame(ctx context.Context, name1, name2 string) (*entity.View, error)
	PlayTurn(ctx context.Context, cell int) (*entity.View, error)
	View(ctx context.Context) *entity.View
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	hub    *Hub

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, message *Message, c *client) error
}

func New(logger *slog.Logger, uGame uGame, hub *Hub) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		hub:    hub,

		upgrader: websocket.Upgrader{
			// the game is played from any page that can reach the port
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameStart] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start websocket server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn}
	that.hub.register(c)

	done := make(chan struct{})
	defer func() {
		close(done)
		that.hub.unregister(c)
		if err = conn.Close(); err != nil {
			log.Debug("failed to close connection", "error", err)
		}
	}()

	// hijacked connections are not closed by Shutdown
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	log.Info("client connected")

	for {
		var msg Message
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed", "error", err)
			}

			return
		}

		if err = that.dispatch(ctx, &msg, c); err != nil {
			log.Error("failed to handle message", "action", msg.Action, "error", err)
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, msg *Message, c *client) error {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return that.sendErrorResponse(c, actionError, nil, "unknown action: "+msg.Action)
	}

	return handler(ctx, msg, c)
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	msg, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return c.send(msg)
}

func (that *Server) sendErrorResponse(c *client, action string, view *entity.View, errMsg string) error {
	return that.sendMessage(c, action, ResponsePayload{Game: view, Error: errMsg})
}

func decodePayload(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
