package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const writeWait = 5 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(msg *Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Hub keeps the connected clients and pushes every published view to all of them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "websocket_hub"),
		clients: make(map[*client]struct{}),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c] = struct{}{}
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, c)
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Publish - sends the view to every connected client. A failing client does not stop the others.
func (that *Hub) Publish(_ context.Context, view *entity.View) error {
	msg, err := newMessage(actionGameState, ResponsePayload{Game: view})
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	that.mu.RLock()
	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}
	that.mu.RUnlock()

	var errs []error
	for _, c := range clients {
		if err = c.send(msg); err != nil {
			that.logger.Debug("failed to push view", "remote", c.conn.RemoteAddr().String(), "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
