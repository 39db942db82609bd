package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	DefaultFirstPlayer  = "Player 1"
	DefaultSecondPlayer = "Player 2"
)

type gameController interface {
	StartGame(name1, name2 string)
	PlayTurn(cell int) error
	GetGameState() entity.GameState
	GetBoard() entity.Board
}

// SnapshotPublisher receives every view produced by a successful start or move.
type SnapshotPublisher interface {
	Publish(ctx context.Context, view *entity.View) error
}

// PlayerNames are used in place of blank names on start.
type PlayerNames struct {
	First  string
	Second string
}

// GameManager is the single entry point for transports. It serializes every call,
// so the controller only ever sees one caller at a time.
type GameManager struct {
	logger *slog.Logger

	mu         sync.Mutex
	controller gameController
	names      PlayerNames
	publishers []SnapshotPublisher
}

func NewGameManager(logger *slog.Logger, controller gameController, names PlayerNames, publishers ...SnapshotPublisher) *GameManager {
	if strings.TrimSpace(names.First) == "" {
		names.First = DefaultFirstPlayer
	}

	if strings.TrimSpace(names.Second) == "" {
		names.Second = DefaultSecondPlayer
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		controller: controller,
		names:      names,
		publishers: publishers,
	}
}

// StartGame - starts or restarts the game. Blank names fall back to the defaults.
func (that *GameManager) StartGame(ctx context.Context, name1, name2 string) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	name1 = strings.TrimSpace(name1)
	if name1 == "" {
		name1 = that.names.First
	}

	name2 = strings.TrimSpace(name2)
	if name2 == "" {
		name2 = that.names.Second
	}

	that.controller.StartGame(name1, name2)

	view := that.view()
	that.publish(ctx, view)

	return view, nil
}

// PlayTurn - plays the cell for the player on turn. A rejected move returns the unchanged
// view together with the reason.
func (that *GameManager) PlayTurn(ctx context.Context, cell int) (*entity.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.controller.PlayTurn(cell); err != nil {
		return that.view(), fmt.Errorf("failed make turn: %w", err)
	}

	view := that.view()
	that.publish(ctx, view)

	return view, nil
}

func (that *GameManager) View(_ context.Context) *entity.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view()
}

func (that *GameManager) view() *entity.View {
	return entity.NewView(that.controller.GetGameState(), that.controller.GetBoard())
}

func (that *GameManager) publish(ctx context.Context, view *entity.View) {
	log := that.logger.With("method", "publish", "sessionID", view.SessionID)

	for _, publisher := range that.publishers {
		if err := publisher.Publish(ctx, view); err != nil {
			log.Error("failed to publish snapshot", "error", err)
		}
	}
}
