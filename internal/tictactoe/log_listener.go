package tictactoe

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// LogListener - writes every engine event to the logger. Rejected moves go to warn.
func LogListener(logger *slog.Logger) Listener {
	log := logger.With("component", "tictactoe")

	return func(event entity.Event) {
		args := []any{"event", string(event.Type), "sessionID", event.SessionID}
		if event.Player != nil {
			args = append(args, "player", event.Player.Name, "mark", string(event.Player.Mark))
		}

		switch event.Type {
		case entity.EventGameStarted:
			log.Info("game started", args...)
		case entity.EventMoveRejected:
			log.Warn("move rejected", append(args, "cell", event.Cell, "error", event.Err)...)
		case entity.EventMarkPlaced:
			log.Info("mark placed", append(args, "cell", event.Cell, "board", event.Board)...)
		case entity.EventGameWon:
			log.Info("game won", args...)
		case entity.EventGameTied:
			log.Info("game tied", args...)
		case entity.EventTurnChanged:
			log.Debug("next turn", args...)
		}
	}
}
