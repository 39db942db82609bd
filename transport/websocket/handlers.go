package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

func (that *Server) handleGameState(ctx context.Context, msg *Message, c *client) error {
	return that.sendMessage(c, msg.Action, ResponsePayload{Game: that.uGame.View(ctx)})
}

// handleNewGame - starts or restarts the game. The new view reaches every client through the hub.
func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq StartPayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		log.Warn("bad payload", "error", err)
		return that.sendErrorResponse(c, msg.Action, nil, "invalid payload")
	}

	view, err := that.uGame.StartGame(ctx, payloadReq.Player1, payloadReq.Player2)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return that.sendErrorResponse(c, msg.Action, view, "failed to start game")
	}

	log.Info("game started", "sessionID", view.SessionID)

	return nil
}

// handleGameTurn - a rejected move is answered only to the sender.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq TurnPayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		log.Warn("bad payload", "error", err)
		return that.sendErrorResponse(c, msg.Action, nil, "invalid payload")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(c, msg.Action, nil, "cell is required")
	}

	view, err := that.uGame.PlayTurn(ctx, *payloadReq.Cell)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, view, rejectReason(err))
	}

	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return apperror.ErrCellOccupied.Error()
	case errors.Is(err, apperror.ErrGameFinished):
		return apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		return apperror.ErrGameIsNotStarted.Error()
	case errors.Is(err, apperror.ErrInvalidCell):
		return apperror.ErrInvalidCell.Error()
	default:
		return "failed to make turn"
	}
}
