package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type startRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	Game  *entity.View `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, gameResponse{Game: that.uGame.View(r.Context())})
}

func (that *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// an empty body starts a game with the default names
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.writeJSON(w, http.StatusBadRequest, gameResponse{Error: "invalid request body"})
			return
		}
	}

	view, err := that.uGame.StartGame(r.Context(), req.Player1, req.Player2)
	if err != nil {
		that.writeError(w, view, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: view})
}

func (that *Server) handleGameTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, gameResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, gameResponse{Error: "cell is required"})
		return
	}

	view, err := that.uGame.PlayTurn(r.Context(), *req.Cell)
	if err != nil {
		that.writeError(w, view, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: view})
}

func (that *Server) writeError(w http.ResponseWriter, view *entity.View, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, gameResponse{Game: view, Error: errorMessage(err)})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, resp gameResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage - the sentinel text without the wrapping chain, so clients can match on it.
func errorMessage(err error) string {
	for _, target := range []error{
		apperror.ErrInvalidCell,
		apperror.ErrInvalidMark,
		apperror.ErrCellOccupied,
		apperror.ErrGameFinished,
		apperror.ErrGameIsNotStarted,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return "Internal Server Error"
}
