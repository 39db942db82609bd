package tictactoe

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/board"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Listener receives engine events synchronously, in the order they happen.
type Listener func(event entity.Event)

// GameController owns the session state and evaluates turns against the board.
// It is not safe for concurrent use.
type GameController struct {
	board *board.Board

	sessionID          string
	players            [2]entity.Player
	currentPlayerIndex int
	status             entity.Status
	winner             *entity.Player

	listeners []Listener
	newID     func() string
}

func NewGameController(board *board.Board) *GameController {
	return &GameController{
		board:  board,
		status: entity.StatusNotStarted,
		newID:  uuid.NewString,
	}
}

func (that *GameController) Subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

// StartGame - replaces the session. X always moves first.
func (that *GameController) StartGame(name1, name2 string) {
	that.sessionID = that.newID()
	that.players = [2]entity.Player{
		{Name: name1, Mark: entity.PlayerX},
		{Name: name2, Mark: entity.PlayerO},
	}
	that.currentPlayerIndex = 0
	that.status = entity.StatusOngoing
	that.winner = nil
	that.board.Reset()

	that.emit(entity.EventGameStarted, that.currentPlayer(), -1, nil)
}

func (that *GameController) GetCurrentPlayer() (*entity.Player, error) {
	if that.status == entity.StatusNotStarted {
		return nil, apperror.ErrGameIsNotStarted
	}

	return that.currentPlayer(), nil
}

func (that *GameController) PlayTurn(cell int) error {
	if that.status == entity.StatusNotStarted {
		return apperror.ErrGameIsNotStarted
	}

	player := that.currentPlayer()

	if that.isOver() {
		that.emit(entity.EventMoveRejected, player, cell, apperror.ErrGameFinished)
		return apperror.ErrGameFinished
	}

	placed, err := that.board.SetMark(cell, player.Mark)
	if err != nil {
		err = fmt.Errorf("invalid turn: %w", err)
		that.emit(entity.EventMoveRejected, player, cell, err)

		return err
	}

	if !placed {
		err = fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
		that.emit(entity.EventMoveRejected, player, cell, err)

		return err
	}

	that.emit(entity.EventMarkPlaced, player, cell, nil)
	that.updateGameStatus(player, cell)

	return nil
}

func (that *GameController) GetGameState() entity.GameState {
	state := entity.GameState{
		SessionID: that.sessionID,
		Status:    that.status,
		IsOver:    that.isOver(),
	}

	if that.status == entity.StatusNotStarted {
		return state
	}

	state.CurrentPlayer = that.currentPlayer()
	if that.winner != nil {
		winner := *that.winner
		state.Winner = &winner
	}

	return state
}

func (that *GameController) GetBoard() entity.Board {
	return that.board.GetBoard()
}

// updateGameStatus - checks the game status after a move. A win is checked before a tie
// because the last move may both fill the board and complete a line.
func (that *GameController) updateGameStatus(player *entity.Player, cell int) {
	cells := that.board.GetBoard()

	switch {
	case checkWin(cells):
		that.status = entity.StatusWon
		that.winner = player
		that.emit(entity.EventGameWon, player, cell, nil)
	case checkTie(cells):
		that.status = entity.StatusTied
		that.emit(entity.EventGameTied, nil, cell, nil)
	default:
		that.currentPlayerIndex = 1 - that.currentPlayerIndex
		that.emit(entity.EventTurnChanged, that.currentPlayer(), cell, nil)
	}
}

func (that *GameController) isOver() bool {
	return that.status == entity.StatusWon || that.status == entity.StatusTied
}

// currentPlayer - returns a copy so callers can't rename players mid-session.
func (that *GameController) currentPlayer() *entity.Player {
	player := that.players[that.currentPlayerIndex]
	return &player
}

func (that *GameController) emit(eventType entity.EventType, player *entity.Player, cell int, err error) {
	event := entity.Event{
		Type:      eventType,
		SessionID: that.sessionID,
		Player:    player,
		Cell:      cell,
		Board:     that.board.GetBoard(),
		Err:       err,
	}

	for _, listener := range that.listeners {
		listener(event)
	}
}

func checkWin(cells entity.Board) bool {
	for _, combo := range entity.WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return true
		}
	}

	return false
}

func checkTie(cells entity.Board) bool {
	for _, cell := range cells {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
