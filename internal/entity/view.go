package entity

import "fmt"

const StatusTextIdle = "press start to play"

// View is everything a renderer needs to draw the game.
type View struct {
	SessionID     string  `json:"session_id,omitempty"`
	Board         Board   `json:"board"`
	Status        Status  `json:"status"`
	StatusText    string  `json:"status_text"`
	IsOver        bool    `json:"is_over"`
	CurrentPlayer *Player `json:"current_player,omitempty"`
	Winner        *Player `json:"winner,omitempty"`
	ShowRestart   bool    `json:"show_restart"`
}

func NewView(state GameState, board Board) *View {
	return &View{
		SessionID:     state.SessionID,
		Board:         board,
		Status:        state.Status,
		StatusText:    StatusText(state),
		IsOver:        state.IsOver,
		CurrentPlayer: state.CurrentPlayer,
		Winner:        state.Winner,
		// a session can never go back to not started, so this stays on after the first start
		ShowRestart: state.IsStarted(),
	}
}

// StatusText - the one-line status shown under the board.
func StatusText(state GameState) string {
	switch {
	case !state.IsStarted():
		return StatusTextIdle
	case state.IsOver && state.Winner != nil:
		return fmt.Sprintf("%s wins", state.Winner.Name)
	case state.IsOver:
		return "tie"
	case state.CurrentPlayer != nil:
		return fmt.Sprintf("awaiting move by %s (%s)", state.CurrentPlayer.Name, state.CurrentPlayer.Mark)
	default:
		return StatusTextIdle
	}
}
