package entity

// Mark is the content of a single cell: empty or one of the player markers.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// Status is the phase of a game session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOngoing    Status = "ongoing"
	StatusWon        Status = "won"
	StatusTied       Status = "tied"
)

const BoardSize = 9

// WinCombos - rows, columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major snapshot of the 9 cells.
type Board [BoardSize]Mark

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// GameState is the read-only state of the current session.
type GameState struct {
	SessionID     string  `json:"session_id,omitempty"`
	Status        Status  `json:"status"`
	IsOver        bool    `json:"is_over"`
	CurrentPlayer *Player `json:"current_player,omitempty"`
	Winner        *Player `json:"winner,omitempty"`
}

func (that GameState) IsStarted() bool {
	return that.Status != StatusNotStarted && that.Status != ""
}
