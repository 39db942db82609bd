package entity

type EventType string

const (
	EventGameStarted  EventType = "game:started"
	EventMarkPlaced   EventType = "mark:placed"
	EventMoveRejected EventType = "move:rejected"
	EventTurnChanged  EventType = "turn:changed"
	EventGameWon      EventType = "game:won"
	EventGameTied     EventType = "game:tied"
)

// Event is emitted by the rules engine for every state transition or rejected move.
// Player is the player the event is about: the mover, the winner or the next player.
type Event struct {
	Type      EventType
	SessionID string
	Player    *Player
	Cell      int
	Board     Board
	Err       error
}
