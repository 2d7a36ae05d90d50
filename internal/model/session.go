package model

// Session is the client-local record of the active room and player.
// It lives only as long as the controller that owns it.
type Session struct {
	RoomID     string
	PlayerName string
	Board      Board
}

// NewSession creates a session with no room and an empty board
func NewSession() Session {
	return Session{Board: NewBoard()}
}

// HasRoom returns true once a room has been created or joined
func (s Session) HasRoom() bool {
	return s.RoomID != ""
}

// Reset clears the local board
func (s *Session) Reset() {
	s.Board = NewBoard()
}
