package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidBoard    = errors.New("board must be 3x3")
	ErrInvalidPosition = errors.New("invalid board position")

	// Session errors
	ErrNoRoom          = errors.New("no room selected")
	ErrStaleResponse   = errors.New("response superseded by a newer request")
	ErrEmptyRoomID     = errors.New("room id is required")
	ErrEmptyPlayerName = errors.New("player name is required")
)
