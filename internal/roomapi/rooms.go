package roomapi

import (
	"context"
	"errors"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Room is the room confirmation/info returned by create and lookup.
// The server owns the shape; only id is relied upon.
type Room struct {
	ID        string   `json:"id"`
	Players   []string `json:"players,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// MoveRequest is the body of a move submission
type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ErrMissingBoard is returned when a move succeeds without a board in the response
var ErrMissingBoard = errors.New("move response has no board")

// MoveResult is the authoritative board after a move plus a status message
type MoveResult struct {
	Board   *model.Board `json:"board"`
	Message string       `json:"message"`
}

// RestartResult confirms a restart
type RestartResult struct {
	Message string `json:"message"`
}

// CreateRoom handles POST /sala/{roomId}
func (c *Client) CreateRoom(ctx context.Context, roomID string) (*Room, error) {
	var result Room
	if err := c.Post(ctx, roomPath(roomID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRoom handles GET /sala/{roomId}
func (c *Client) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	var result Room
	if err := c.Get(ctx, roomPath(roomID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBoard handles GET /sala/{roomId}/tabuleiro
func (c *Client) GetBoard(ctx context.Context, roomID string) (model.Board, error) {
	var result model.Board
	if err := c.Get(ctx, roomPath(roomID, "tabuleiro"), &result); err != nil {
		return model.Board{}, err
	}
	return result, nil
}

// Move handles POST /sala/{roomId}/jogar
func (c *Client) Move(ctx context.Context, roomID string, pos model.Position) (*MoveResult, error) {
	var result MoveResult
	req := MoveRequest{Row: pos.Row, Col: pos.Col}
	if err := c.Post(ctx, roomPath(roomID, "jogar"), req, &result); err != nil {
		return nil, err
	}
	if result.Board == nil {
		return nil, ErrMissingBoard
	}
	return &result, nil
}

// Restart handles POST /sala/{roomId}/reiniciar
func (c *Client) Restart(ctx context.Context, roomID string) (*RestartResult, error) {
	var result RestartResult
	if err := c.Post(ctx, roomPath(roomID, "reiniciar"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
