package controller

import (
	"context"
	"log/slog"
)

// Command is a user action dispatched to the controller
type Command interface {
	run(ctx context.Context, c *Controller) error
}

// CreateRoom is the "create room" button
type CreateRoom struct{}

// JoinRoom is the "join room" button
type JoinRoom struct{}

// FetchBoard reloads the board from the server
type FetchBoard struct{}

// MakeMove is a click on a cell
type MakeMove struct {
	Row int
	Col int
}

// RestartGame restarts the game on the server
type RestartGame struct{}

// ResetBoard clears the local board only
type ResetBoard struct{}

func (CreateRoom) run(ctx context.Context, c *Controller) error  { return c.CreateRoom(ctx) }
func (JoinRoom) run(ctx context.Context, c *Controller) error    { return c.JoinRoom(ctx) }
func (FetchBoard) run(ctx context.Context, c *Controller) error  { return c.FetchBoard(ctx) }
func (m MakeMove) run(ctx context.Context, c *Controller) error  { return c.MakeMove(ctx, m.Row, m.Col) }
func (RestartGame) run(ctx context.Context, c *Controller) error { return c.RestartGame(ctx) }

func (ResetBoard) run(_ context.Context, c *Controller) error {
	c.ResetBoard()
	return nil
}

// Dispatch runs cmd against the controller
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	c.logger.Debug("dispatch", slog.String("command", commandName(cmd)))
	return cmd.run(ctx, c)
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case CreateRoom:
		return "create-room"
	case JoinRoom:
		return "join-room"
	case FetchBoard:
		return "fetch-board"
	case MakeMove:
		return "make-move"
	case RestartGame:
		return "restart-game"
	case ResetBoard:
		return "reset-board"
	default:
		return "unknown"
	}
}
