// Package controller holds the room client's session and turns user
// actions into room API calls. All game authority stays with the server:
// the controller mirrors what the server returns and never decides turn
// order, legality or outcome.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/roomapi"
	"github.com/mcoot/tictactoe-go/internal/view"
)

// User-facing fallback messages, used when the server sends no error text
const (
	MsgCreateFailed  = "Error creating room"
	MsgJoinFailed    = "Error joining room"
	MsgFetchFailed   = "Error fetching board"
	MsgMoveFailed    = "Error making move"
	MsgRestartFailed = "Error restarting game"
	MsgNoRoom        = "No room selected"
)

// API is the subset of the room API the controller uses
type API interface {
	CreateRoom(ctx context.Context, roomID string) (*roomapi.Room, error)
	GetRoom(ctx context.Context, roomID string) (*roomapi.Room, error)
	GetBoard(ctx context.Context, roomID string) (model.Board, error)
	Move(ctx context.Context, roomID string, pos model.Position) (*roomapi.MoveResult, error)
	Restart(ctx context.Context, roomID string) (*roomapi.RestartResult, error)
}

// Prompter asks the user for a line of input
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// Notifier shows a message to the user
type Notifier interface {
	Notify(msg string)
}

// View displays the board
type View interface {
	// ShowBoard reveals the board area
	ShowBoard()
	// Render rebuilds the grid from cells
	Render(cells []view.Cell)
	// Update refreshes cell contents from a server board
	Update(b model.Board)
}

// Controller is the room client. It is safe for concurrent use.
//
// Room switches (create, join) and board changes are sequenced separately.
// A successful switch always applies unless a later-issued switch has
// already applied; it starts a new session generation. A board change takes
// a ticket for the generation it was issued in and applies only if that
// generation is still current and no later-issued board change has applied.
// Anything else is dropped with ErrStaleResponse.
type Controller struct {
	api      API
	prompter Prompter
	notifier Notifier
	view     View
	logger   *slog.Logger

	mu      sync.Mutex
	session model.Session
	gen     uint64

	switchesIssued  uint64
	switchesApplied uint64

	issued  uint64
	applied uint64

	fetches singleflight.Group
}

// ticket identifies a board change: the generation it targets and its order
type ticket struct {
	gen uint64
	seq uint64
}

// New creates a controller with an empty session
func New(api API, prompter Prompter, notifier Notifier, v View, logger *slog.Logger) *Controller {
	return &Controller{
		api:      api,
		prompter: prompter,
		notifier: notifier,
		view:     v,
		logger:   logger,
		session:  model.NewSession(),
	}
}

// Session returns a copy of the current session
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// CreateRoom prompts for a room id and creates the room.
// An empty answer aborts without a request.
func (c *Controller) CreateRoom(ctx context.Context) error {
	roomID, err := c.prompter.Prompt(ctx, "Room name")
	if err != nil {
		return err
	}
	if roomID == "" {
		return nil
	}

	c.logger.Debug("creating room", slog.String("room", roomID))
	sw := c.nextSwitch()

	if _, err := c.api.CreateRoom(ctx, roomID); err != nil {
		return c.fail(err, "create room", MsgCreateFailed)
	}

	c.mu.Lock()
	if !c.switchLocked(sw, roomID, "") {
		c.mu.Unlock()
		return model.ErrStaleResponse
	}
	gen := c.gen
	c.mu.Unlock()

	c.notifier.Notify(fmt.Sprintf("Room created! Room ID: %s", roomID))

	c.mu.Lock()
	defer c.mu.Unlock()
	// A later switch owns the view now
	if c.gen == gen {
		c.view.ShowBoard()
		c.resetLocked()
	}
	return nil
}

// JoinRoom prompts for a room id and player name, looks the room up and
// loads its board. Either answer empty aborts without a request.
func (c *Controller) JoinRoom(ctx context.Context) error {
	roomID, err := c.prompter.Prompt(ctx, "Room ID to join")
	if err != nil {
		return err
	}
	playerName, err := c.prompter.Prompt(ctx, "Your name")
	if err != nil {
		return err
	}
	if roomID == "" || playerName == "" {
		return nil
	}

	c.logger.Debug("joining room", slog.String("room", roomID), slog.String("player", playerName))
	sw := c.nextSwitch()

	if _, err := c.api.GetRoom(ctx, roomID); err != nil {
		return c.fail(err, "join room", MsgJoinFailed)
	}

	c.mu.Lock()
	if !c.switchLocked(sw, roomID, playerName) {
		c.mu.Unlock()
		return model.ErrStaleResponse
	}
	c.view.ShowBoard()
	c.renderLocked()
	c.mu.Unlock()

	c.notifier.Notify(fmt.Sprintf("Joined room with ID: %s", roomID))

	// The join stands even if the board cannot be loaded; FetchBoard reports its own failure.
	if err := c.FetchBoard(ctx); err != nil {
		c.logger.Warn("board fetch after join failed", slog.String("room", roomID), slog.String("error", err.Error()))
	}
	return nil
}

// FetchBoard loads the current room's board from the server and replaces
// the local one. Concurrent fetches for the same room and generation share
// one request.
func (c *Controller) FetchBoard(ctx context.Context) error {
	roomID, gen := c.current()
	if roomID == "" {
		c.notifier.Notify(MsgNoRoom)
		return model.ErrNoRoom
	}

	key := fmt.Sprintf("%s#%d", roomID, gen)
	ch := c.fetches.DoChan(key, func() (any, error) {
		t, ok := c.nextTicket(gen)
		if !ok {
			return nil, model.ErrStaleResponse
		}

		b, err := c.api.GetBoard(ctx, roomID)
		if err != nil {
			return nil, c.fail(err, "fetch board", MsgFetchFailed)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.acceptLocked(t) {
			return nil, model.ErrStaleResponse
		}
		c.session.Board = b
		c.view.Update(b)
		return nil, nil
	})
	c.logger.Debug("board fetch queued", slog.String("room", roomID))

	res := <-ch
	if res.Shared {
		c.logger.Debug("board fetch shared", slog.String("room", roomID))
	}
	return res.Err
}

// RenderBoard rebuilds the view from the local board. Each cell submits a
// move for its coordinates when activated.
func (c *Controller) RenderBoard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

// MakeMove submits a move and mirrors the server's board on success
func (c *Controller) MakeMove(ctx context.Context, row, col int) error {
	pos := model.Position{Row: row, Col: col}
	if !pos.IsValid() {
		return fmt.Errorf("%w: %d,%d", model.ErrInvalidPosition, row, col)
	}

	roomID, gen := c.current()
	if roomID == "" {
		c.notifier.Notify(MsgNoRoom)
		return model.ErrNoRoom
	}

	c.logger.Debug("making move", slog.String("room", roomID), slog.Int("row", row), slog.Int("col", col))
	t, ok := c.nextTicket(gen)
	if !ok {
		return model.ErrStaleResponse
	}

	result, err := c.api.Move(ctx, roomID, pos)
	if err != nil {
		return c.fail(err, "make move", MsgMoveFailed)
	}

	c.mu.Lock()
	if !c.acceptLocked(t) {
		c.mu.Unlock()
		return model.ErrStaleResponse
	}
	c.session.Board = *result.Board
	c.view.Update(*result.Board)
	c.mu.Unlock()

	if result.Message != "" {
		c.notifier.Notify(result.Message)
	}
	return nil
}

// RestartGame asks the server to restart the current room's game and
// clears the local board on success. Without a room it does nothing.
func (c *Controller) RestartGame(ctx context.Context) error {
	roomID, gen := c.current()
	if roomID == "" {
		return nil
	}

	c.logger.Debug("restarting game", slog.String("room", roomID))
	t, ok := c.nextTicket(gen)
	if !ok {
		return model.ErrStaleResponse
	}

	result, err := c.api.Restart(ctx, roomID)
	if err != nil {
		return c.fail(err, "restart game", MsgRestartFailed)
	}

	c.mu.Lock()
	if !c.acceptLocked(t) {
		c.mu.Unlock()
		return model.ErrStaleResponse
	}
	c.resetLocked()
	c.mu.Unlock()

	if result.Message != "" {
		c.notifier.Notify(result.Message)
	}
	return nil
}

// ResetBoard clears the local board and re-renders it. The server is not
// contacted, and in-flight requests are not affected.
func (c *Controller) ResetBoard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// current returns the session's room and generation as one snapshot
func (c *Controller) current() (string, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.RoomID, c.gen
}

func (c *Controller) nextSwitch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.switchesIssued++
	return c.switchesIssued
}

// switchLocked moves the session to roomID unless a later-issued switch
// has already applied
func (c *Controller) switchLocked(sw uint64, roomID, playerName string) bool {
	if sw < c.switchesApplied {
		return false
	}
	c.switchesApplied = sw
	c.gen++
	c.session = model.NewSession()
	c.session.RoomID = roomID
	c.session.PlayerName = playerName
	return true
}

// nextTicket issues a board-change ticket for gen. It fails if the session
// has moved on since gen was read.
func (c *Controller) nextTicket(gen uint64) (ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ticket{}, false
	}
	c.issued++
	return ticket{gen: gen, seq: c.issued}, true
}

// acceptLocked decides whether the response for t may be applied
func (c *Controller) acceptLocked(t ticket) bool {
	if t.gen != c.gen || t.seq < c.applied {
		return false
	}
	c.applied = t.seq
	return true
}

func (c *Controller) resetLocked() {
	c.session.Reset()
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	c.view.Render(view.Cells(c.session.Board, c.move))
}

func (c *Controller) move(ctx context.Context, pos model.Position) error {
	return c.MakeMove(ctx, pos.Row, pos.Col)
}

// fail reports err to the user and returns it. Server messages are shown
// verbatim; transport and decoding failures show fallback.
func (c *Controller) fail(err error, op, fallback string) error {
	var transportErr *roomapi.TransportError
	if errors.As(err, &transportErr) {
		c.logger.Error(op+" failed", slog.String("error", err.Error()))
	} else {
		c.logger.Debug(op+" rejected", slog.String("error", err.Error()))
	}

	c.notifier.Notify(roomapi.UserMessage(err, fallback))
	return err
}
