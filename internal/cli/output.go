package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/roomapi"
	"github.com/mcoot/tictactoe-go/internal/view"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputHTML = "html"
)

// Output handles formatting output based on the configured format
type Output struct {
	ctx    context.Context
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(ctx context.Context, format string, w io.Writer) *Output {
	return &Output{ctx: ctx, format: format, w: w}
}

// RoomBoard is a board together with the room it belongs to
type RoomBoard struct {
	RoomID  string      `json:"room_id"`
	Board   model.Board `json:"board"`
	Message string      `json:"message,omitempty"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	switch o.format {
	case OutputJSON:
		return o.printJSON(data)
	case OutputHTML:
		if rb, ok := data.(RoomBoard); ok {
			return view.WriteHTML(o.ctx, o.w, view.HTMLData{RoomID: rb.RoomID, Visible: true, Board: rb.Board})
		}
		return o.printText(data)
	default:
		return o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) error {
	if o.format == OutputJSON {
		return o.printJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(o.w, msg)
	return err
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case roomapi.Room:
		o.printRoom(v)
	case RoomBoard:
		o.printRoomBoard(v)
	default:
		// Fallback to JSON for unknown types
		return o.printJSON(data)
	}
	return nil
}

func (o *Output) printRoom(r roomapi.Room) {
	_, _ = fmt.Fprintf(o.w, "Room: %s\n", r.ID)
	if r.CreatedAt != "" {
		_, _ = fmt.Fprintf(o.w, "Created: %s\n", r.CreatedAt)
	}
	if len(r.Players) > 0 {
		_, _ = fmt.Fprintf(o.w, "Players (%d):\n", len(r.Players))
		for _, p := range r.Players {
			_, _ = fmt.Fprintf(o.w, "  - %s\n", p)
		}
	}
}

func (o *Output) printRoomBoard(rb RoomBoard) {
	_, _ = fmt.Fprintf(o.w, "Room: %s\n", rb.RoomID)
	view.WriteGrid(o.w, rb.Board)
	if rb.Message != "" {
		_, _ = fmt.Fprintln(o.w, rb.Message)
	}
}
