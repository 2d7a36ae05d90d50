package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// HTMLData is the input to Fragment
type HTMLData struct {
	RoomID  string
	Visible bool
	Board   model.Board
}

// Fragment renders the controls and the board with the element ids the
// browser client uses: gameBoard, board, cell-{row}-{col} and the three buttons
func Fragment(data HTMLData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := controls().Render(ctx, w); err != nil {
			return err
		}
		return gameBoard(data).Render(ctx, w)
	})
}

// WriteHTML renders Fragment(data) to w
func WriteHTML(ctx context.Context, w io.Writer, data HTMLData) error {
	return Fragment(data).Render(ctx, w)
}

func controls() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="controls">
  <button id="createRoomButton">Create room</button>
  <button id="joinRoomButton">Join room</button>
  <button id="restartGameButton">Restart game</button>
</div>
`)
		return err
	})
}

func gameBoard(data HTMLData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		display := "none"
		if data.Visible {
			display = "block"
		}
		if _, err := fmt.Fprintf(w, `<div id="gameBoard" style="display: %s"`, display); err != nil {
			return err
		}
		if data.RoomID != "" {
			if _, err := fmt.Fprintf(w, ` data-room="%s"`, templ.EscapeString(data.RoomID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">\n  <div id=\"board\">"); err != nil {
			return err
		}
		for _, c := range Cells(data.Board, nil) {
			if err := cell(c).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n  </div>\n</div>\n")
		return err
	})
}

func cell(c Cell) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "\n    <div class=\"cell\" id=\"%s\" data-row=\"%d\" data-col=\"%d\">%s</div>",
			templ.EscapeString(c.ID), c.Pos.Row, c.Pos.Col, templ.EscapeString(c.Text))
		return err
	})
}
