package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Text is a terminal view of the board
type Text struct {
	mu      sync.Mutex
	out     io.Writer
	visible bool
	cells   []Cell
}

// NewText creates a terminal view writing to out
func NewText(out io.Writer) *Text {
	return &Text{out: out}
}

// ShowBoard makes the board visible; until then renders are kept but not printed
func (v *Text) ShowBoard() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
}

// Visible reports whether ShowBoard has been called
func (v *Text) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Render replaces the grid with cells and prints it
func (v *Text) Render(cells []Cell) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cells = cells
	v.print()
}

// Update refreshes the text of every rendered cell from b and prints the grid.
// Handlers from the last Render are kept.
func (v *Text) Update(b model.Board) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cells == nil {
		v.cells = Cells(b, nil)
	}
	for i := range v.cells {
		v.cells[i].Text = string(b.Get(v.cells[i].Pos))
	}
	v.print()
}

// Click activates the cell at pos, as a click on the page would
func (v *Text) Click(ctx context.Context, pos model.Position) error {
	v.mu.Lock()
	var activate func(context.Context) error
	for _, c := range v.cells {
		if c.Pos == pos {
			activate = c.Activate
			break
		}
	}
	v.mu.Unlock()

	if activate == nil {
		return fmt.Errorf("%w: no cell at %d,%d", model.ErrInvalidPosition, pos.Row, pos.Col)
	}
	return activate(ctx)
}

func (v *Text) print() {
	if !v.visible {
		return
	}
	var b model.Board
	for _, c := range v.cells {
		b.Set(c.Pos, model.Marker(c.Text))
	}
	WriteGrid(v.out, b)
}

// WriteGrid prints b with row and column headers, "." marking empty cells
func WriteGrid(w io.Writer, b model.Board) {
	_, _ = fmt.Fprint(w, "    ")
	for col := 0; col < model.Size; col++ {
		_, _ = fmt.Fprintf(w, " %d ", col)
	}
	_, _ = fmt.Fprintln(w)

	border(w)
	for row := 0; row < model.Size; row++ {
		_, _ = fmt.Fprintf(w, " %d |", row)
		for col := 0; col < model.Size; col++ {
			cell := b.Get(model.Position{Row: row, Col: col})
			if cell.IsEmpty() {
				_, _ = fmt.Fprint(w, " . ")
			} else {
				_, _ = fmt.Fprintf(w, " %s ", cell)
			}
		}
		_, _ = fmt.Fprintln(w, "|")
	}
	border(w)
}

func border(w io.Writer) {
	_, _ = fmt.Fprint(w, "   +")
	for col := 0; col < model.Size; col++ {
		_, _ = fmt.Fprint(w, "---")
	}
	_, _ = fmt.Fprintln(w, "+")
}
