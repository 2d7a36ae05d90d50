// Package view renders boards for the room client: as a terminal grid and
// as an HTML fragment carrying the browser page's element ids.
package view

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Cell is one interactive square of a rendered board
type Cell struct {
	ID   string // e.g. "cell-1-2"
	Pos  model.Position
	Text string
	// Activate submits a move for this cell. Nil when the board is read-only.
	Activate func(ctx context.Context) error
}

// MoveFunc submits a move for a position
type MoveFunc func(ctx context.Context, pos model.Position) error

// Cells builds the 9 cells of b in row-major order.
// When move is non-nil each cell's Activate calls it with the cell position.
func Cells(b model.Board, move MoveFunc) []Cell {
	cells := make([]Cell, 0, model.Size*model.Size)
	for row := 0; row < model.Size; row++ {
		for col := 0; col < model.Size; col++ {
			pos := model.Position{Row: row, Col: col}
			cell := Cell{
				ID:   pos.CellID(),
				Pos:  pos,
				Text: string(b.Get(pos)),
			}
			if move != nil {
				cell.Activate = func(ctx context.Context) error {
					return move(ctx, pos)
				}
			}
			cells = append(cells, cell)
		}
	}
	return cells
}
