package model

import (
	"encoding/json"
	"fmt"
)

// Size is the board dimension. Boards are always Size x Size.
const Size = 3

// Marker is the content of a single cell
type Marker string

// Known markers. Any other non-empty value sent by the server is kept as-is.
const (
	Empty Marker = ""
	X     Marker = "X"
	O     Marker = "O"
)

// IsEmpty returns true if no player occupies the cell
func (m Marker) IsEmpty() bool {
	return m == Empty
}

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// IsValid returns true if the position is within bounds
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// CellID returns the view identifier for the cell, e.g. "cell-1-2"
func (p Position) CellID() string {
	return fmt.Sprintf("cell-%d-%d", p.Row, p.Col)
}

// Board is a 3x3 grid of markers, row-major: Cells[row][col]
type Board struct {
	Cells [Size][Size]Marker
}

// NewBoard creates an empty board
func NewBoard() Board {
	return Board{}
}

// Get returns the marker at the given position, or Empty if out of range
func (b Board) Get(pos Position) Marker {
	if !pos.IsValid() {
		return Empty
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a marker at the given position
func (b *Board) Set(pos Position, m Marker) {
	if pos.IsValid() {
		b.Cells[pos.Row][pos.Col] = m
	}
}

// IsEmpty returns true if every cell is empty
func (b Board) IsEmpty() bool {
	return b.EmptyCount() == Size*Size
}

// EmptyCount returns the number of empty cells
func (b Board) EmptyCount() int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.Cells[row][col].IsEmpty() {
				count++
			}
		}
	}
	return count
}

// MarshalJSON encodes the board as a 3x3 array with null for empty cells
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*string, Size)
	for row := 0; row < Size; row++ {
		rows[row] = make([]*string, Size)
		for col := 0; col < Size; col++ {
			if m := b.Cells[row][col]; !m.IsEmpty() {
				s := string(m)
				rows[row][col] = &s
			}
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes a 3x3 array of markers. null and "" are empty.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	if len(rows) != Size {
		return fmt.Errorf("%w: got %d rows", ErrInvalidBoard, len(rows))
	}

	var decoded Board
	for row, cells := range rows {
		if len(cells) != Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row, len(cells))
		}
		for col, cell := range cells {
			if cell != nil {
				decoded.Cells[row][col] = Marker(*cell)
			}
		}
	}

	*b = decoded
	return nil
}
