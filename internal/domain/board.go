package domain

// Board holds the cell state of one game. Row 0 is the bottom row.
//
// Move operations take column numbers in 1..Columns, the same numbering the
// players type and send over the wire. Cell takes zero-based grid coordinates.
type Board struct {
	grid [Rows][Columns]Side
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFromGrid rebuilds a board from stored cells. Every cell must hold a
// known side and no marker may sit above an empty cell.
func BoardFromGrid(grid [Rows][Columns]Side) (*Board, error) {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			switch cell := grid[row][col]; {
			case cell == Empty:
				seenEmpty = true
			case !cell.IsPlayer() || seenEmpty:
				return nil, ErrInvalidState
			}
		}
	}
	return &Board{grid: grid}, nil
}

// ValidateColumn reports ErrInvalidMove for a column number outside 1..Columns.
func ValidateColumn(col int) error {
	if col < 1 || col > Columns {
		return ErrInvalidMove
	}
	return nil
}

// Cell returns the side at zero-based (row, col). Out of range reads as Empty.
func (b *Board) Cell(row, col int) Side {
	if !inBounds(row, col) {
		return Empty
	}
	return b.grid[row][col]
}

// Grid returns a copy of the cells, bottom row first.
func (b *Board) Grid() [Rows][Columns]Side {
	return b.grid
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// Apply drops side's marker into col and returns the zero-based row it landed on.
// A full column leaves the board unchanged and returns ErrColumnFull.
func (b *Board) Apply(col int, side Side) (int, error) {
	if err := ValidateColumn(col); err != nil {
		return -1, err
	}
	if !side.IsPlayer() {
		return -1, ErrInvalidMove
	}

	// scan up from the bottom for the first free slot
	c := col - 1
	for row := 0; row < Rows; row++ {
		if b.grid[row][c] == Empty {
			b.grid[row][c] = side
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// Revert removes the topmost marker in col. An empty column is ErrInvalidState.
func (b *Board) Revert(col int) error {
	if err := ValidateColumn(col); err != nil {
		return err
	}

	h := b.Height(col)
	if h == 0 {
		return ErrInvalidState
	}
	b.grid[h-1][col-1] = Empty
	return nil
}

// Height returns the number of markers stacked in col.
func (b *Board) Height(col int) int {
	if ValidateColumn(col) != nil {
		return 0
	}
	h := 0
	for h < Rows && b.grid[h][col-1] != Empty {
		h++
	}
	return h
}

// IsColumnFull reports whether the top row of col is occupied. A column
// outside the board counts as full.
func (b *Board) IsColumnFull(col int) bool {
	if ValidateColumn(col) != nil {
		return true
	}
	return b.grid[Rows-1][col-1] != Empty
}

func (b *Board) IsBoardFull() bool {
	for col := 1; col <= Columns; col++ {
		if !b.IsColumnFull(col) {
			return false
		}
	}

	return true
}

// ValidColumns lists the column numbers that can still take a marker, lowest first.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, Columns)
	for col := 1; col <= Columns; col++ {
		if !b.IsColumnFull(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// MoveCount returns the number of occupied cells.
func (b *Board) MoveCount() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.grid[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
