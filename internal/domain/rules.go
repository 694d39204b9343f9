package domain

// Line is a run of Straight markers: the first cell found and the step between cells.
type Line struct {
	Row, Col   int // zero-based start cell
	DRow, DCol int
	Side       Side
}

// one entry per axis; each axis is tried with both signs
var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal /
	{-1, 1}, // diagonal \
}

// FindWinner returns the side owning a four-in-a-row anywhere on the board,
// or Empty when there is none.
func FindWinner(b *Board) Side {
	line, ok := WinningLine(b)
	if !ok {
		return Empty
	}
	return line.Side
}

// WinningLine scans every occupied cell in row-major order starting at the
// bottom-left and returns the first run found. Axes are tried in the order of
// the axes table, positive step before negative.
func WinningLine(b *Board) (Line, bool) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			side := b.grid[row][col]
			if side == Empty {
				continue
			}
			for _, ax := range axes {
				for _, sign := range [2]int{1, -1} {
					dr, dc := ax[0]*sign, ax[1]*sign
					if explore(b, row, col, dr, dc) {
						return Line{Row: row, Col: col, DRow: dr, DCol: dc, Side: side}, true
					}
				}
			}
		}
	}

	return Line{}, false
}

// explore checks Straight cells from (row, col) along (dr, dc) for the same side.
func explore(b *Board, row, col, dr, dc int) bool {
	endRow := row + (Straight-1)*dr
	endCol := col + (Straight-1)*dc
	if !inBounds(endRow, endCol) {
		return false
	}

	side := b.grid[row][col]
	for i := 1; i < Straight; i++ {
		if b.grid[row+i*dr][col+i*dc] != side {
			return false
		}
	}
	return true
}

// Outcome is derived from the board after every move; it is never stored.
type Outcome struct {
	Status GameStatus
	Winner Side
}

func Evaluate(b *Board) Outcome {
	if winner := FindWinner(b); winner != Empty {
		return Outcome{Status: StatusWon, Winner: winner}
	}
	if b.IsBoardFull() {
		return Outcome{Status: StatusDraw, Winner: Empty}
	}
	return Outcome{Status: StatusInProgress, Winner: Empty}
}

func (o Outcome) IsFinished() bool {
	return o.Status == StatusWon || o.Status == StatusDraw
}
