package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drop applies side in every given column, failing the test on error.
func drop(t *testing.T, b *Board, side Side, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := b.Apply(col, side)
		require.NoError(t, err, "apply %s in column %d", side, col)
	}
}

// drawBoard fills every cell without leaving any four-in-a-row.
func drawBoard(t *testing.T) *Board {
	t.Helper()
	b := NewBoard()
	for col := 1; col <= Columns; col++ {
		for row := 0; row < Rows; row++ {
			side := Yellow
			if (col-1+row/2)%2 == 1 {
				side = Red
			}
			drop(t, b, side, col)
		}
	}
	return b
}

func assertGravity(t *testing.T, b *Board) {
	t.Helper()
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			if b.Cell(row, col) == Empty {
				seenEmpty = true
				continue
			}
			require.False(t, seenEmpty, "floating marker at row %d column %d", row, col+1)
		}
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard()
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			assert.Equal(t, Empty, b.Cell(row, col))
		}
	}
	assert.False(t, b.IsBoardFull())
	assert.Equal(t, 0, b.MoveCount())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, b.ValidColumns())
}

func TestApplyStacksFromBottom(t *testing.T) {
	b := NewBoard()

	row, err := b.Apply(3, Yellow)
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	row, err = b.Apply(3, Red)
	require.NoError(t, err)
	assert.Equal(t, 1, row)

	assert.Equal(t, Yellow, b.Cell(0, 2))
	assert.Equal(t, Red, b.Cell(1, 2))
	assert.Equal(t, 2, b.Height(3))
	assert.Equal(t, 2, b.MoveCount())
}

func TestApplyRejectsBadInput(t *testing.T) {
	b := NewBoard()

	for _, col := range []int{-1, 0, Columns + 1, 100} {
		_, err := b.Apply(col, Yellow)
		assert.ErrorIs(t, err, ErrInvalidMove, "column %d", col)
	}

	_, err := b.Apply(1, Empty)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, 0, b.MoveCount())
}

func TestApplyOnFullColumnLeavesBoardUnchanged(t *testing.T) {
	b := NewBoard()
	drop(t, b, Yellow, 5, 5, 5)
	drop(t, b, Red, 5, 5, 5)
	require.True(t, b.IsColumnFull(5))

	before := b.Grid()
	row, err := b.Apply(5, Yellow)

	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, -1, row)
	assert.Equal(t, before, b.Grid())
	assert.NotContains(t, b.ValidColumns(), 5)
}

func TestRevertRemovesTopMarker(t *testing.T) {
	b := NewBoard()
	drop(t, b, Yellow, 2)
	drop(t, b, Red, 2)

	require.NoError(t, b.Revert(2))
	assert.Equal(t, Yellow, b.Cell(0, 1))
	assert.Equal(t, Empty, b.Cell(1, 1))
	assert.Equal(t, 1, b.Height(2))
}

func TestRevertOnEmptyColumnFails(t *testing.T) {
	b := NewBoard()
	drop(t, b, Yellow, 1)

	assert.ErrorIs(t, b.Revert(4), ErrInvalidState)
	assert.ErrorIs(t, b.Revert(0), ErrInvalidMove)
	assert.Equal(t, 1, b.MoveCount())
}

func TestRevertOnFullColumn(t *testing.T) {
	b := NewBoard()
	drop(t, b, Red, 7, 7, 7, 7, 7, 7)

	require.NoError(t, b.Revert(7))
	assert.Equal(t, Empty, b.Cell(Rows-1, 6))
	assert.False(t, b.IsColumnFull(7))
}

func TestApplyRevertInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBoard()

	for i := 0; i < 200; i++ {
		valid := b.ValidColumns()
		if len(valid) == 0 {
			b = NewBoard()
			continue
		}
		col := valid[rng.Intn(len(valid))]
		side := Side(1 + rng.Intn(2))

		before := b.Grid()
		_, err := b.Apply(col, side)
		require.NoError(t, err)
		require.NoError(t, b.Revert(col))
		require.Equal(t, before, b.Grid(), "apply/revert in column %d", col)

		// keep the position moving
		drop(t, b, side, col)
		assertGravity(t, b)
	}
}

func TestGravityHoldsForRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 20; game++ {
		b := NewBoard()
		side := Yellow
		for !b.IsBoardFull() {
			col := 1 + rng.Intn(Columns)
			if _, err := b.Apply(col, side); err != nil {
				require.ErrorIs(t, err, ErrColumnFull)
				continue
			}
			side = side.Opponent()
			assertGravity(t, b)
		}
		assert.Empty(t, b.ValidColumns())
	}
}

func TestIsBoardFull(t *testing.T) {
	b := drawBoard(t)
	assert.True(t, b.IsBoardFull())
	assert.Equal(t, Rows*Columns, b.MoveCount())

	require.NoError(t, b.Revert(4))
	assert.False(t, b.IsBoardFull())
	assert.Equal(t, []int{4}, b.ValidColumns())
}

func TestIsColumnFullOutsideBoard(t *testing.T) {
	b := NewBoard()
	for _, col := range []int{-1, 0, Columns + 1, 100} {
		assert.True(t, b.IsColumnFull(col), "column %d", col)
		assert.Zero(t, b.Height(col), "column %d", col)
	}
	assert.False(t, b.IsColumnFull(1))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	drop(t, b, Yellow, 1)

	c := b.Clone()
	drop(t, c, Red, 1, 2)

	assert.Equal(t, 1, b.MoveCount())
	assert.Equal(t, 3, c.MoveCount())
}

func TestSideHelpers(t *testing.T) {
	assert.Equal(t, Red, Yellow.Opponent())
	assert.Equal(t, Yellow, Red.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	assert.Equal(t, byte('Y'), Yellow.Marker())
	assert.Equal(t, byte('R'), Red.Marker())
	assert.Equal(t, byte(' '), Empty.Marker())
	assert.False(t, Empty.IsPlayer())
}

func TestBoardFromGrid(t *testing.T) {
	b := NewBoard()
	drop(t, b, Yellow, 1, 1, 4)
	drop(t, b, Red, 7)

	rebuilt, err := BoardFromGrid(b.Grid())
	require.NoError(t, err)
	assert.Equal(t, b, rebuilt)

	floating := b.Grid()
	floating[3][5] = Red
	_, err = BoardFromGrid(floating)
	assert.ErrorIs(t, err, ErrInvalidState)

	unknown := b.Grid()
	unknown[0][2] = Side(9)
	_, err = BoardFromGrid(unknown)
	assert.ErrorIs(t, err, ErrInvalidState)
}
