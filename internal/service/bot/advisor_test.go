package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

func drop(t *testing.T, b *domain.Board, side domain.Side, cols ...int) {
	t.Helper()
	for _, col := range cols {
		_, err := b.Apply(col, side)
		require.NoError(t, err)
	}
}

// randomPosition plays n random moves and stops early if someone wins.
func randomPosition(rng *rand.Rand, n int) (*domain.Board, domain.Side) {
	b := domain.NewBoard()
	side := domain.Yellow
	for i := 0; i < n; i++ {
		valid := b.ValidColumns()
		if len(valid) == 0 {
			break
		}
		probe := b.Clone()
		col := valid[rng.Intn(len(valid))]
		_, _ = probe.Apply(col, side)
		if domain.FindWinner(probe) != domain.Empty {
			break
		}
		b = probe
		side = side.Opponent()
	}
	return b, side
}

func TestChooseCompletesHorizontalFour(t *testing.T) {
	b := domain.NewBoard()
	drop(t, b, domain.Red, 1, 2, 3)

	col, err := NewAdvisor(DefaultSeed).Choose(b, domain.Red)
	require.NoError(t, err)
	assert.Equal(t, 4, col)
}

func TestChoosePrefersWinOverBlock(t *testing.T) {
	b := domain.NewBoard()
	drop(t, b, domain.Yellow, 7, 7, 7)
	drop(t, b, domain.Red, 2, 3, 4)

	col, err := NewAdvisor(DefaultSeed).Choose(b, domain.Red)
	require.NoError(t, err)
	// both 1 and 5 win; the lowest column comes first
	assert.Equal(t, 1, col)
}

func TestChooseBlocksOpponent(t *testing.T) {
	b := domain.NewBoard()
	drop(t, b, domain.Yellow, 6, 6, 6)
	drop(t, b, domain.Red, 1, 2)

	col, err := NewAdvisor(DefaultSeed).Choose(b, domain.Red)
	require.NoError(t, err)
	assert.Equal(t, 6, col)
}

func TestChooseBlocksDiagonal(t *testing.T) {
	b := domain.NewBoard()
	drop(t, b, domain.Yellow, 1)
	drop(t, b, domain.Red, 2)
	drop(t, b, domain.Yellow, 2)
	drop(t, b, domain.Red, 3, 3)
	drop(t, b, domain.Yellow, 3, 4)
	drop(t, b, domain.Red, 4, 4)

	col, err := NewAdvisor(DefaultSeed).Choose(b, domain.Red)
	require.NoError(t, err)
	assert.Equal(t, 4, col)
}

func TestChooseLeavesBoardUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	advisor := NewAdvisor(DefaultSeed)

	for i := 0; i < 100; i++ {
		b, side := randomPosition(rng, rng.Intn(30))
		before := b.Grid()

		_, err := advisor.Choose(b, side)
		require.NoError(t, err)
		require.Equal(t, before, b.Grid())
	}
}

func TestChooseNeverPicksFullColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	advisor := NewAdvisor(DefaultSeed)

	for i := 0; i < 300; i++ {
		b, side := randomPosition(rng, 20+rng.Intn(22))
		if b.IsBoardFull() {
			continue
		}
		col, err := advisor.Choose(b, side)
		require.NoError(t, err)
		require.Contains(t, b.ValidColumns(), col)
	}
}

func TestChooseTakesAvailableWin(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	advisor := NewAdvisor(DefaultSeed)
	checked := 0

	for i := 0; i < 500; i++ {
		b, side := randomPosition(rng, rng.Intn(40))
		if _, ok := WinningColumn(b, side); !ok {
			continue
		}
		checked++

		col, err := advisor.Choose(b, side)
		require.NoError(t, err)
		_, err = b.Apply(col, side)
		require.NoError(t, err)
		require.Equal(t, side, domain.FindWinner(b))
	}
	assert.Positive(t, checked)
}

func TestChooseOnFullBoard(t *testing.T) {
	b := domain.NewBoard()
	for col := 1; col <= domain.Columns; col++ {
		for row := 0; row < domain.Rows; row++ {
			side := domain.Yellow
			if (col-1+row/2)%2 == 1 {
				side = domain.Red
			}
			drop(t, b, side, col)
		}
	}

	_, err := NewAdvisor(DefaultSeed).Choose(b, domain.Red)
	assert.ErrorIs(t, err, domain.ErrBoardFull)
}

func TestChooseRejectsEmptySide(t *testing.T) {
	_, err := NewAdvisor(DefaultSeed).Choose(domain.NewBoard(), domain.Empty)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
}

func TestChooseIsDeterministicForSeed(t *testing.T) {
	a1 := NewAdvisor(99)
	a2 := NewAdvisor(99)
	b := domain.NewBoard()

	for i := 0; i < 10; i++ {
		c1, err := a1.Choose(b, domain.Red)
		require.NoError(t, err)
		c2, err := a2.Choose(b, domain.Red)
		require.NoError(t, err)
		assert.Equal(t, c1, c2)
	}
}

func TestChooseRandomFallbackCoversOpenColumns(t *testing.T) {
	b := domain.NewBoard()
	drop(t, b, domain.Yellow, 2, 2, 2)
	drop(t, b, domain.Red, 2, 2, 2)

	advisor := NewAdvisor(DefaultSeed)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		col, err := advisor.Choose(b, domain.Red)
		require.NoError(t, err)
		seen[col] = true
	}

	assert.Len(t, seen, domain.Columns-1)
	assert.False(t, seen[2])
}
