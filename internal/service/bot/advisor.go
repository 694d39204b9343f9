package bot

import (
	"fmt"
	"math/rand"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// DefaultSeed makes a fresh advisor replay the same random choices.
const DefaultSeed int64 = 876545678

// Advisor picks columns for the automated side: win if possible, otherwise
// block the opponent's immediate win, otherwise any open column at random.
// An Advisor is owned by a single session and is not safe for concurrent use.
type Advisor struct {
	rng *rand.Rand
}

func NewAdvisor(seed int64) *Advisor {
	return &Advisor{rng: rand.New(rand.NewSource(seed))}
}

// Choose returns the column side should play. The board is never modified.
func (a *Advisor) Choose(board *domain.Board, side domain.Side) (int, error) {
	if !side.IsPlayer() {
		return 0, fmt.Errorf("advisor cannot play %s: %w", side, domain.ErrInvalidMove)
	}

	validColumns := board.ValidColumns()
	if len(validColumns) == 0 {
		return 0, domain.ErrBoardFull
	}

	if col, ok := WinningColumn(board, side); ok {
		return col, nil
	}

	// the opponent's winning square is where our own marker goes
	if col, ok := WinningColumn(board, side.Opponent()); ok {
		return col, nil
	}

	return validColumns[a.rng.Intn(len(validColumns))], nil
}

// WinningColumn returns the lowest column where a marker for side completes a
// four-in-a-row. Each probe runs on a copy of the board.
func WinningColumn(board *domain.Board, side domain.Side) (int, bool) {
	for _, col := range board.ValidColumns() {
		probe := *board
		if _, err := probe.Apply(col, side); err != nil {
			continue
		}
		if domain.FindWinner(&probe) == side {
			return col, true
		}
	}

	return 0, false
}
