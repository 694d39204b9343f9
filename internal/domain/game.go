package domain

// Move is one applied column drop. Row is resolved at apply time.
type Move struct {
	Side   Side `json:"side"`
	Column int  `json:"column"`
	Row    int  `json:"row"`
}

// Game tracks one board plus the turn order and the moves played so far.
type Game struct {
	Board         *Board
	CurrentPlayer Side
	Moves         []Move
	Outcome       Outcome
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Yellow,
		Outcome:       Outcome{Status: StatusInProgress},
	}
}

// MakeMove applies the current player's move, updates the outcome and passes
// the turn on. A rejected move leaves the game untouched.
func (g *Game) MakeMove(column int) (Move, error) {
	if g.Outcome.IsFinished() {
		return Move{}, ErrInvalidMove
	}

	row, err := g.Board.Apply(column, g.CurrentPlayer)
	if err != nil {
		return Move{}, err
	}

	move := Move{Side: g.CurrentPlayer, Column: column, Row: row}
	g.Moves = append(g.Moves, move)
	g.Outcome = Evaluate(g.Board)

	if !g.Outcome.IsFinished() {
		g.CurrentPlayer = g.CurrentPlayer.Opponent()
	}

	return move, nil
}

func (g *Game) IsFinished() bool {
	return g.Outcome.IsFinished()
}
