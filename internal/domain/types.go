package domain

// Side is the marker occupying a cell.
type Side int

const (
	Empty  Side = 0
	Yellow Side = 1 // moves first
	Red    Side = 2
)

const (
	Rows     = 6
	Columns  = 7
	Straight = 4
)

// Marker returns the one-character marker used when rendering the board.
func (s Side) Marker() byte {
	switch s {
	case Yellow:
		return 'Y'
	case Red:
		return 'R'
	default:
		return ' '
	}
}

func (s Side) String() string {
	switch s {
	case Yellow:
		return "YELLOW"
	case Red:
		return "RED"
	default:
		return "EMPTY"
	}
}

// Opponent returns the other playing side. Empty has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Yellow:
		return Red
	case Red:
		return Yellow
	default:
		return Empty
	}
}

// IsPlayer reports whether s is one of the two playing sides.
func (s Side) IsPlayer() bool {
	return s == Yellow || s == Red
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
	StatusAborted    GameStatus = "aborted" // stored records only
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove  Error = "invalid move"
	ErrColumnFull   Error = "column is full"
	ErrInvalidState Error = "invalid board state"
	ErrBoardFull    Error = "board is full"
)
