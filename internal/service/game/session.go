package game

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// Script holds the lines a session prints around the board.
type Script struct {
	Welcome  string
	Think    string
	Announce string // format, gets the column number
	Wins     map[domain.Side]string
	Draw     string
}

var DefaultScript = Script{
	Welcome:  "Welcome to connect-4 \n\n",
	Think:    "Ok, let's see now....",
	Announce: " I play in column %d\n",
	Wins: map[domain.Side]string{
		domain.Yellow: "Ok, you beat me, beginner's luck!\n",
		domain.Red:    "I guess I have your measure!\n",
	},
	Draw: "An honourable draw\n",
}

// Options configures a single session.
type Options struct {
	ID         string
	Transport  string
	RemoteAddr string
	Yellow     Player
	Red        Player
	// Announce is the side whose moves are narrated with Script.Think/Announce.
	Announce   domain.Side
	Out        io.Writer
	Script     *Script
	ThinkDelay time.Duration
	Observers  []Observer
}

// Session alternates two players over one board until someone wins, the
// board fills up, or a player fails.
type Session struct {
	ID         string
	Transport  string
	RemoteAddr string
	CreatedAt  time.Time

	players    map[domain.Side]Player
	announce   domain.Side
	out        io.Writer
	script     Script
	thinkDelay time.Duration
	observers  []Observer

	mu         sync.RWMutex
	game       *domain.Game
	finished   bool
	finishedAt time.Time
	err        error
}

// Snapshot is a consistent copy of a session's state for readers outside the loop.
type Snapshot struct {
	ID         string
	Transport  string
	RemoteAddr string
	CreatedAt  time.Time
	FinishedAt time.Time
	Board      *domain.Board
	Moves      []domain.Move
	Outcome    domain.Outcome
	Finished   bool
	Err        error
}

func NewSession(opts Options) *Session {
	script := DefaultScript
	if opts.Script != nil {
		script = *opts.Script
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Session{
		ID:         opts.ID,
		Transport:  opts.Transport,
		RemoteAddr: opts.RemoteAddr,
		CreatedAt:  time.Now(),
		players: map[domain.Side]Player{
			domain.Yellow: opts.Yellow,
			domain.Red:    opts.Red,
		},
		announce:   opts.Announce,
		out:        out,
		script:     script,
		thinkDelay: opts.ThinkDelay,
		observers:  opts.Observers,
		game:       domain.NewGame(),
	}
}

// Run plays the session to the end. A player error is fatal for the session
// and is returned together with the outcome reached so far.
func (s *Session) Run(ctx context.Context) (domain.Outcome, error) {
	fmt.Fprint(s.out, s.script.Welcome)
	fmt.Fprint(s.out, domain.Render(s.game.Board))

	for _, o := range s.observers {
		o.SessionStarted(s)
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.finish(err)
		}

		side := s.currentPlayer()
		player := s.players[side]
		if player == nil {
			return s.finish(fmt.Errorf("no player for %s", side))
		}

		col, err := player.NextMove(ctx, s.Board(), side)
		if err != nil {
			return s.finish(err)
		}

		if side == s.announce {
			fmt.Fprint(s.out, s.script.Think)
			if err := sleep(ctx, s.thinkDelay); err != nil {
				return s.finish(err)
			}
			fmt.Fprintf(s.out, s.script.Announce, col)
		}

		move, outcome, err := s.apply(col)
		if err != nil {
			return s.finish(fmt.Errorf("%s played column %d: %w", side, col, err))
		}
		fmt.Fprint(s.out, domain.Render(s.Board()))

		for _, o := range s.observers {
			o.MovePlayed(s, move)
		}

		switch outcome.Status {
		case domain.StatusWon:
			fmt.Fprint(s.out, s.script.Wins[outcome.Winner])
			return s.finish(nil)
		case domain.StatusDraw:
			fmt.Fprint(s.out, s.script.Draw)
			return s.finish(nil)
		}
	}
}

func (s *Session) apply(col int) (domain.Move, domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	move, err := s.game.MakeMove(col)
	if err != nil {
		return domain.Move{}, s.game.Outcome, err
	}
	return move, s.game.Outcome, nil
}

func (s *Session) finish(err error) (domain.Outcome, error) {
	s.mu.Lock()
	s.finished = true
	s.finishedAt = time.Now()
	s.err = err
	outcome := s.game.Outcome
	s.mu.Unlock()

	if err != nil {
		log.Printf("[SESSION] Session %s ended early: %v", s.ID, err)
	}
	for _, o := range s.observers {
		o.SessionFinished(s, outcome, err)
	}
	return outcome, err
}

func (s *Session) currentPlayer() domain.Side {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.CurrentPlayer
}

// Board returns a copy of the current board.
func (s *Session) Board() *domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Board.Clone()
}

func (s *Session) IsFinished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := make([]domain.Move, len(s.game.Moves))
	copy(moves, s.game.Moves)

	return Snapshot{
		ID:         s.ID,
		Transport:  s.Transport,
		RemoteAddr: s.RemoteAddr,
		CreatedAt:  s.CreatedAt,
		FinishedAt: s.finishedAt,
		Board:      s.game.Board.Clone(),
		Moves:      moves,
		Outcome:    s.game.Outcome,
		Finished:   s.finished,
		Err:        s.err,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
