package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/protocol"
	"github.com/iamasit07/connect4-tcp/internal/service/bot"
)

const (
	promptColumn = "Enter column number: "
	promptRetry  = "That move is not possible. "
)

// Player supplies the next column (1-based) for side. The board passed in is
// a copy; players never mutate the session's board.
type Player interface {
	NextMove(ctx context.Context, board *domain.Board, side domain.Side) (int, error)
}

// Peer is the remote end of a networked session.
type Peer interface {
	ReadMove(ctx context.Context) (int, error)
	WriteMove(ctx context.Context, col int) error
	RemoteAddr() string
}

// AdvisorPlayer lets the move advisor play a side.
type AdvisorPlayer struct {
	Advisor *bot.Advisor
}

func NewAdvisorPlayer(seed int64) *AdvisorPlayer {
	return &AdvisorPlayer{Advisor: bot.NewAdvisor(seed)}
}

func (p *AdvisorPlayer) NextMove(_ context.Context, board *domain.Board, side domain.Side) (int, error) {
	return p.Advisor.Choose(board, side)
}

// TerminalPlayer prompts a person for a column and asks again until the
// answer is a column that can take a marker. Input is read a word at a time,
// so several moves may be typed on one line.
type TerminalPlayer struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewTerminalPlayer(in io.Reader, out io.Writer) *TerminalPlayer {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &TerminalPlayer{in: sc, out: out}
}

func (p *TerminalPlayer) NextMove(ctx context.Context, board *domain.Board, _ domain.Side) (int, error) {
	prompt := promptColumn
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		fmt.Fprint(p.out, prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}

		col, err := protocol.ParseMove(p.in.Bytes())
		if err == nil && !board.IsColumnFull(col) {
			return col, nil
		}
		prompt = promptRetry + promptColumn
	}
}

// RemotePlayer reads the side's moves from a peer. Anything the peer sends
// that is not a playable column ends the session.
type RemotePlayer struct {
	Peer Peer
}

func (p *RemotePlayer) NextMove(ctx context.Context, board *domain.Board, side domain.Side) (int, error) {
	col, err := p.Peer.ReadMove(ctx)
	if err != nil {
		if errors.Is(err, protocol.ErrMalformedMove) || errors.Is(err, domain.ErrInvalidMove) {
			return 0, fmt.Errorf("peer %s: %w", p.Peer.RemoteAddr(), err)
		}
		return 0, fmt.Errorf("reading %s move from %s: %w", side, p.Peer.RemoteAddr(), err)
	}
	if board.IsColumnFull(col) {
		return 0, fmt.Errorf("peer %s sent column %d: %w", p.Peer.RemoteAddr(), col, domain.ErrColumnFull)
	}
	return col, nil
}

// Relay lets a local player choose and forwards the choice to the peer
// before the move is applied.
type Relay struct {
	Player Player
	Peer   Peer
}

func (r *Relay) NextMove(ctx context.Context, board *domain.Board, side domain.Side) (int, error) {
	col, err := r.Player.NextMove(ctx, board, side)
	if err != nil {
		return 0, err
	}
	if err := r.Peer.WriteMove(ctx, col); err != nil {
		return 0, fmt.Errorf("sending move to %s: %w", r.Peer.RemoteAddr(), err)
	}
	return col, nil
}
