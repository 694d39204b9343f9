package tcp

import (
	"context"
	"net"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/protocol"
)

// Peer speaks the move protocol over one TCP connection.
type Peer struct {
	conn        net.Conn
	codec       *protocol.Codec
	readTimeout time.Duration
}

func NewPeer(conn net.Conn, framing protocol.Framing, readTimeout time.Duration) *Peer {
	return &Peer{
		conn:        conn,
		codec:       protocol.NewCodec(conn, framing),
		readTimeout: readTimeout,
	}
}

// Dial connects to a game server.
func Dial(ctx context.Context, addr string, framing protocol.Framing, readTimeout time.Duration) (*Peer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewPeer(conn, framing, readTimeout), nil
}

// ReadMove waits for the next move. The wait ends at the read timeout, the
// context deadline or context cancellation, whichever comes first.
func (p *Peer) ReadMove(ctx context.Context) (int, error) {
	p.conn.SetReadDeadline(p.deadline(ctx, p.readTimeout))
	stop := context.AfterFunc(ctx, func() {
		p.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	col, err := p.codec.ReadMove()
	if err != nil && ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return col, err
}

func (p *Peer) WriteMove(ctx context.Context, col int) error {
	p.conn.SetWriteDeadline(p.deadline(ctx, 0))
	stop := context.AfterFunc(ctx, func() {
		p.conn.SetWriteDeadline(time.Now())
	})
	defer stop()

	err := p.codec.WriteMove(col)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (p *Peer) deadline(ctx context.Context, timeout time.Duration) time.Time {
	var d time.Time
	if timeout > 0 {
		d = time.Now().Add(timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (d.IsZero() || ctxDeadline.Before(d)) {
		d = ctxDeadline
	}
	return d
}

func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

func (p *Peer) Close() error {
	return p.conn.Close()
}
