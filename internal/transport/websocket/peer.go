package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-tcp/internal/protocol"
)

const writeWait = 10 * time.Second

// Peer carries moves as text messages holding the decimal column number.
type Peer struct {
	conn        *websocket.Conn
	readTimeout time.Duration
}

func NewPeer(conn *websocket.Conn, readTimeout time.Duration) *Peer {
	return &Peer{conn: conn, readTimeout: readTimeout}
}

func (p *Peer) ReadMove(ctx context.Context) (int, error) {
	if p.readTimeout > 0 {
		p.conn.SetReadDeadline(time.Now().Add(p.readTimeout))
	}
	stop := context.AfterFunc(ctx, func() {
		p.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	msgType, data, err := p.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	if msgType != websocket.TextMessage {
		return 0, fmt.Errorf("%w: binary frame", protocol.ErrMalformedMove)
	}
	return protocol.ParseMove(data)
}

func (p *Peer) WriteMove(_ context.Context, col int) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.TextMessage, protocol.EncodeMove(col))
}

func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

// Close sends a close frame carrying reason and closes the connection.
func (p *Peer) Close(code int, reason string) error {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return p.conn.Close()
}
