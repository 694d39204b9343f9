package tcp

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/protocol"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
)

// Server accepts players and runs one advisor session per connection.
type Server struct {
	Addr        string
	Service     *game.Service
	Framing     protocol.Framing
	ReadTimeout time.Duration

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

func NewServer(addr string, svc *game.Service, framing protocol.Framing, readTimeout time.Duration) *Server {
	return &Server{
		Addr:        addr,
		Service:     svc,
		Framing:     framing,
		ReadTimeout: readTimeout,
		conns:       make(map[net.Conn]struct{}),
	}
}

// ListenAndServe listens on Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes every
// open connection and waits for their sessions to end.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Printf("[TCP] Listening on %s (%s framing)", ln.Addr(), s.Framing)

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.shutdown()
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else if tempDelay *= 2; tempDelay > time.Second {
					tempDelay = time.Second
				}
				log.Printf("[TCP] Accept error: %v; retrying in %v", err, tempDelay)
				time.Sleep(tempDelay)
				continue
			}
			s.shutdown()
			return err
		}
		tempDelay = 0

		s.track(conn, true)
		s.wg.Add(1)
		go s.handle(ctx, conn)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer s.track(conn, false)
	defer conn.Close()

	peer := NewPeer(conn, s.Framing, s.ReadTimeout)
	log.Printf("[TCP] Client connected from %s", peer.RemoteAddr())

	session, outcome, err := s.Service.PlayRemote(ctx, peer, "tcp")
	if err != nil {
		log.Printf("[TCP] Session %s with %s closed: %v", session.ID, peer.RemoteAddr(), err)
		return
	}
	log.Printf("[TCP] Session %s with %s finished: %s", session.ID, peer.RemoteAddr(), outcome.Status)
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

func (s *Server) shutdown() {
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("[TCP] Server stopped")
}
