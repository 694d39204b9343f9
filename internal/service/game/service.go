package game

import (
	"context"
	"io"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// Service is the entry point the transports use: it pairs a remote peer with
// the advisor and plays the session out.
type Service struct {
	Sessions   *SessionManager
	Observers  []Observer
	Seed       int64
	ThinkDelay time.Duration
	// Out receives the rendered boards of every session; nil discards them.
	Out io.Writer
}

func NewService(sm *SessionManager, seed int64, observers ...Observer) *Service {
	return &Service{
		Sessions:  sm,
		Observers: observers,
		Seed:      seed,
	}
}

// PlayRemote runs one session where the peer plays YELLOW and moves first,
// and the advisor answers as RED. The session stays registered after it ends
// so spectators can see the final board until cleanup removes it.
func (s *Service) PlayRemote(ctx context.Context, peer Peer, transport string) (*Session, domain.Outcome, error) {
	session := s.Sessions.CreateSession(Options{
		Transport:  transport,
		RemoteAddr: peer.RemoteAddr(),
		Yellow:     &RemotePlayer{Peer: peer},
		Red:        &Relay{Player: NewAdvisorPlayer(s.Seed), Peer: peer},
		Announce:   domain.Red,
		Out:        s.Out,
		ThinkDelay: s.ThinkDelay,
		Observers:  s.Observers,
	})

	outcome, err := session.Run(ctx)
	return session, outcome, err
}
