package websocket

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
)

const pingPeriod = 30 * time.Second

// Handler upgrades browser connections and plays them against the advisor.
type Handler struct {
	GameService *game.Service
	ReadTimeout time.Duration
	Upgrader    websocket.Upgrader

	// hijacked connections are invisible to http.Server.Shutdown
	wg sync.WaitGroup
}

// NewHandler creates a websocket handler. An empty allowedOrigins list
// accepts every origin.
func NewHandler(gs *game.Service, readTimeout time.Duration, allowedOrigins []string) *Handler {
	return &Handler{
		GameService: gs,
		ReadTimeout: readTimeout,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Printf("[WS] Rejected origin %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wg.Add(1)
	defer h.wg.Done()

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	peer := NewPeer(conn, h.ReadTimeout)
	log.Printf("[WS] Client connected from %s", peer.RemoteAddr())

	// Keep-alive pinger
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	session, outcome, err := h.GameService.PlayRemote(r.Context(), peer, "ws")
	if err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			log.Printf("[WS] Session %s: client left (%d)", session.ID, closeErr.Code)
			peer.Close(websocket.CloseNormalClosure, "")
			return
		}
		log.Printf("[WS] Session %s closed: %v", session.ID, err)
		peer.Close(websocket.ClosePolicyViolation, truncate(err.Error()))
		return
	}
	log.Printf("[WS] Session %s finished: %s", session.ID, outcome.Status)

	peer.Close(websocket.CloseNormalClosure, closeReason(outcome))
}

// Wait blocks until every session started by HandleWebSocket has ended and
// its observers have run. Call it after the HTTP server has shut down.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func closeReason(outcome domain.Outcome) string {
	if outcome.Status == domain.StatusWon {
		return outcome.Winner.String() + " wins"
	}
	return string(outcome.Status)
}

// close frame payloads are limited to 125 bytes, two of which hold the code
func truncate(reason string) string {
	if len(reason) > 123 {
		return reason[:123]
	}
	return reason
}
