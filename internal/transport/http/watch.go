package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/repository/redis"
	"github.com/iamasit07/connect4-tcp/internal/service/game"
)

// WatchHandler serves the sessions currently being played.
type WatchHandler struct {
	SessionManager *game.SessionManager
	Cache          game.CacheRepository // optional
}

func NewWatchHandler(sm *game.SessionManager, cache game.CacheRepository) *WatchHandler {
	return &WatchHandler{SessionManager: sm, Cache: cache}
}

type liveGameResponse struct {
	GameID     string      `json:"gameId"`
	Transport  string      `json:"transport"`
	RemoteAddr string      `json:"remoteAddr"`
	MoveCount  int         `json:"moveCount"`
	ToMove     domain.Side `json:"toMove"`
	StartedAt  string      `json:"startedAt"`
}

type boardResponse struct {
	GameID   string          `json:"gameId"`
	Board    string          `json:"board"`
	Source   string          `json:"source"`
	Finished bool            `json:"finished"`
	Outcome  *domain.Outcome `json:"outcome,omitempty"`
	Moves    []domain.Move   `json:"moves,omitempty"`
}

// GetLiveGames returns all sessions that have not finished yet
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	active := h.SessionManager.ActiveSessions()

	response := make([]liveGameResponse, 0, len(active))
	for _, snap := range active {
		toMove := domain.Yellow
		if len(snap.Moves)%2 == 1 {
			toMove = domain.Red
		}
		response = append(response, liveGameResponse{
			GameID:     snap.ID,
			Transport:  snap.Transport,
			RemoteAddr: snap.RemoteAddr,
			MoveCount:  len(snap.Moves),
			ToMove:     toMove,
			StartedAt:  snap.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetLiveBoard returns one session's board. Sessions this process no longer
// holds are looked up in the snapshot cache.
func (h *WatchHandler) GetLiveBoard(c *gin.Context) {
	gameID := c.Param("id")

	if session, ok := h.SessionManager.GetSession(gameID); ok {
		snap := session.Snapshot()
		outcome := snap.Outcome
		c.JSON(http.StatusOK, boardResponse{
			GameID:   snap.ID,
			Board:    domain.Render(snap.Board),
			Source:   "memory",
			Finished: snap.Finished,
			Outcome:  &outcome,
			Moves:    snap.Moves,
		})
		return
	}

	if h.Cache != nil {
		board, err := h.Cache.Get(c.Request.Context(), game.BoardKey(gameID))
		if err == nil {
			c.JSON(http.StatusOK, boardResponse{GameID: gameID, Board: board, Source: "cache"})
			return
		}
		if !redis.IsMiss(err) {
			log.Printf("[REDIS] Failed to read board for session %s: %v", gameID, err)
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
}
