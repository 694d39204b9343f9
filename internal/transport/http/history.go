package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-tcp/internal/domain"
	"github.com/iamasit07/connect4-tcp/internal/repository/postgres"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// GameStore is the read side of the finished-game store.
type GameStore interface {
	ListGames(ctx context.Context, limit int) ([]postgres.GameSummary, error)
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
}

type HistoryHandler struct {
	Games GameStore
}

func NewHistoryHandler(games GameStore) *HistoryHandler {
	return &HistoryHandler{Games: games}
}

// GetHistory lists finished games, newest first. ?limit= caps the result.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.Games.ListGames(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, games)
}

type gameDetailsResponse struct {
	domain.GameRecord
	Rendered string `json:"rendered"`
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	gameID := c.Param("id")

	record, err := h.Games.GetGameByID(c.Request.Context(), gameID)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch game %s: %v", gameID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	board, err := domain.BoardFromGrid(record.Board)
	if err != nil {
		log.Printf("[HTTP] Game %s has a corrupt board: %v", gameID, err)
		c.JSON(http.StatusOK, gameDetailsResponse{GameRecord: *record})
		return
	}
	c.JSON(http.StatusOK, gameDetailsResponse{GameRecord: *record, Rendered: domain.Render(board)})
}
