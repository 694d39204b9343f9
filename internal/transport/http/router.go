package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-tcp/internal/service/game"
	"github.com/iamasit07/connect4-tcp/internal/transport/http/middleware"
)

// RouterConfig lists what the HTTP side-car serves. Games and WebSocket are
// optional; their routes are only registered when set.
type RouterConfig struct {
	Sessions       *game.SessionManager
	Cache          game.CacheRepository
	Games          GameStore
	WebSocket      http.HandlerFunc
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": cfg.Sessions.Count(),
			"active":   len(cfg.Sessions.ActiveSessions()),
		})
	})

	watchHandler := NewWatchHandler(cfg.Sessions, cfg.Cache)
	router.GET("/api/live", watchHandler.GetLiveGames)
	router.GET("/api/live/:id", watchHandler.GetLiveBoard)

	if cfg.Games != nil {
		historyHandler := NewHistoryHandler(cfg.Games)
		router.GET("/api/history", historyHandler.GetHistory)
		router.GET("/api/history/:id", historyHandler.GetGameDetails)
	}

	if cfg.WebSocket != nil {
		router.GET("/ws", gin.WrapF(cfg.WebSocket))
	}

	return router
}
