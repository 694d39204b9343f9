package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/service/game"
)

// GameHistory is the part of the game store the worker prunes.
type GameHistory interface {
	DeleteGamesOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Worker struct {
	SessionManager *game.SessionManager
	History        GameHistory // nil when no database is configured

	Interval    time.Duration
	FinishedTTL time.Duration
	StaleTTL    time.Duration
	Retention   time.Duration
}

func NewWorker(sm *game.SessionManager, history GameHistory, interval, retention time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		History:        history,
		Interval:       interval,
		FinishedTTL:    10 * time.Minute,
		StaleTTL:       24 * time.Hour,
		Retention:      retention,
	}
}

// Start runs a cleanup right away and then every Interval until ctx ends.
func (w *Worker) Start(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	w.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Println("[CLEANUP] Background worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes the actual cleanup logic
func (w *Worker) RunOnce(ctx context.Context) {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")

	w.SessionManager.CleanupOldSessions(w.FinishedTTL, w.StaleTTL)

	if w.History == nil || w.Retention <= 0 {
		return
	}
	deletedCount, err := w.History.DeleteGamesOlderThan(ctx, time.Now().Add(-w.Retention))
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up stored games: %v", err)
		return
	}
	if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d old games from database", deletedCount)
	}
}
