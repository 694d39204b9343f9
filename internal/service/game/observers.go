package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// Observer is notified as a session progresses. Calls come from the session's
// own goroutine and must not block for long.
type Observer interface {
	SessionStarted(s *Session)
	MovePlayed(s *Session, move domain.Move)
	SessionFinished(s *Session, outcome domain.Outcome, err error)
}

type GameRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Journal receives one formatted line per call.
type Journal interface {
	Printf(format string, args ...interface{})
}

// JournalObserver writes the per-session connection log: who connected and
// every move exchanged. ServerSide is the side played on this host.
type JournalObserver struct {
	Journal    Journal
	ServerSide domain.Side
	Now        func() time.Time
}

func (j *JournalObserver) stamp() string {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	return now().Format(time.ANSIC)
}

func (j *JournalObserver) SessionStarted(s *Session) {
	j.Journal.Printf("[%s] (%s) (session %s) client connected", j.stamp(), s.RemoteAddr, s.ID)
}

func (j *JournalObserver) MovePlayed(s *Session, move domain.Move) {
	if move.Side == j.ServerSide {
		j.Journal.Printf("[%s] (0.0.0.0) (session %s) server's move=%d", j.stamp(), s.ID, move.Column)
		return
	}
	j.Journal.Printf("[%s] (%s) (session %s) client's move=%d", j.stamp(), s.RemoteAddr, s.ID, move.Column)
}

func (j *JournalObserver) SessionFinished(s *Session, outcome domain.Outcome, err error) {
	j.Journal.Printf("[%s] (%s) (session %s) %s", j.stamp(), s.RemoteAddr, s.ID, describe(outcome, err))
}

func describe(outcome domain.Outcome, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("session aborted: %v", err)
	case outcome.Status == domain.StatusWon:
		return fmt.Sprintf("game over, %s wins", outcome.Winner)
	case outcome.Status == domain.StatusDraw:
		return "game over, draw"
	default:
		return "session closed"
	}
}

// RecorderObserver stores finished games. Saves run in the background so the
// session can close its connection right away; Wait blocks until they are done.
type RecorderObserver struct {
	Repo    GameRepository
	Timeout time.Duration

	wg sync.WaitGroup
}

func (r *RecorderObserver) SessionStarted(*Session) {}

func (r *RecorderObserver) MovePlayed(*Session, domain.Move) {}

func (r *RecorderObserver) SessionFinished(s *Session, _ domain.Outcome, _ error) {
	record := NewGameRecord(s.Snapshot())

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		timeout := r.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := r.Repo.SaveGame(ctx, record); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", record.ID, err)
			return
		}
		log.Printf("[GAME] Game %s saved successfully", record.ID)
	}()
}

func (r *RecorderObserver) Wait() {
	r.wg.Wait()
}

// NewGameRecord converts a finished session into its stored form.
func NewGameRecord(snap Snapshot) domain.GameRecord {
	record := domain.GameRecord{
		ID:         snap.ID,
		Transport:  snap.Transport,
		RemoteAddr: snap.RemoteAddr,
		Status:     snap.Outcome.Status,
		Winner:     snap.Outcome.Winner,
		Moves:      snap.Moves,
		Board:      snap.Board.Grid(),
		CreatedAt:  snap.CreatedAt,
		FinishedAt: snap.FinishedAt,
	}
	if snap.Err != nil {
		record.Status = domain.StatusAborted
		record.Reason = snap.Err.Error()
	}
	return record
}

// SnapshotObserver mirrors every live board into the cache so spectators can
// read it without touching the session.
type SnapshotObserver struct {
	Cache CacheRepository
	TTL   time.Duration
}

func BoardKey(sessionID string) string {
	return "session:" + sessionID + ":board"
}

func (o *SnapshotObserver) put(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := o.Cache.Set(ctx, BoardKey(s.ID), domain.Render(s.Board()), o.TTL); err != nil {
		log.Printf("[REDIS] Failed to cache board for session %s: %v", s.ID, err)
	}
}

func (o *SnapshotObserver) SessionStarted(s *Session) { o.put(s) }

func (o *SnapshotObserver) MovePlayed(s *Session, _ domain.Move) { o.put(s) }

func (o *SnapshotObserver) SessionFinished(s *Session, _ domain.Outcome, _ error) { o.put(s) }
