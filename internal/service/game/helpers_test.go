package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// drawSequence fills the board alternating YELLOW and RED without a line of four.
var drawSequence = []int{
	1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 5, 3, 3, 3, 3, 3, 3, 4, 4,
	4, 4, 4, 4, 5, 5, 5, 5, 5, 6, 6, 6, 6, 6, 7, 7, 7, 7, 7, 7, 6,
}

// scriptedPlayer plays a fixed list of columns, then fails with io.EOF.
type scriptedPlayer struct {
	cols []int
	next int
}

func script(cols ...int) *scriptedPlayer {
	return &scriptedPlayer{cols: cols}
}

func (p *scriptedPlayer) NextMove(context.Context, *domain.Board, domain.Side) (int, error) {
	if p.next >= len(p.cols) {
		return 0, io.EOF
	}
	col := p.cols[p.next]
	p.next++
	return col, nil
}

// split deals an alternating move list out to the two sides.
func split(moves []int) (yellow, red *scriptedPlayer) {
	yellow, red = script(), script()
	for i, col := range moves {
		if i%2 == 0 {
			yellow.cols = append(yellow.cols, col)
		} else {
			red.cols = append(red.cols, col)
		}
	}
	return yellow, red
}

type failingPlayer struct{ err error }

func (p failingPlayer) NextMove(context.Context, *domain.Board, domain.Side) (int, error) {
	return 0, p.err
}

// fakePeer hands out queued messages and records what the session sends.
type fakePeer struct {
	mu       sync.Mutex
	incoming []int
	readErr  error
	writeErr error
	written  []int
}

func (p *fakePeer) ReadMove(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.incoming) == 0 {
		if p.readErr != nil {
			return 0, p.readErr
		}
		return 0, io.EOF
	}
	col := p.incoming[0]
	p.incoming = p.incoming[1:]
	if err := domain.ValidateColumn(col); err != nil {
		return 0, fmt.Errorf("column %d: %w", col, err)
	}
	return col, nil
}

func (p *fakePeer) WriteMove(_ context.Context, col int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writeErr != nil {
		return p.writeErr
	}
	p.written = append(p.written, col)
	return nil
}

func (p *fakePeer) RemoteAddr() string {
	return "192.0.2.10:40000"
}

func (p *fakePeer) sent() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.written...)
}

// recordingObserver keeps every notification it receives.
type recordingObserver struct {
	mu       sync.Mutex
	started  int
	moves    []domain.Move
	finished int
	outcome  domain.Outcome
	err      error
}

func (o *recordingObserver) SessionStarted(*Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) MovePlayed(_ *Session, move domain.Move) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moves = append(o.moves, move)
}

func (o *recordingObserver) SessionFinished(_ *Session, outcome domain.Outcome, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished++
	o.outcome = outcome
	o.err = err
}

type fakeGameRepo struct {
	mu      sync.Mutex
	records []domain.GameRecord
	err     error
}

func (r *fakeGameRepo) SaveGame(_ context.Context, record domain.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = fmt.Sprint(value)
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type lineJournal struct {
	lines []string
}

func (j *lineJournal) Printf(format string, args ...interface{}) {
	j.lines = append(j.lines, fmt.Sprintf(format, args...))
}
