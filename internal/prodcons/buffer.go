package prodcons

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultCapacity = 5
	MaxProducers    = 20
	MaxConsumers    = 20
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrBufferFull  Error = "buffer is full"
	ErrBufferEmpty Error = "buffer is empty"
)

// Buffer is a bounded FIFO of items shared by any number of producers and
// consumers. The channel is the only synchronization.
type Buffer struct {
	items chan int
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{items: make(chan int, capacity)}
}

// Insert waits for room in the buffer.
func (b *Buffer) Insert(ctx context.Context, item int) error {
	select {
	case b.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Remove waits for an item.
func (b *Buffer) Remove(ctx context.Context) (int, error) {
	select {
	case item := <-b.items:
		return item, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// TryInsert adds item only if there is room right now.
func (b *Buffer) TryInsert(item int) error {
	select {
	case b.items <- item:
		return nil
	default:
		return ErrBufferFull
	}
}

// TryRemove takes an item only if one is waiting right now.
func (b *Buffer) TryRemove() (int, error) {
	select {
	case item := <-b.items:
		return item, nil
	default:
		return 0, ErrBufferEmpty
	}
}

func (b *Buffer) Len() int { return len(b.items) }

func (b *Buffer) Cap() int { return cap(b.items) }

// Stats counts the items that went through the buffer during Run.
type Stats struct {
	Produced int64
	Consumed int64
}

// Run starts the producers and consumers and returns once ctx is done and
// every worker has stopped. Each producer draws its items from its own
// generator seeded with seed plus its index. logf may be nil.
func Run(ctx context.Context, buf *Buffer, producers, consumers int, seed int64, logf func(format string, args ...interface{})) (Stats, error) {
	if producers < 0 || producers > MaxProducers {
		return Stats{}, fmt.Errorf("producers must be between 0 and %d, got %d", MaxProducers, producers)
	}
	if consumers < 0 || consumers > MaxConsumers {
		return Stats{}, fmt.Errorf("consumers must be between 0 and %d, got %d", MaxConsumers, consumers)
	}
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	var produced, consumed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < producers; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		g.Go(func() error {
			for {
				item := rng.Int()
				if err := buf.Insert(gctx, item); err != nil {
					return nil
				}
				produced.Add(1)
				logf("Producer produced %d", item)
			}
		})
	}

	for i := 0; i < consumers; i++ {
		g.Go(func() error {
			for {
				item, err := buf.Remove(gctx)
				if err != nil {
					return nil
				}
				consumed.Add(1)
				logf("Consumer consumed %d", item)
			}
		})
	}

	err := g.Wait()
	return Stats{Produced: produced.Load(), Consumed: consumed.Load()}, err
}
