package prodcons

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryInsertAndRemove(t *testing.T) {
	buf := NewBuffer(DefaultCapacity)

	_, err := buf.TryRemove()
	assert.ErrorIs(t, err, ErrBufferEmpty)

	for i := 1; i <= DefaultCapacity; i++ {
		require.NoError(t, buf.TryInsert(i))
	}
	assert.ErrorIs(t, buf.TryInsert(99), ErrBufferFull)
	assert.Equal(t, DefaultCapacity, buf.Len())

	for i := 1; i <= DefaultCapacity; i++ {
		item, err := buf.TryRemove()
		require.NoError(t, err)
		assert.Equal(t, i, item)
	}
}

func TestNewBufferDefaultsCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewBuffer(0).Cap())
	assert.Equal(t, 2, NewBuffer(2).Cap())
}

func TestInsertBlocksUntilCancelled(t *testing.T) {
	buf := NewBuffer(1)
	require.NoError(t, buf.Insert(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, buf.Insert(ctx, 2), context.DeadlineExceeded)

	_, err := NewBuffer(1).Remove(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBlockingHandoff(t *testing.T) {
	buf := NewBuffer(1)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.NoError(t, buf.Insert(ctx, i))
		}
	}()

	for i := 0; i < 100; i++ {
		item, err := buf.Remove(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, item)
	}
	wg.Wait()
}

func TestRunBalancesItems(t *testing.T) {
	buf := NewBuffer(DefaultCapacity)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	stats, err := Run(ctx, buf, 3, 2, 876545678, nil)
	require.NoError(t, err)
	assert.Positive(t, stats.Produced)
	assert.Equal(t, stats.Produced, stats.Consumed+int64(buf.Len()))
	assert.LessOrEqual(t, buf.Len(), DefaultCapacity)
}

func TestRunProducersOnlyFillBuffer(t *testing.T) {
	buf := NewBuffer(DefaultCapacity)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	stats, err := Run(ctx, buf, 2, 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultCapacity), stats.Produced)
	assert.Zero(t, stats.Consumed)
}

func TestRunRejectsTooManyWorkers(t *testing.T) {
	_, err := Run(context.Background(), NewBuffer(1), MaxProducers+1, 1, 1, nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), NewBuffer(1), 1, -1, 1, nil)
	assert.Error(t, err)
}
