package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	require.Error(t, q.Enqueue(Job{ID: "1"}))
}

func TestQueueProcessesJobs(t *testing.T) {
	var handled atomic.Int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		handled.Add(1)
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{ID: "job", Type: "reminder"}))
	}

	require.Eventually(t, func() bool { return handled.Load() == 5 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(5), q.Stats().Succeeded)
}

func TestQueueRetriesThenDrops(t *testing.T) {
	var attempts atomic.Int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		attempts.Add(1)
		return errors.New("smtp down")
	}, QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "job-1"}))

	require.Eventually(t, func() bool { return q.Stats().Dropped == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, uint64(2), q.Stats().Retried)
}

func TestQueueStopIsIdempotent(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	q.Stop()
	assert.False(t, q.Running())
	q.Start(context.Background())
	assert.True(t, q.Running())
	q.Stop()
	assert.False(t, q.Running())
	require.Error(t, q.Enqueue(Job{ID: "late"}))
}

func TestQueueDrainWaitsForBufferedAndRetriedJobs(t *testing.T) {
	var (
		handled  atomic.Int32
		attempts atomic.Int32
	)
	release := make(chan struct{})
	q := NewQueue("test", func(_ context.Context, job Job) error {
		<-release
		if job.ID == "flaky" && attempts.Add(1) == 1 {
			return errors.New("temporary")
		}
		handled.Add(1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8, MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	for _, id := range []string{"a", "flaky", "b", "c"} {
		require.NoError(t, q.Enqueue(Job{ID: id}))
	}
	assert.EqualValues(t, 4, q.Stats().Pending)
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Drain(ctx))

	assert.EqualValues(t, 4, handled.Load())
	assert.EqualValues(t, 0, q.Stats().Pending)
	assert.Equal(t, uint64(1), q.Stats().Retried)
	require.Error(t, q.Enqueue(Job{ID: "late"}), "intake closes once draining")
}

func TestQueueDrainHonoursDeadline(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	q := NewQueue("test", func(ctx context.Context, _ Job) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "slow"}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Drain(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueueDrainBeforeStartIsNoop(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.NoError(t, q.Drain(context.Background()))
}
