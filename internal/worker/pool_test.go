package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPool(t *testing.T, cfg PoolConfig) *Pool {
	t.Helper()
	p := NewPool(cfg)
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	return p
}

func TestNewPool_Defaults(t *testing.T) {
	p := NewPool(PoolConfig{})
	assert.Equal(t, DefaultWorkers, p.Workers())
	assert.Equal(t, DefaultWorkers, cap(p.jobs))
}

func TestPool_SubmitBeforeStart(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	err := p.Submit(context.Background(), func(context.Context) {})
	assert.True(t, errors.Is(err, ErrPoolStopped))
}

func TestPool_Do(t *testing.T) {
	p := startPool(t, PoolConfig{Workers: 2})

	v, err := Do(context.Background(), p, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Do(context.Background(), p, func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}

func TestPool_DoRecoversPanic(t *testing.T) {
	p := startPool(t, PoolConfig{Workers: 1})

	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		panic("bad job")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad job")

	v, err := Do(context.Background(), p, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v, "worker survives a panic")
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 3
	p := startPool(t, PoolConfig{Workers: workers, QueueSize: 20})

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Do(context.Background(), p, func(context.Context) (struct{}, error) {
				n := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return struct{}{}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(workers))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(0))
}

func TestPool_DoHonoursCallerContext(t *testing.T) {
	p := startPool(t, PoolConfig{Workers: 1})

	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Do(ctx, p, func(context.Context) (int, error) {
		<-release
		return 0, nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPool_StopRejectsSubmissions(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	require.NoError(t, p.Start(context.Background()))
	p.Stop()
	p.Stop()

	err := p.Submit(context.Background(), func(context.Context) {})
	assert.True(t, errors.Is(err, ErrPoolStopped))
	p.Wait()
}

func TestPool_StartIsIdempotent(t *testing.T) {
	p := startPool(t, PoolConfig{Workers: 1})
	assert.NoError(t, p.Start(context.Background()))

	v, err := Do(context.Background(), p, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
