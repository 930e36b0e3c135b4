// Package worker runs blocking pipeline work on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultWorkers matches the size of the request executor
const DefaultWorkers = 4

// ErrPoolStopped is returned when submitting to a pool that is not running
var ErrPoolStopped = errors.New("worker pool stopped")

// Job is a unit of work. ctx is the submitter's context.
type Job func(ctx context.Context)

type queued struct {
	ctx context.Context
	job Job
}

// PoolConfig holds configuration for the pool.
type PoolConfig struct {
	Workers   int // Number of goroutines running jobs
	QueueSize int // Jobs buffered before Submit blocks; defaults to Workers
	Logger    *slog.Logger
}

// Pool processes submitted jobs on a fixed number of goroutines.
type Pool struct {
	logger  *slog.Logger
	workers int
	jobs    chan queued

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewPool creates a pool. Call Start before submitting.
func NewPool(cfg PoolConfig) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	size := cfg.QueueSize
	if size <= 0 {
		size = workers
	}

	return &Pool{
		logger:  logger,
		workers: workers,
		jobs:    make(chan queued, size),
	}
}

// Workers returns the number of worker goroutines
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the worker goroutines. It runs until Stop is called or
// ctx is cancelled.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	p.logger.Info("worker pool starting", "workers", p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(p.doneCh)
	}()

	return nil
}

// Stop signals the workers and waits for in-flight jobs to finish.
// Jobs still queued are dropped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh
	p.logger.Info("worker pool stopped")
}

// Wait blocks until the pool stops.
func (p *Pool) Wait() {
	p.mu.RLock()
	done := p.doneCh
	p.mu.RUnlock()
	if done != nil {
		<-done
	}
}

// Submit queues job, blocking while the queue is full.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	_, err := p.submit(ctx, job)
	return err
}

// submit queues job and returns the stop channel of the run it joined
func (p *Pool) submit(ctx context.Context, job Job) (<-chan struct{}, error) {
	p.mu.RLock()
	running, stopCh := p.running, p.stopCh
	p.mu.RUnlock()
	if !running {
		return nil, ErrPoolStopped
	}

	select {
	case p.jobs <- queued{ctx: ctx, job: job}:
		return stopCh, nil
	case <-stopCh:
		return nil, ErrPoolStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) processLoop(ctx context.Context, workerID int) {
	logger := p.logger.With("worker_id", workerID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case q := <-p.jobs:
			p.run(q, logger)
		}
	}
}

func (p *Pool) run(q queued, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "panic", r)
		}
	}()
	if q.ctx.Err() != nil {
		return
	}
	q.job(q.ctx)
}

// Do runs fn on the pool and waits for its result. If ctx ends or the pool
// stops first, the job's result is discarded.
func Do[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	out := make(chan result, 1)

	stopCh, err := p.submit(ctx, func(ctx context.Context) {
		var r result
		defer func() {
			if rec := recover(); rec != nil {
				r = result{err: fmt.Errorf("job panicked: %v", rec)}
			}
			out <- r
		}()
		r.v, r.err = fn(ctx)
	})
	var zero T
	if err != nil {
		return zero, err
	}

	select {
	case r := <-out:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-stopCh:
		select {
		case r := <-out:
			return r.v, r.err
		default:
			return zero, ErrPoolStopped
		}
	}
}
