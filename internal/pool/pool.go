// Package pool implements a bounded worker pool for batch processing.
// The worker count and intake queue depth are explicit parameters so the
// concurrency bound is testable rather than a buried constant.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch is the unit of work handed to a worker: an ordered slice of raw
// feed lines. Seq is the submission sequence number, used for logging
// only; completion order is unconstrained.
type Batch struct {
	Seq   int
	Lines []string
}

// Handler processes one batch and returns the number of records
// processed. A non-nil error aborts the whole pool run.
type Handler func(ctx context.Context, batch Batch) (int, error)

// Pool fans batches out to a fixed number of workers. Submit blocks once
// the intake queue is full, so a producer never runs ahead by more than
// the queue capacity. Results are summed as batches complete.
type Pool struct {
	workers int
	jobs    chan Batch
	group   *errgroup.Group
	gctx    context.Context
	handler Handler
	logger  *slog.Logger

	mu    sync.Mutex
	total int
}

// Start creates the pool and launches its workers. workers and queueSize
// must be positive. Wait must be called to join the workers and collect
// the result.
func Start(ctx context.Context, workers, queueSize int, handler Handler, logger *slog.Logger) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("pool: workers must be positive, got %d", workers)
	}
	if queueSize < 1 {
		return nil, fmt.Errorf("pool: queue size must be positive, got %d", queueSize)
	}
	if handler == nil {
		return nil, fmt.Errorf("pool: handler is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	group, gctx := errgroup.WithContext(ctx)
	p := &Pool{
		workers: workers,
		jobs:    make(chan Batch, queueSize),
		group:   group,
		gctx:    gctx,
		handler: handler,
		logger:  logger,
	}

	for i := 0; i < workers; i++ {
		worker := i
		group.Go(func() error {
			return p.run(worker)
		})
	}
	return p, nil
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit hands a batch to the pool, blocking while the intake queue is
// full. It fails if the context is cancelled or a worker has already
// returned an error.
func (p *Pool) Submit(ctx context.Context, batch Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobs <- batch:
		return nil
	case <-p.gctx.Done():
		return fmt.Errorf("pool: workers stopped: %w", context.Cause(p.gctx))
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait closes the intake queue, joins all workers, and returns the
// summed batch results. If any worker failed, the first error is
// returned and the total is meaningless.
func (p *Pool) Wait() (int, error) {
	close(p.jobs)
	if err := p.group.Wait(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total, nil
}

func (p *Pool) run(worker int) error {
	for {
		select {
		case batch, ok := <-p.jobs:
			if !ok {
				return nil
			}

			p.logger.Debug("processing batch",
				"worker", worker,
				"batch", batch.Seq,
				"lines", len(batch.Lines))

			count, err := p.handler(p.gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d: %w", batch.Seq, err)
			}

			p.mu.Lock()
			p.total += count
			p.mu.Unlock()

		case <-p.gctx.Done():
			return p.gctx.Err()
		}
	}
}
