package process

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spurintel/feed-tools/internal/pool"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// Parallel consumes a line source by grouping lines into fixed-size
// batches and fanning them out to a bounded worker pool. Each worker
// parses every line of its batch and feeds the records to the
// processor; the orchestrator sums the per-batch counts.
type Parallel struct {
	processor Processor
	batchSize int
	workers   int
	logger    *slog.Logger
}

// NewParallel creates a parallel runner. A nil processor defaults to
// NopProcessor; non-positive sizes fall back to DefaultBatchSize and
// DefaultWorkers.
func NewParallel(processor Processor, batchSize, workers int, logger *slog.Logger) *Parallel {
	if processor == nil {
		processor = NopProcessor{}
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parallel{
		processor: processor,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Run streams lines into batches and processes them concurrently. The
// producer blocks while a batch fills, then submits it and keeps
// reading; submission blocks once the pool's intake queue is full. The
// total record count is returned after the source is exhausted and all
// outstanding batches have completed. Any worker or read error cancels
// the run.
func (p *Parallel) Run(ctx context.Context, lines LineSource) (int, error) {
	workers, err := pool.Start(ctx, p.workers, p.workers, p.handleBatch, p.logger)
	if err != nil {
		return 0, err
	}

	batcher := NewBatcher(lines, p.batchSize)
	seq := 0
	var submitErr error
	for batcher.Next() {
		if err := workers.Submit(ctx, pool.Batch{Seq: seq, Lines: batcher.Batch()}); err != nil {
			submitErr = err
			break
		}
		seq++
	}

	total, waitErr := workers.Wait()
	if waitErr != nil {
		return 0, waitErr
	}
	if submitErr != nil {
		return 0, submitErr
	}
	if err := batcher.Err(); err != nil {
		return 0, fmt.Errorf("reading stream: %w", err)
	}

	p.logger.Debug("all batches complete", "batches", seq, "lines", total)
	return total, nil
}

// handleBatch parses every line of one batch. It runs on a pool worker.
func (p *Parallel) handleBatch(ctx context.Context, batch pool.Batch) (int, error) {
	count := 0
	for i, line := range batch.Lines {
		record, err := parseLine([]byte(line))
		if err != nil {
			return count, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := p.processor.Process(ctx, record); err != nil {
			return count, fmt.Errorf("line %d: processing record: %w", i+1, err)
		}
		count++
	}
	return count, nil
}
