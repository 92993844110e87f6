package process

import "strings"

// DefaultBatchSize is the number of lines per batch when none is
// configured.
const DefaultBatchSize = 100000

// Batcher groups consecutive lines from a source into batches of at most
// a fixed size. Order is preserved within each batch and across batches;
// the final batch may be short. Blank lines are dropped.
type Batcher struct {
	src   LineSource
	size  int
	batch []string
}

// NewBatcher creates a batcher over src. A non-positive size falls back
// to DefaultBatchSize.
func NewBatcher(src LineSource, size int) *Batcher {
	if size < 1 {
		size = DefaultBatchSize
	}
	return &Batcher{src: src, size: size}
}

// Next fills the next batch, returning false when the source is
// exhausted or failed. Check Err after the loop.
func (b *Batcher) Next() bool {
	b.batch = b.batch[:0]
	for len(b.batch) < b.size && b.src.Next() {
		line := strings.TrimSpace(string(b.src.Bytes()))
		if line == "" {
			continue
		}
		b.batch = append(b.batch, line)
	}
	return len(b.batch) > 0
}

// Batch returns a copy of the current batch. The returned slice is owned
// by the caller; the batcher reuses its internal buffer.
func (b *Batcher) Batch() []string {
	out := make([]string, len(b.batch))
	copy(out, b.batch)
	return out
}

// Err returns the first error encountered by the underlying source.
func (b *Batcher) Err() error {
	return b.src.Err()
}
