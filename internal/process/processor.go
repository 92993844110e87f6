// Package process consumes feed line streams and turns them into parsed
// records, either serially or through a bounded worker pool.
package process

import (
	"context"
	"encoding/json"
	"fmt"
)

// Processor is the pluggable sink for parsed feed records. The record is
// a generic JSON value; no schema is enforced. Returning an error aborts
// the run.
type Processor interface {
	Process(ctx context.Context, record any) error
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, record any) error

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, record any) error {
	return f(ctx, record)
}

// NopProcessor discards every record. It is the default sink: the tools
// measure feed throughput without any downstream processing wired in.
type NopProcessor struct{}

// Process does nothing.
func (NopProcessor) Process(context.Context, any) error {
	return nil
}

// LineSource is a lazy sequence of raw feed lines. *fetch.Stream
// satisfies it.
type LineSource interface {
	Next() bool
	Bytes() []byte
	Err() error
}

// parseLine decodes one feed line as a generic JSON value.
func parseLine(line []byte) (any, error) {
	var record any
	if err := json.Unmarshal(line, &record); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return record, nil
}
