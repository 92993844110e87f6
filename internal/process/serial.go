package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
)

// Serial consumes a line source one record at a time.
type Serial struct {
	processor Processor
	logger    *slog.Logger
}

// NewSerial creates a serial runner. A nil processor defaults to
// NopProcessor.
func NewSerial(processor Processor, logger *slog.Logger) *Serial {
	if processor == nil {
		processor = NopProcessor{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Serial{processor: processor, logger: logger}
}

// Run reads lines until the source is exhausted, parsing each as JSON
// and handing the record to the processor. The first parse, processor,
// or read error is fatal; the count of records processed before the
// failure is returned alongside it. Blank lines are skipped and not
// counted.
func (s *Serial) Run(ctx context.Context, lines LineSource) (int, error) {
	count := 0
	lineNo := 0

	for lines.Next() {
		lineNo++

		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		raw := bytes.TrimSpace(lines.Bytes())
		if len(raw) == 0 {
			continue
		}

		record, err := parseLine(raw)
		if err != nil {
			return count, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := s.processor.Process(ctx, record); err != nil {
			return count, fmt.Errorf("line %d: processing record: %w", lineNo, err)
		}
		count++

		if count%100000 == 0 {
			s.logger.Debug("progress", "lines", count)
		}
	}

	if err := lines.Err(); err != nil {
		return count, fmt.Errorf("reading stream: %w", err)
	}
	return count, nil
}
