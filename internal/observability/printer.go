// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles human-facing output for a feed run.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunInfo outputs the resolved run parameters in verbose mode.
func (p *Printer) PrintRunInfo(runID, mode, url string, batchSize, workers int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", runID))
	sb.WriteString(fmt.Sprintf("Mode:    %s\n", mode))
	sb.WriteString(fmt.Sprintf("URL:     %s", url))
	if mode == "parallel" {
		sb.WriteString(fmt.Sprintf("\nBatch:   %d lines", batchSize))
		sb.WriteString(fmt.Sprintf("\nWorkers: %d", workers))
	}
	p.printBox("Feed Run", sb.String())
}

// PrintSummary reports the final line count and elapsed time, matching
// the output the feed tools have always produced.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(lines int, elapsed time.Duration) {
	fmt.Fprintf(p.out, "Total time taken: %.2f seconds\n", elapsed.Seconds())
	fmt.Fprintf(p.out, "Total lines processed: %d\n", lines)
}

// NewLogger builds the CLI logger: slog text to stderr, debug level when
// verbose is set.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
