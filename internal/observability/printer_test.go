package observability

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintSummary(1234, 2500*time.Millisecond)

	out := sb.String()
	assert.Contains(t, out, "Total time taken: 2.50 seconds")
	assert.Contains(t, out, "Total lines processed: 1234")
}

func TestPrintRunInfo_SerialOmitsPoolFields(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintRunInfo("run-1", "stream", "https://feeds.spur.us/v2/anonymous/latest.json.gz", 0, 0)

	out := sb.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "stream")
	assert.NotContains(t, out, "Workers")
}

func TestPrintRunInfo_ParallelIncludesPoolFields(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintRunInfo("run-2", "parallel", "https://feeds.spur.us/v2/anonymous/latest.json.gz", 5000, 4)

	out := sb.String()
	assert.Contains(t, out, "Batch:   5000")
	assert.Contains(t, out, "Workers: 4")
}

func TestNewLogger_Levels(t *testing.T) {
	quiet := NewLogger(false)
	assert.False(t, quiet.Enabled(nil, slog.LevelInfo))
	assert.True(t, quiet.Enabled(nil, slog.LevelWarn))

	verbose := NewLogger(true)
	assert.True(t, verbose.Enabled(nil, slog.LevelDebug))
}
