package process

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource is a LineSource backed by a slice of lines.
type sliceSource struct {
	lines []string
	pos   int
	err   error
}

func (s *sliceSource) Next() bool {
	if s.pos >= len(s.lines) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceSource) Bytes() []byte {
	return []byte(s.lines[s.pos-1])
}

func (s *sliceSource) Err() error {
	return s.err
}

func jsonLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf(`{"ip":"10.0.0.%d","score":%d}`, i, i)
	}
	return lines
}

func TestSerial_CountsWellFormedLines(t *testing.T) {
	src := &sliceSource{lines: jsonLines(25)}

	count, err := NewSerial(nil, nil).Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestSerial_ForwardsRecordsToProcessor(t *testing.T) {
	src := &sliceSource{lines: []string{`{"ip":"1.2.3.4"}`, `{"ip":"5.6.7.8"}`}}

	var seen []any
	proc := ProcessorFunc(func(_ context.Context, record any) error {
		seen = append(seen, record)
		return nil
	})

	count, err := NewSerial(proc, nil).Run(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, seen, 2)

	first, ok := seen[0].(map[string]any)
	require.True(t, ok, "record should decode to a JSON object")
	assert.Equal(t, "1.2.3.4", first["ip"])
}

func TestSerial_SkipsBlankLines(t *testing.T) {
	src := &sliceSource{lines: []string{`{"a":1}`, "", "   ", `{"a":2}`}}

	count, err := NewSerial(nil, nil).Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSerial_MalformedLineIsFatal(t *testing.T) {
	src := &sliceSource{lines: []string{`{"a":1}`, `{"a":2}`, `not json`, `{"a":3}`}}

	count, err := NewSerial(nil, nil).Run(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "invalid JSON")
	// The run stops at the bad line: fewer records than the stream holds.
	assert.Equal(t, 2, count)
}

func TestSerial_ProcessorErrorIsFatal(t *testing.T) {
	src := &sliceSource{lines: jsonLines(5)}

	sinkErr := errors.New("sink unavailable")
	calls := 0
	proc := ProcessorFunc(func(context.Context, any) error {
		calls++
		if calls == 3 {
			return sinkErr
		}
		return nil
	})

	count, err := NewSerial(proc, nil).Run(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 2, count)
}

func TestSerial_StreamErrorSurfaces(t *testing.T) {
	readErr := errors.New("connection reset")
	src := &sliceSource{lines: jsonLines(3), err: readErr}

	count, err := NewSerial(nil, nil).Run(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, 3, count)
}

func TestSerial_ContextCancellation(t *testing.T) {
	src := &sliceSource{lines: jsonLines(10)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSerial(nil, nil).Run(ctx, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSerial_EmptyStream(t *testing.T) {
	count, err := NewSerial(nil, nil).Run(context.Background(), &sliceSource{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
