package fetch

import (
	"bufio"
	"compress/gzip"
	"io"
)

const (
	// initialScanBuffer is the starting scanner buffer size.
	initialScanBuffer = 64 * 1024
	// maxLineSize caps a single feed record. Feed records are small JSON
	// objects; 10MB leaves generous headroom.
	maxLineSize = 10 * 1024 * 1024
)

// Stream is a lazy line iterator over a feed response body. It is not
// restartable: reconnecting starts a new stream from the server's
// current position.
//
// Usage follows bufio.Scanner:
//
//	for stream.Next() {
//		line := stream.Bytes()
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	body    io.ReadCloser
	gzip    *gzip.Reader
	scanner *bufio.Scanner
}

func newStream(body io.ReadCloser, compressed bool) (*Stream, error) {
	s := &Stream{body: body}

	var reader io.Reader = body
	if compressed {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		s.gzip = gz
		reader = gz
	}

	s.scanner = bufio.NewScanner(reader)
	s.scanner.Buffer(make([]byte, initialScanBuffer), maxLineSize)
	return s, nil
}

// Next advances to the next line. It returns false when the stream is
// exhausted or a read error occurred; Err distinguishes the two.
func (s *Stream) Next() bool {
	return s.scanner.Scan()
}

// Bytes returns the current line without the trailing newline. The
// buffer is only valid until the next call to Next.
func (s *Stream) Bytes() []byte {
	return s.scanner.Bytes()
}

// Text returns the current line as a string.
func (s *Stream) Text() string {
	return s.scanner.Text()
}

// Err returns the first error encountered while reading, or nil on
// clean end of stream.
func (s *Stream) Err() error {
	return s.scanner.Err()
}

// Close releases the underlying connection.
func (s *Stream) Close() error {
	if s.gzip != nil {
		_ = s.gzip.Close()
	}
	return s.body.Close()
}
