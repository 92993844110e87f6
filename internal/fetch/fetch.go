// Package fetch opens authenticated streaming HTTP connections to a feed
// and exposes the response body as a lazy sequence of lines.
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent is the user agent string for feed requests.
const DefaultUserAgent = "feed-tools/1.0 (+https://spur.us)"

// Error represents an error while opening or reading a feed stream.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures how the stream is opened.
type Options struct {
	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string
	// Headers are added to the request verbatim.
	Headers map[string]string
	// Client overrides the default streaming client. Tests use this to
	// inject an httptest client or a request-counting transport.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for streaming.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// newStreamingClient builds a client suitable for long-lived responses.
// There is no overall timeout: the body is read for as long as the feed
// lasts. Connection setup is still bounded.
func newStreamingClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
		},
	}
}

// Open performs a GET against urlStr with a bearer token and returns the
// response body as a line Stream. Non-2xx responses and transport
// failures return a *Error; there is no retry. A gzip-compressed body
// (by URL suffix or content type) is decompressed transparently.
func Open(ctx context.Context, urlStr, token string, opts *Options) (*Stream, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = newStreamingClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	compressed := strings.HasSuffix(parsedURL.Path, ".gz") ||
		isGzipContentType(resp.Header.Get("Content-Type"))

	stream, err := newStream(resp.Body, compressed)
	if err != nil {
		_ = resp.Body.Close()
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to open gzip stream",
			Cause:   err,
		}
	}
	return stream, nil
}

func isGzipContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "application/gzip") ||
		strings.HasPrefix(contentType, "application/x-gzip")
}
