// Package feed defines the available Spur feed types and resolves them to
// their download URLs.
package feed

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production feed endpoint.
const DefaultBaseURL = "https://feeds.spur.us/v2/"

// Type identifies one of the published feeds.
type Type string

const (
	// TypeAnonymous is the standard anonymous-IP feed.
	TypeAnonymous Type = "anonymous"
	// TypeAnonymousResidential is the anonymous-residential feed.
	TypeAnonymousResidential Type = "anonymous-residential"
)

// Types lists every supported feed type, in the order they are documented.
func Types() []Type {
	return []Type{TypeAnonymous, TypeAnonymousResidential}
}

// ParseType converts a user-supplied string into a Type.
// Unrecognized values are a configuration error.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAnonymous, TypeAnonymousResidential:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown feed type %q (valid: %s)", s, typeList())
}

// String returns the feed type token as it appears in feed URLs.
func (t Type) String() string {
	return string(t)
}

// LatestURL resolves the feed type to the URL of its most recent export.
// baseURL may be empty, in which case DefaultBaseURL is used.
func (t Type) LatestURL(baseURL string) (string, error) {
	if _, err := ParseType(string(t)); err != nil {
		return "", err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	ref, err := url.Parse(string(t) + "/latest.json.gz")
	if err != nil {
		return "", fmt.Errorf("resolving feed path: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(ref).String(), nil
}

func typeList() string {
	parts := make([]string, 0, len(Types()))
	for _, t := range Types() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
