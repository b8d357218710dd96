package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport carries the signed identifier in an HTTP header, for API
// clients that do not speak cookies.
type HeaderTransport struct {
	name   string
	prefix string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix overrides the value prefix, "Bearer " by default. An
// empty prefix sends the bare token.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport builds a header transport for the named header.
func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		name:   name,
		prefix: "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// GetToken reads the header, stripping the prefix when present.
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.name)
	if value == "" {
		return "", ErrNoToken
	}
	return strings.TrimPrefix(value, t.prefix), nil
}

// SetToken writes the token header. A positive maxAge is advertised through
// a companion -Expires header.
func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, maxAge time.Duration) error {
	w.Header().Set(t.name, t.prefix+token)
	if maxAge > 0 {
		w.Header().Set(t.name+"-Expires", time.Now().Add(maxAge).Format(time.RFC3339))
	}
	return nil
}

// ClearToken removes the token headers from the response.
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.name + "-Expires")
	return nil
}
