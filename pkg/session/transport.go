package session

import (
	"net/http"
	"time"
)

// Transport moves session tokens between client and server. Implementations
// must never inspect the token: integrity is the signer's job.
type Transport interface {
	// GetToken extracts the token from the request, ErrNoToken when absent.
	GetToken(r *http.Request) (string, error)

	// SetToken writes the token to the response with the given lifetime.
	SetToken(w http.ResponseWriter, token string, maxAge time.Duration) error

	// ClearToken instructs the client to discard the token.
	ClearToken(w http.ResponseWriter) error
}
