package session

import "errors"

var (
	// ErrMissingSecret indicates no secret was configured in production
	ErrMissingSecret = errors.New("session: secret is required in production")

	// ErrSecretGeneration indicates the development fallback secret could not be generated
	ErrSecretGeneration = errors.New("session: ephemeral secret generation failed")

	// ErrUnknownEngine indicates a request for an engine name missing from the registry
	ErrUnknownEngine = errors.New("session: unknown engine")

	// ErrEngine wraps failures reported by a storage engine
	ErrEngine = errors.New("session: engine failure")

	// ErrNoToken indicates the request carries no session token
	ErrNoToken = errors.New("session: no token in request")
)
