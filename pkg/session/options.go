package session

import (
	"log/slog"
	"time"

	"github.com/marrow/web.session/pkg/sid"
)

// Option is a functional option for configuring the Coordinator.
type Option func(*Coordinator)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Coordinator) {
		c.config = cfg
	}
}

// WithSecret sets the signing secret.
func WithSecret(secret string) Option {
	return func(c *Coordinator) {
		c.config.Secret = secret
	}
}

// WithEnvironment sets the environment name controlling the secret policy.
func WithEnvironment(env string) Option {
	return func(c *Coordinator) {
		c.config.Environment = env
	}
}

// WithDefaultEngine installs the engine served under the "default" name.
func WithDefaultEngine(engine Engine) Option {
	return func(c *Coordinator) {
		c.registerEngine(DefaultEngineName, engine)
	}
}

// WithEngine registers an additional named engine.
func WithEngine(name string, engine Engine) Option {
	return func(c *Coordinator) {
		c.registerEngine(name, engine)
	}
}

// WithTransport replaces the default cookie transport.
func WithTransport(transport Transport) Option {
	return func(c *Coordinator) {
		c.transport = transport
	}
}

// WithSigner replaces the signer built from the configured secret. Mainly a
// test seam for clock and counter control.
func WithSigner(signer *sid.Signer) Option {
	return func(c *Coordinator) {
		c.signer = signer
	}
}

// WithLogger sets the logger; a discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExpiresAfter bounds token age and the reissued cookie lifetime.
func WithExpiresAfter(d time.Duration) Option {
	return func(c *Coordinator) {
		c.config.ExpiresAfter = d
	}
}

// WithRefresh toggles token reissue on every accessed-session request.
func WithRefresh(refresh bool) Option {
	return func(c *Coordinator) {
		c.config.Refresh = refresh
	}
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(c *Coordinator) {
		c.config.CookieName = name
	}
}
