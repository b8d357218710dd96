package session

import "time"

// Environment names accepted by Config.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the coordinator's constructor-time configuration. It is
// immutable after New returns. Fields carry env tags so twelve-factor
// deployments can populate them through the config package.
type Config struct {
	// Secret keys the identifier signatures. Required in production; in
	// development a missing secret is replaced by a generated ephemeral one,
	// which invalidates all sessions on every restart.
	Secret string `env:"SESSION_SECRET"`

	// Environment selects the secret policy ("development" or "production").
	Environment string `env:"SESSION_ENV" envDefault:"development"`

	CookieName     string `env:"SESSION_COOKIE_NAME" envDefault:"user_session"`
	CookiePath     string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieHTTPOnly bool   `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSecure   bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// CookieMaxAge is the cookie lifetime used when ExpiresAfter is unset.
	CookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"360s"`

	// ExpiresAfter bounds token age at validation and, when set, becomes the
	// cookie lifetime.
	ExpiresAfter time.Duration `env:"SESSION_EXPIRES_AFTER"`

	// Refresh reissues the token cookie on every request that accessed the
	// session, extending its lifetime; off, the cookie is only written when
	// the identifier is newly minted.
	Refresh bool `env:"SESSION_REFRESH"`

	// SweepInterval is how often the default in-memory engine scans for
	// expired records.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"60s"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		Environment:    EnvDevelopment,
		CookieName:     "user_session",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieMaxAge:   360 * time.Second,
		SweepInterval:  DefaultSweepInterval,
	}
}

// IsProduction reports whether the production secret policy applies.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction || c.Environment == "prod"
}

// cookieMaxAge is the lifetime written on token reissue: the configured
// token expiry when set, the plain cookie max-age otherwise.
func (c Config) cookieMaxAge() time.Duration {
	if c.ExpiresAfter > 0 {
		return c.ExpiresAfter
	}
	return c.CookieMaxAge
}

// NewFromConfig builds a Coordinator from cfg, applying opts on top.
func NewFromConfig(cfg Config, opts ...Option) (*Coordinator, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
