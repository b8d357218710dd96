package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/marrow/web.session/pkg/sid"
)

// DefaultEngineName is the registry entry every coordinator carries.
const DefaultEngineName = "default"

// Coordinator orchestrates the session lifecycle: it resolves or mints the
// signed identifier per request, lazily binds one record per engine,
// dispatches lifecycle events to the engines a request actually touched and
// decides when to reissue the token. The engine registry is built at
// construction and read-only afterwards.
type Coordinator struct {
	engines   map[string]Engine
	order     []string
	signer    *sid.Signer
	transport Transport
	config    Config
	logger    *slog.Logger
}

// New builds a Coordinator. A missing secret is fatal in production
// (ErrMissingSecret); in development an ephemeral secret is generated with a
// logged warning, invalidating all sessions on restart. When no default
// engine is registered an in-memory engine with the configured expiry is
// installed.
func New(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		engines: make(map[string]Engine),
		config:  DefaultConfig(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.config.Secret == "" {
		if c.config.IsProduction() {
			return nil, ErrMissingSecret
		}

		secret, err := ephemeralSecret()
		if err != nil {
			return nil, err
		}
		c.config.Secret = secret
		c.logger.Warn("session: no secret configured, using a generated ephemeral secret; all sessions invalidate on restart")
	}

	if _, ok := c.engines[DefaultEngineName]; !ok {
		c.registerEngine(DefaultEngineName, NewMemoryEngine(
			c.config.ExpiresAfter,
			WithSweepInterval(c.config.SweepInterval),
		))
	}

	if c.signer == nil {
		var sopts []sid.SignerOption
		if c.config.ExpiresAfter > 0 {
			sopts = append(sopts, sid.WithExpiry(c.config.ExpiresAfter))
		}
		c.signer = sid.NewSigner([]byte(c.config.Secret), sopts...)
	}

	if c.transport == nil {
		c.transport = NewCookieTransport(c.config.CookieName,
			WithCookiePath(c.config.CookiePath),
			WithCookieHTTPOnly(c.config.CookieHTTPOnly),
			WithCookieSecure(c.config.CookieSecure),
		)
	}

	return c, nil
}

// registerEngine keeps first-registration order for deterministic dispatch;
// re-registering a name replaces the engine in place.
func (c *Coordinator) registerEngine(name string, engine Engine) {
	if _, ok := c.engines[name]; !ok {
		c.order = append(c.order, name)
	}
	c.engines[name] = engine
}

// Engines lists the registered engine names in registration order.
func (c *Coordinator) Engines() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Start broadcasts the start event to every engine. Process-scoped: call it
// once before serving requests, so engines can spin up their background work
// (the in-memory engine starts its sweeper here).
func (c *Coordinator) Start(ctx context.Context) error {
	return c.broadcast(ctx, EventStart, c.order)
}

// Stop forwards the stop event to every engine.
func (c *Coordinator) Stop(ctx context.Context) error {
	return c.Notify(ctx, EventStop)
}

// Notify forwards an arbitrary event name to every listening engine,
// regardless of per-request access tracking. It lets engines hook
// framework-level signals the coordinator does not know about.
func (c *Coordinator) Notify(ctx context.Context, event Event) error {
	return c.broadcast(ctx, event, c.order)
}

// Prepare opens the request scope: it binds a fresh Group to r and
// broadcasts prepare to every engine. Engines cannot have been touched yet,
// so prepare is never filtered by access tracking.
func (c *Coordinator) Prepare(ctx context.Context, r *http.Request) (*Group, error) {
	g := &Group{
		coordinator: c,
		request:     r,
		records:     make(map[string]*Record),
	}

	if err := c.broadcast(ctx, EventPrepare, c.order); err != nil {
		return nil, err
	}
	return g, nil
}

// After runs the response-composition phase. It is a no-op when the request
// never resolved its identifier. Otherwise the after event goes to the
// accessed engines only, and the token is written to the transport when it
// was newly minted this request or Refresh is configured.
func (c *Coordinator) After(ctx context.Context, w http.ResponseWriter, g *Group) error {
	if !g.idResolved {
		return nil
	}

	if err := c.broadcast(ctx, EventAfter, g.accessed); err != nil {
		return err
	}

	if g.isNew || c.config.Refresh {
		if err := c.transport.SetToken(w, g.id.Signed(), c.config.cookieMaxAge()); err != nil {
			return err
		}
	}
	return nil
}

// Done runs after the response is sent. It is a no-op when the request never
// resolved its identifier. Otherwise the done event goes to the accessed
// engines, then exactly those engines persist their own records. Engine
// failures are joined and surfaced: a backend that cannot store data is not
// recoverable by pretending there was no session.
func (c *Coordinator) Done(ctx context.Context, g *Group) error {
	if !g.idResolved {
		return nil
	}

	if err := c.broadcast(ctx, EventDone, g.accessed); err != nil {
		return err
	}

	var errs []error
	id := g.id.String()
	for _, name := range g.accessed {
		p, ok := c.engines[name].(Persister)
		if !ok {
			continue
		}
		if err := p.Persist(ctx, id, g.records[name]); err != nil {
			errs = append(errs, fmt.Errorf("engine %q: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrEngine}, errs...)...)
	}
	return nil
}

func (c *Coordinator) broadcast(ctx context.Context, event Event, names []string) error {
	var errs []error
	for _, name := range names {
		l, ok := c.engines[name].(Listener)
		if !ok {
			continue
		}
		if err := l.HandleEvent(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("engine %q: %s: %w", name, event, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrEngine}, errs...)...)
	}
	return nil
}

// ephemeralSecret mints the development fallback secret.
func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrSecretGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
