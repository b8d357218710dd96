package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/marrow/web.session/pkg/sid"
)

// Group is the ephemeral per-request session view: one lazily loaded record
// per engine plus the lazily resolved signed identifier. A Group is owned by
// exactly one request goroutine and never shared, so it needs no locking. It
// is discarded at the end of the request.
type Group struct {
	coordinator *Coordinator
	request     *http.Request

	records    map[string]*Record
	accessed   []string
	id         *sid.SignedIdentifier
	idResolved bool
	isNew      bool
}

// ID resolves the request's signed identifier, at most once per request. A
// presented token that fails validation (wrong length, expired, forged)
// degrades to a freshly minted identifier with a warning log; it never fails
// the request.
func (g *Group) ID() *sid.SignedIdentifier {
	if g.idResolved {
		return g.id
	}
	g.idResolved = true

	c := g.coordinator
	if token, err := c.transport.GetToken(g.request); err == nil && token != "" {
		id, perr := c.signer.Parse(token)
		if perr == nil {
			g.id = id
			return g.id
		}
		c.logger.Warn("session: rejected presented token",
			slog.String("reason", perr.Error()),
		)
	}

	g.id = c.signer.Generate()
	g.isNew = true
	return g.id
}

// IsNew reports whether the identifier was minted during this request rather
// than presented by the client.
func (g *Group) IsNew() bool {
	return g.isNew
}

// Engine returns the record bound to the named engine, loading it on first
// touch and recording the access. Only accessed engines receive the after
// and done events and have their records persisted.
func (g *Group) Engine(ctx context.Context, name string) (*Record, error) {
	if rec, ok := g.records[name]; ok {
		return rec, nil
	}

	engine, ok := g.coordinator.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}

	rec, err := engine.Load(ctx, g.ID().String())
	if err != nil {
		return nil, fmt.Errorf("engine %q: %w", name, err)
	}

	g.records[name] = rec
	g.accessed = append(g.accessed, name)
	return rec, nil
}

// Get returns the default engine's record.
func (g *Group) Get(ctx context.Context) (*Record, error) {
	return g.Engine(ctx, DefaultEngineName)
}

// Accessed lists the engines touched so far, in first-touch order.
func (g *Group) Accessed() []string {
	out := make([]string, len(g.accessed))
	copy(out, g.accessed)
	return out
}

// Invalidate removes this request's record from the named engine when it
// supports invalidation, and drops the group's binding so a later access
// loads a fresh record.
func (g *Group) Invalidate(ctx context.Context, name string) (bool, error) {
	engine, ok := g.coordinator.engines[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}

	inv, ok := engine.(Invalidator)
	if !ok {
		return false, nil
	}

	removed, err := inv.Invalidate(ctx, g.ID().String())
	if err != nil {
		return false, fmt.Errorf("engine %q: %w", name, err)
	}

	// Drop the binding and the access mark so the engine is not persisted
	// unless it is touched again.
	delete(g.records, name)
	for i, n := range g.accessed {
		if n == name {
			g.accessed = append(g.accessed[:i], g.accessed[i+1:]...)
			break
		}
	}
	return removed, nil
}
