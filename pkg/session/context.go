package session

import "context"

type groupContextKey struct{}

// WithGroup adds a per-request group to the context.
func WithGroup(ctx context.Context, g *Group) context.Context {
	return context.WithValue(ctx, groupContextKey{}, g)
}

// FromContext retrieves the per-request group from the context.
func FromContext(ctx context.Context) (*Group, bool) {
	g, ok := ctx.Value(groupContextKey{}).(*Group)
	return g, ok
}

// MustFromContext retrieves the per-request group or panics. Use it inside
// handlers wrapped by Coordinator.Middleware.
func MustFromContext(ctx context.Context) *Group {
	g, ok := FromContext(ctx)
	if !ok {
		panic("session: group not found in context")
	}
	return g
}
