package session

import "context"

// Event names a lifecycle notification delivered to engines.
type Event string

// Lifecycle events dispatched by the Coordinator. Arbitrary additional event
// names may reach engines through Coordinator.Notify; engines ignore names
// they do not care about.
const (
	EventStart   Event = "start"
	EventPrepare Event = "prepare"
	EventAfter   Event = "after"
	EventDone    Event = "done"
	EventStop    Event = "stop"
)

// Engine is the minimal storage capability every backend must provide. The
// remaining capabilities are optional and discovered by type assertion;
// absence is never an error.
type Engine interface {
	// Load returns the record stored under id, creating an empty one when
	// absent or lazily expired. It fails only when the backend itself fails.
	Load(ctx context.Context, id string) (*Record, error)
}

// Persister is implemented by engines that durably store record mutations.
// Persist is called once per request, only for engines actually accessed.
type Persister interface {
	Persist(ctx context.Context, id string, rec *Record) error
}

// Invalidator is implemented by engines that can remove a stored record. The
// bool reports whether anything was removed.
type Invalidator interface {
	Invalidate(ctx context.Context, id string) (bool, error)
}

// Checker is implemented by engines that can report record existence without
// materializing it.
type Checker interface {
	IsValid(ctx context.Context, id string) (bool, error)
}

// Listener is implemented by engines that react to lifecycle events, such as
// the in-memory engine starting its sweeper on EventStart.
type Listener interface {
	HandleEvent(ctx context.Context, event Event) error
}
