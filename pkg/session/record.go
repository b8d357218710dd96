package session

import (
	"maps"
	"sync"
	"time"
)

// ExpiresKey is the reserved attribute engines stamp onto their own records
// to mark expiry. Application code should treat it as engine-owned.
const ExpiresKey = "_expires"

// Record holds the named attributes of one session. Every record is owned by
// exactly one engine instance and accessed by one request at a time; the
// internal lock only guards against the expiration sweeper reading a record
// while its owning request mutates it.
type Record struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

func newRecordFrom(values map[string]any) *Record {
	if values == nil {
		values = make(map[string]any)
	}
	return &Record{values: values}
}

// Get retrieves an attribute value.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.values[key]
	return val, ok
}

// GetString retrieves a string attribute.
func (r *Record) GetString(key string) (string, bool) {
	val, ok := r.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int attribute, coercing the numeric types a JSON
// round-trip produces.
func (r *Record) GetInt(key string) (int, bool) {
	val, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool attribute.
func (r *Record) GetBool(key string) (bool, bool) {
	val, ok := r.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores an attribute value.
func (r *Record) Set(key string, value any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}

// Delete removes an attribute.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
}

// Clear removes every attribute.
func (r *Record) Clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]any)
}

// Len reports the number of stored attributes.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// snapshot returns a shallow copy of the attribute map for serialization.
func (r *Record) snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.values))
	maps.Copy(out, r.values)
	return out
}

// expired reports whether the record carries an ExpiresKey stamp at or before
// now. Records without a stamp never expire.
func (r *Record) expired(now time.Time) bool {
	val, ok := r.Get(ExpiresKey)
	if !ok {
		return false
	}
	stamp, ok := val.(time.Time)
	if !ok {
		return false
	}
	return !stamp.After(now)
}
