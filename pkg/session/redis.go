package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultRedisPrefix namespaces session records in Redis.
const defaultRedisPrefix = "websession"

// RedisEngine stores session records as JSON documents in Redis, leaning on
// native key TTLs instead of the ExpiresKey stamp. Unlike the in-memory
// engine it is write-through: mutations only become durable when Persist
// runs at the end of the request.
type RedisEngine struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisEngine.
type RedisOption func(*RedisEngine)

// WithRedisPrefix overrides the key namespace.
func WithRedisPrefix(prefix string) RedisOption {
	return func(e *RedisEngine) {
		e.prefix = prefix
	}
}

// WithRedisTTL sets the key TTL applied on every Persist. Zero keeps records
// until invalidated.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(e *RedisEngine) {
		e.ttl = ttl
	}
}

// NewRedisEngine builds a Redis-backed engine around an established client.
func NewRedisEngine(client *redis.Client, opts ...RedisOption) *RedisEngine {
	e := &RedisEngine{
		client: client,
		prefix: defaultRedisPrefix,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *RedisEngine) key(id string) string {
	return e.prefix + ":" + id
}

// Load fetches and decodes the record stored under id, returning an empty
// record when the key is absent. An undecodable document is unusable either
// way and is treated as absent.
func (e *RedisEngine) Load(ctx context.Context, id string) (*Record, error) {
	raw, err := e.client.Get(ctx, e.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %w", ErrEngine, err)
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return NewRecord(), nil
	}
	return newRecordFrom(values), nil
}

// Persist writes the record back as a JSON document, applying the configured
// TTL natively.
func (e *RedisEngine) Persist(ctx context.Context, id string, rec *Record) error {
	raw, err := json.Marshal(rec.snapshot())
	if err != nil {
		return fmt.Errorf("%w: encode record: %w", ErrEngine, err)
	}

	if err := e.client.Set(ctx, e.key(id), raw, e.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", ErrEngine, err)
	}
	return nil
}

// Invalidate removes the record stored under id, reporting whether one
// existed.
func (e *RedisEngine) Invalidate(ctx context.Context, id string) (bool, error) {
	n, err := e.client.Del(ctx, e.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis del: %w", ErrEngine, err)
	}
	return n > 0, nil
}

// IsValid reports whether a record exists under id without fetching it.
func (e *RedisEngine) IsValid(ctx context.Context, id string) (bool, error) {
	n, err := e.client.Exists(ctx, e.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis exists: %w", ErrEngine, err)
	}
	return n > 0, nil
}
