package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrow/web.session/pkg/session"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisEngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := session.NewRedisEngine(newTestRedis(t))

	rec, err := e.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, rec.Len(), "missing key must load as an empty record")

	rec.Set("user", "alice")
	rec.Set("visits", 7)
	require.NoError(t, e.Persist(ctx, "abc", rec))

	loaded, err := e.Load(ctx, "abc")
	require.NoError(t, err)

	user, ok := loaded.GetString("user")
	require.True(t, ok)
	assert.Equal(t, "alice", user)

	// JSON turns numbers into float64; GetInt coerces them back.
	visits, ok := loaded.GetInt("visits")
	require.True(t, ok)
	assert.Equal(t, 7, visits)
}

func TestRedisEngineTTL(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := session.NewRedisEngine(client, session.WithRedisTTL(time.Minute))

	rec := session.NewRecord()
	rec.Set("user", "alice")
	require.NoError(t, e.Persist(ctx, "abc", rec))

	ok, err := e.IsValid(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = e.IsValid(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok, "record must expire with the key TTL")

	fresh, err := e.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, fresh.Len())
}

func TestRedisEngineInvalidate(t *testing.T) {
	ctx := context.Background()
	e := session.NewRedisEngine(newTestRedis(t))

	rec := session.NewRecord()
	rec.Set("k", "v")
	require.NoError(t, e.Persist(ctx, "abc", rec))

	removed, err := e.Invalidate(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = e.Invalidate(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRedisEnginePrefix(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := session.NewRedisEngine(client, session.WithRedisPrefix("custom"))

	rec := session.NewRecord()
	rec.Set("k", "v")
	require.NoError(t, e.Persist(ctx, "abc", rec))

	assert.True(t, mr.Exists("custom:abc"))
}

func TestRedisEngineCorruptDocument(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("websession:abc", "{not json"))

	e := session.NewRedisEngine(client)
	rec, err := e.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, rec.Len(), "corrupt document loads as a fresh record")
}
