package session

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

type shard struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// MemoryEngine keeps session records in process memory. Records are handed
// out by reference, so mutations made during a request are visible in the
// store immediately; Persist only stamps expiry. The record map is striped
// across fixed shards so loads of unrelated ids do not serialize behind
// writes to other ids.
type MemoryEngine struct {
	shards  [shardCount]*shard
	ttl     time.Duration
	sweeper *sweeper
	now     func() time.Time
}

// MemoryOption configures a MemoryEngine.
type MemoryOption func(*MemoryEngine)

// WithSweepInterval sets how often the expiration sweeper wakes. It only
// matters when the engine has a TTL; the default is DefaultSweepInterval.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(e *MemoryEngine) {
		if e.sweeper != nil && d > 0 {
			e.sweeper.period = d
		}
	}
}

// WithMemoryClock replaces the wall clock, for tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(e *MemoryEngine) {
		e.now = now
	}
}

// NewMemoryEngine builds an in-memory engine. A positive ttl enables record
// expiry: Persist stamps each record with ExpiresKey and a background sweeper
// expunges stale records. With a zero ttl records live until invalidated and
// no sweeper exists.
func NewMemoryEngine(ttl time.Duration, opts ...MemoryOption) *MemoryEngine {
	e := &MemoryEngine{
		ttl: ttl,
		now: time.Now,
	}
	for i := range e.shards {
		e.shards[i] = &shard{records: make(map[string]*Record)}
	}

	if ttl > 0 {
		e.sweeper = newSweeper(e, DefaultSweepInterval)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *MemoryEngine) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return e.shards[h.Sum32()%shardCount]
}

// Load returns the record stored under id. A missing record is created
// empty; a record whose expiry stamp has passed is discarded and recreated,
// independent of the sweeper.
func (e *MemoryEngine) Load(ctx context.Context, id string) (*Record, error) {
	sh := e.shardFor(id)
	now := e.now()

	sh.mu.RLock()
	rec, ok := sh.records[id]
	sh.mu.RUnlock()

	if ok && !rec.expired(now) {
		return rec, nil
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	// Another request may have created it between the two locks.
	if rec, ok := sh.records[id]; ok && !rec.expired(now) {
		return rec, nil
	}

	rec = NewRecord()
	sh.records[id] = rec
	return rec, nil
}

// Persist stamps the record's expiry when a TTL is configured. The record
// already lives in the map by reference, so there is nothing else to write.
func (e *MemoryEngine) Persist(ctx context.Context, id string, rec *Record) error {
	if e.ttl > 0 {
		rec.Set(ExpiresKey, e.now().Add(e.ttl))
	}
	return nil
}

// Invalidate removes the record stored under id, reporting whether one
// existed.
func (e *MemoryEngine) Invalidate(ctx context.Context, id string) (bool, error) {
	sh := e.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	_, ok := sh.records[id]
	delete(sh.records, id)
	return ok, nil
}

// IsValid reports whether a record exists under id.
func (e *MemoryEngine) IsValid(ctx context.Context, id string) (bool, error) {
	sh := e.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	_, ok := sh.records[id]
	return ok, nil
}

// HandleEvent starts and stops the sweeper with the coordinator lifecycle.
func (e *MemoryEngine) HandleEvent(ctx context.Context, event Event) error {
	if e.sweeper == nil {
		return nil
	}

	switch event {
	case EventStart:
		e.sweeper.Start()
	case EventStop:
		e.sweeper.Stop()
	}
	return nil
}

// Close stops the sweeper. Safe to call multiple times.
func (e *MemoryEngine) Close() error {
	if e.sweeper != nil {
		e.sweeper.Stop()
	}
	return nil
}

// Len reports the number of live records across all shards.
func (e *MemoryEngine) Len() int {
	total := 0
	for _, sh := range e.shards {
		sh.mu.RLock()
		total += len(sh.records)
		sh.mu.RUnlock()
	}
	return total
}

// expunge removes every record whose expiry stamp is at or before now and
// reports how many were removed. Candidates are collected under a read lock
// first, then deleted, so no lock spans the full scan and the map is never
// mutated while iterated.
func (e *MemoryEngine) expunge(now time.Time) int {
	removed := 0
	for _, sh := range e.shards {
		var cull []string

		sh.mu.RLock()
		for id, rec := range sh.records {
			if rec.expired(now) {
				cull = append(cull, id)
			}
		}
		sh.mu.RUnlock()

		if len(cull) == 0 {
			continue
		}

		sh.mu.Lock()
		for _, id := range cull {
			// A concurrent load may have replaced the record since the scan.
			if rec, ok := sh.records[id]; ok && rec.expired(now) {
				delete(sh.records, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}
