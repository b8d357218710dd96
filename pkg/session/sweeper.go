package session

import (
	"sync"
	"time"
)

// DefaultSweepInterval is how often the in-memory engine scans for expired
// records when no interval is configured.
const DefaultSweepInterval = 60 * time.Second

// sweeper periodically expunges expired records from a MemoryEngine. Start
// and Stop are idempotent. Stop cancels the next scheduled wake and
// guarantees no further sweep is scheduled after it returns, but it never
// interrupts a sweep already in progress.
type sweeper struct {
	engine *MemoryEngine
	period time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running bool
}

func newSweeper(engine *MemoryEngine, period time.Duration) *sweeper {
	if period <= 0 {
		period = DefaultSweepInterval
	}
	return &sweeper{engine: engine, period: period}
}

// Start schedules the first wake. Calling it on a running sweeper is a no-op;
// calling it after Stop resumes the schedule.
func (s *sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = false
	if s.running {
		return
	}
	s.running = true
	s.timer = time.AfterFunc(s.period, s.run)
}

func (s *sweeper) run() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()

	s.engine.expunge(s.engine.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		s.running = false
		return
	}
	s.timer = time.AfterFunc(s.period, s.run)
}

// Stop cancels the next scheduled wake. A sweep running at this moment
// finishes but does not reschedule.
func (s *sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		s.running = false
	}
}
