package searcher

import (
	"context"
	"slices"
	"sync"
	"time"
)

// TickFunc receives the tick time and the time elapsed since the previous tick.
type TickFunc func(now time.Time, delta time.Duration)

// Scheduler calls its subscribers once per tick, one after another, on a
// single goroutine. The loop ends when the last subscriber leaves, when Stop
// is called or when the context given to Start is done.
type Scheduler struct {
	interval time.Duration

	mu          sync.Mutex
	subscribers map[int]TickFunc
	nextID      int
	last        time.Time
	cancel      context.CancelFunc
	done        chan struct{}
	idle        bool // loop is exiting for lack of subscribers
}

func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		panic("scheduler interval must be positive")
	}
	return &Scheduler{
		interval:    interval,
		subscribers: make(map[int]TickFunc),
	}
}

// Subscribe registers fn and returns the id to unsubscribe it with.
func (s *Scheduler) Subscribe(fn TickFunc) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return id
}

// Unsubscribe is safe to call from inside a subscriber.
func (s *Scheduler) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, id)
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Tick runs every subscriber in subscription order and returns how many
// subscribers remain afterwards.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	var delta time.Duration
	if !s.last.IsZero() {
		delta = now.Sub(s.last)
	}
	s.last = now
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.subscribers[id]
		s.mu.Unlock()
		if ok { // may have been removed by an earlier subscriber
			fn(now, delta)
		}
	}
	return s.Len()
}

// Start runs the tick loop in the background. Starting a running scheduler
// does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running() {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.idle = false
	s.last = time.Time{}
	go s.run(ctx, s.done)
}

// Stop ends the loop and waits for the current tick to finish. It must not be
// called from a subscriber.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running()
}

// Done is closed when the current loop exits.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

func (s *Scheduler) running() bool {
	if s.done == nil || s.idle {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Tick(now)
			if s.stopIfIdle(done) {
				return
			}
		}
	}
}

// stopIfIdle marks the loop owning done as finished when nobody is
// subscribed, so that a later Start launches a fresh loop.
func (s *Scheduler) stopIfIdle(done chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subscribers) > 0 {
		return false
	}
	if s.done == done {
		s.idle = true
	}
	return true
}
