// pkg/memcache/visitors.go
package mem

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type VisitorStore interface {
	// Limiter returns the limiter for key, creating it on first sight.
	Limiter(key string) *rate.Limiter

	// Sweep drops visitors idle for longer than the store TTL and
	// returns how many were removed.
	Sweep() int

	Len() int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Visitors struct {
	mu    sync.RWMutex
	data  map[string]*visitor
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

// NewVisitors keeps one token bucket per key allowing perMinute events with
// an equal burst.
func NewVisitors(perMinute int, ttl time.Duration) *Visitors {
	if perMinute < 1 {
		perMinute = 1
	}
	return &Visitors{
		data:  make(map[string]*visitor),
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Visitors) Limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.data[key] = v
	}
	v.lastSeen = s.now()
	return v.limiter
}

func (s *Visitors) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, v := range s.data {
		if v.lastSeen.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *Visitors) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Janitor sweeps every interval until stop is closed.
func (s *Visitors) Janitor(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}
