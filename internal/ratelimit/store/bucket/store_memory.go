// Package bucket implements sliding-window rate limit counters. The memory
// store serves tests and single-instance deployments; the Redis store is the
// distributed implementation.
package bucket

import (
	"context"
	"sync"
	"time"

	"idcheck/internal/ratelimit/models"
)

// MemoryStore keeps sliding windows in process memory. Not distributed;
// use RedisStore when running more than one instance.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
}

// slidingWindow tracks event timestamps. A sliding window rather than fixed
// buckets so a burst straddling a boundary cannot double the effective
// limit.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*slidingWindow)}
}

// Allow checks whether one more event fits under the limit and records it
// if so.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw := s.buckets[key]
	if sw == nil {
		sw = &slidingWindow{window: window}
		s.buckets[key] = sw
	}
	now := time.Now()
	sw.cleanup(now)

	if len(sw.timestamps)+1 > limit {
		return &models.Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   sw.timestamps[0].Add(window),
			Limit:     limit,
		}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return &models.Result{
		Allowed:   true,
		Remaining: limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(window),
		Limit:     limit,
	}, nil
}

// Reset clears the counter for a key.
func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
