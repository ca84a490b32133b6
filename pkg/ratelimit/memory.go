package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mutex sync.Mutex
	hits  map[string][]time.Time
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{hits: make(map[string][]time.Time)}
}

func (s *memoryStore) Hit(
	ctx context.Context, key string, bucket Bucket, now time.Time,
) (Result, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	windowStart := now.Add(-bucket.Window)

	valid := s.hits[key][:0]
	for _, t := range s.hits[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= bucket.MaxRequests {
		s.hits[key] = valid

		// The window slides forward as old hits expire; the caller may retry
		// once the oldest recorded hit leaves the window.
		retryAfter := valid[0].Add(bucket.Window).Sub(now)
		return Result{
			Allowed:    false,
			Limit:      bucket.MaxRequests,
			Remaining:  0,
			ResetAt:    now.Add(retryAfter),
			RetryAfter: retryAfter,
		}, nil
	}

	valid = append(valid, now)
	s.hits[key] = valid

	return Result{
		Allowed:   true,
		Limit:     bucket.MaxRequests,
		Remaining: bucket.MaxRequests - len(valid),
		ResetAt:   now.Add(bucket.Window),
	}, nil
}

func (s *memoryStore) Sweep(ctx context.Context, maxIdle time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	deadline := time.Now().Add(-maxIdle)
	for key, hits := range s.hits {
		if len(hits) == 0 || hits[len(hits)-1].Before(deadline) {
			delete(s.hits, key)
		}
	}

	return nil
}
