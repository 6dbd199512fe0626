package libs

import (
	"context"
	"sync"
	"time"
)

// RateStore counts hits per key inside fixed windows.
type RateStore interface {
	// Hit records one request for key and returns the count so far in the
	// current window and when that window ends.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

type memoryBucket struct {
	count   int64
	resetAt time.Time
}

// MemoryRateStore keeps windows in process memory. A janitor goroutine
// drops expired buckets until Close is called.
type MemoryRateStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	now     func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewMemoryRateStore(sweepEvery time.Duration) *MemoryRateStore {
	s := &MemoryRateStore{
		buckets: make(map[string]*memoryBucket),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.sweep(sweepEvery)
	return s
}

func (s *MemoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &memoryBucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}
	b.count++
	return b.count, b.resetAt, nil
}

func (s *MemoryRateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *MemoryRateStore) Close() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}

func (s *MemoryRateStore) sweep(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *MemoryRateStore) evictExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.buckets {
		if !now.Before(b.resetAt) {
			delete(s.buckets, key)
		}
	}
}
