package cache

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"
)

var errNoLoader = crerr.New("cache: loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) live(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// Store is an in-process TTL cache keyed by string. A zero ttl keeps entries
// until they are deleted. Deleting a key also discards any load for it that
// is still running, so invalidation never races with a slow loader.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	gens    map[string]uint64
	ttl     time.Duration
	flight  singleflight.Group
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(key)
}

func (s *Store[V]) lookupLocked(key string) (V, bool) {
	e, ok := s.entries[key]
	if ok && e.live(s.now()) {
		return e.value, true
	}
	if ok {
		delete(s.entries, key)
	}
	var zero V
	return zero, false
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.storeLocked(key, value)
	s.mu.Unlock()
}

func (s *Store[V]) storeLocked(key string, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = e
}

// Delete drops key and bumps its generation so an in-flight load does not
// write back a value computed before the delete.
func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
	s.flight.Forget(key)
}

// GetOrLoad returns the cached value for key, or runs loader once for every
// concurrent caller. Errors are returned to all waiters and never cached. An
// empty key bypasses the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNoLoader
	}
	if key == "" {
		return loader(ctx)
	}

	s.mu.Lock()
	if value, ok := s.lookupLocked(key); ok {
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	result, err, _ := s.flight.Do(key, func() (any, error) {
		s.mu.Lock()
		gen := s.gens[key]
		s.mu.Unlock()

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gens[key] == gen {
			s.storeLocked(key, loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(V), nil
}
