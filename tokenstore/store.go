// Package tokenstore keeps revoked JWT IDs until their natural expiry.
// It replaces an ad-hoc in-process set with an explicitly constructed
// store that owns its cleanup lifecycle.
package tokenstore

import (
	"sync"
	"time"
)

type Store struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

func New(cleanupInterval time.Duration) *Store {
	s := &Store{
		revoked: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go s.janitor(cleanupInterval)
	return s
}

// Revoke marks a token ID as revoked until the given expiry. Entries
// past their expiry are swept by the janitor; IsRevoked also checks the
// deadline so a stale entry never extends a revocation.
func (s *Store) Revoke(jti string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = expiresAt
}

func (s *Store) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiresAt, ok := s.revoked[jti]
	return ok && time.Now().Before(expiresAt)
}

func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for jti, expiresAt := range s.revoked {
				if now.After(expiresAt) {
					delete(s.revoked, jti)
				}
			}
			s.mu.Unlock()
		}
	}
}
