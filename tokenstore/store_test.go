package tokenstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokeAndCheck(t *testing.T) {
	store := New(time.Minute)
	defer store.Close()

	assert.False(t, store.IsRevoked("unknown"))

	store.Revoke("token-1", time.Now().Add(time.Hour))
	assert.True(t, store.IsRevoked("token-1"))
}

func TestExpiredRevocationIsIgnored(t *testing.T) {
	store := New(time.Minute)
	defer store.Close()

	store.Revoke("token-1", time.Now().Add(-time.Second))
	assert.False(t, store.IsRevoked("token-1"))
}

func TestJanitorSweepsExpiredEntries(t *testing.T) {
	store := New(10 * time.Millisecond)
	defer store.Close()

	store.Revoke("token-1", time.Now().Add(5*time.Millisecond))

	assert.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		_, ok := store.revoked["token-1"]
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := New(time.Minute)
	store.Close()
	store.Close()
}
