package auth

import (
	"sync"
	"time"
)

// RevocationList tracks revoked token ids until their natural expiry.
// Entries are purged lazily, so the list never outgrows the set of tokens
// revoked within one token lifetime.
type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewRevocationList creates an empty revocation list.
func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: map[string]time.Time{}}
}

// Revoke marks a token id as revoked until the given expiry.
func (l *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purgeLocked()
	l.revoked[tokenID] = expiresAt
}

// IsRevoked reports whether a token id has been revoked.
func (l *RevocationList) IsRevoked(tokenID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purgeLocked()
	_, ok := l.revoked[tokenID]
	return ok
}

func (l *RevocationList) purgeLocked() {
	now := time.Now()
	for id, expiresAt := range l.revoked {
		if now.After(expiresAt) {
			delete(l.revoked, id)
		}
	}
}
