package auth

import (
	"sync"
	"time"

	"github.com/ndavault/nda-vault/internal/core/ports"
)

// Registry is the in-memory, time-indexed blacklist of revoked credential
// ids (C5). A single writer (Revoke/Sweep) and many concurrent readers
// (IsRevoked, from every authenticated request) are expected, so access is
// guarded by a sync.RWMutex rather than a channel-serialized design.
type Registry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{revoked: make(map[string]time.Time)}
}

var _ ports.RevocationRegistry = (*Registry)(nil)

// Revoke marks tokenID as revoked. expiresAt is the credential's own
// expiry: once it passes, the entry is eligible to be swept, since an
// expired credential can never be presented as valid again regardless of
// its revocation status.
func (r *Registry) Revoke(tokenID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = expiresAt
}

// IsRevoked reports whether tokenID has been revoked and has not yet been
// swept.
func (r *Registry) IsRevoked(tokenID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[tokenID]
	return ok
}

// Sweep deletes every entry whose expires_at has passed and returns the
// count removed.
func (r *Registry) Sweep() int {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, expiresAt := range r.revoked {
		if !expiresAt.After(now) {
			delete(r.revoked, id)
			removed++
		}
	}
	return removed
}

// Size returns the number of entries currently tracked, including ones
// eligible for but not yet removed by Sweep.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
