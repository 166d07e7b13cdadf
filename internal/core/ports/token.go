package ports

import (
	"time"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

// TokenCore mints and validates the two bearer credential tiers (C4).
type TokenCore interface {
	MintAccess(user *domain.User) (credential string, expiresAt time.Time, err error)
	MintRefresh(user *domain.User) (credential string, expiresAt time.Time, err error)
	// Verify checks signature, structure, and expiry, returning the claims.
	Verify(credential string) (domain.TokenClaims, error)
	// ParseBearer extracts the credential from a "Bearer <token>" header
	// value (case-insensitive scheme, single-space separator). Returns
	// ("", false) if the header does not match that shape.
	ParseBearer(headerValue string) (credential string, ok bool)
}

// RevocationRegistry is the in-memory, time-indexed blacklist of revoked
// credential ids (C5).
type RevocationRegistry interface {
	Revoke(tokenID string, expiresAt time.Time)
	IsRevoked(tokenID string) bool
	// Sweep deletes every entry with expires_at <= now and returns the count removed.
	Sweep() int
	Size() int
}
