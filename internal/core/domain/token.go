package domain

import "time"

// TokenClaims is the transient, never-persisted payload carried by a bearer
// credential (SPEC_FULL.md §3).
type TokenClaims struct {
	Subject   string
	Username  string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
	TokenID   string
}

// HasRole reports whether the claims carry the given role.
func (c TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
