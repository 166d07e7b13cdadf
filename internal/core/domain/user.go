package domain

import "time"

const (
	RoleClient  = "client"
	RolePartner = "partner"
)

// User models an authenticated principal: a client who creates and shares
// processes, or a partner who receives and accesses them (or both).
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	PasswordDigest  string    `json:"-"`
	LedgerPublicKey string    `json:"ledger_public_key"`
	LedgerSecretKey string    `json:"-"`
	Roles           []string  `json:"roles"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Public returns the projection of the user safe to return over any
// external boundary: password_digest and ledger_secret_key are excluded.
func (u *User) Public() *User {
	clone := *u
	clone.PasswordDigest = ""
	clone.LedgerSecretKey = ""
	return &clone
}
