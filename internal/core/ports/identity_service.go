package ports

import (
	"context"
	"time"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

// RegisterInput carries the data needed to register a new user (§4.7.1).
type RegisterInput struct {
	Username    string
	DisplayName string
	Password    string
	Roles       []string
}

// Credentials carries a pair of minted bearer credentials with lifetimes.
type Credentials struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User        *domain.User
	Credentials Credentials
}

// IdentityService implements registration, login, refresh, logout, and
// auto-login on top of the password hasher, ledger client, token core, and
// persistence store (C7).
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh rotates a refresh credential: the presented credential is
	// permanently unusable after a successful call (§4.7.3).
	Refresh(ctx context.Context, refreshCredential string) (*Credentials, error)
	// Logout accepts one or both credentials and revokes whichever verify
	// successfully; malformed or already-expired credentials are ignored.
	Logout(ctx context.Context, access, refresh string) error
	// AutoLogin is a bypass-class facility: it returns the same public
	// projection as Login without issuing any credential (§4.7.5, §7).
	AutoLogin(ctx context.Context, username, userID string) (*domain.User, error)
}
