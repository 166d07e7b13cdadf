package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// PasswordHasher is the subset of internal/crypto.PasswordHasher the
// identity service depends on.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// IdentityService implements registration, login, refresh, logout, and
// auto-login (C7), generalized from the teacher's AuthService to the
// two-tier credential system and ledger-backed account provisioning.
type IdentityService struct {
	users    ports.UserRepository
	ledger   ports.LedgerClient
	tokens   ports.TokenCore
	registry ports.RevocationRegistry
	hasher   PasswordHasher
	log      zerolog.Logger
}

// NewIdentityService wires the identity service's dependencies.
func NewIdentityService(
	users ports.UserRepository,
	ledger ports.LedgerClient,
	tokens ports.TokenCore,
	registry ports.RevocationRegistry,
	hasher PasswordHasher,
	log zerolog.Logger,
) *IdentityService {
	return &IdentityService{
		users:    users,
		ledger:   ledger,
		tokens:   tokens,
		registry: registry,
		hasher:   hasher,
		log:      log,
	}
}

var _ ports.IdentityService = (*IdentityService)(nil)

// Register provisions a ledger account for the new user, funds it, hashes
// the password, and persists the user. If funding fails the user is never
// persisted — there is no partial state to clean up.
func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || len(in.Roles) == 0 {
		return nil, domain.ErrMalformed
	}
	for _, role := range in.Roles {
		if role != domain.RoleClient && role != domain.RolePartner {
			return nil, domain.ErrMalformed
		}
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("identity: lookup existing user: %w", err)
	}

	keypair, err := s.ledger.NewAccount()
	if err != nil {
		return nil, fmt.Errorf("%w: generate ledger account: %v", domain.ErrIntegration, err)
	}
	if err := s.ledger.FundTestAccount(ctx, keypair.PublicKey); err != nil {
		return nil, fmt.Errorf("%w: fund ledger account: %v", domain.ErrIntegration, err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	user := &domain.User{
		ID:              domain.NewEntityID(),
		Username:        in.Username,
		DisplayName:     in.DisplayName,
		PasswordDigest:  digest,
		LedgerPublicKey: keypair.PublicKey,
		LedgerSecretKey: keypair.SecretKey,
		Roles:           in.Roles,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Public(), nil
}

// Login verifies the username/password pair and mints a fresh credential
// pair. The absent-user and wrong-password cases both surface the same
// ErrInvalidCredentials so a caller cannot enumerate usernames.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity: lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordDigest) {
		return nil, domain.ErrInvalidCredentials
	}

	creds, err := s.mintCredentials(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{User: user.Public(), Credentials: creds}, nil
}

// Refresh rotates a refresh credential: the presented credential is
// revoked in the same call that mints its replacement, so it is
// permanently unusable afterward (§4.7.3). Revocation happens only after
// the new pair is minted, so a minting failure leaves the old credential
// valid.
func (s *IdentityService) Refresh(ctx context.Context, refreshCredential string) (*ports.Credentials, error) {
	claims, err := s.tokens.Verify(refreshCredential)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if s.registry.IsRevoked(claims.TokenID) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	creds, err := s.mintCredentials(user)
	if err != nil {
		return nil, err
	}

	s.registry.Revoke(claims.TokenID, claims.ExpiresAt)
	return &creds, nil
}

// Logout revokes whichever of access/refresh verifies successfully.
// Malformed or already-expired credentials are silently ignored so a
// client can always call Logout defensively.
func (s *IdentityService) Logout(ctx context.Context, access, refresh string) error {
	for _, credential := range []string{access, refresh} {
		if credential == "" {
			continue
		}
		claims, err := s.tokens.Verify(credential)
		if err != nil {
			continue
		}
		s.registry.Revoke(claims.TokenID, claims.ExpiresAt)
	}
	return nil
}

// AutoLogin returns the same public projection as Login without issuing
// any credential. This is a trust-bearing bypass (§4.7.5, §7): the caller
// is responsible for having already established trust in userID through
// some other channel.
func (s *IdentityService) AutoLogin(ctx context.Context, username, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Username != username {
		return nil, domain.ErrUnauthorized
	}
	return user.Public(), nil
}

func (s *IdentityService) mintCredentials(user *domain.User) (ports.Credentials, error) {
	access, accessExp, err := s.tokens.MintAccess(user)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("identity: mint access credential: %w", err)
	}
	refresh, refreshExp, err := s.tokens.MintRefresh(user)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("identity: mint refresh credential: %w", err)
	}
	return ports.Credentials{
		Access:           access,
		AccessExpiresAt:  accessExp,
		Refresh:          refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
