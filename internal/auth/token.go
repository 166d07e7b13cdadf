// Package auth implements the auth-token core (C4) and the revocation
// registry (C5). See SPEC_FULL.md §4.4-4.5.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndavault/nda-vault/internal/api/metrics"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// Default credential lifetimes (§4.4).
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Failure kinds for Verify (§4.4).
var (
	ErrMalformed    = errors.New("auth: malformed credential")
	ErrBadSignature = errors.New("auth: bad signature")
	ErrExpired      = errors.New("auth: credential expired")
)

// TokenCore mints and verifies HMAC-signed bearer credentials, generalized
// from the teacher's core/service/auth_service.go generateToken and
// api/middleware/auth.go parsing logic to two lifetimes with a revocable jti.
type TokenCore struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCore returns a TokenCore signing with secret (>= 32 bytes per
// §6.4). Zero-value TTLs fall back to the spec's defaults; a negative TTL is
// honored verbatim so callers (and tests) can mint an already-expired
// credential.
func NewTokenCore(secret []byte, accessTTL, refreshTTL time.Duration) *TokenCore {
	if accessTTL == 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL == 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenCore{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

var _ ports.TokenCore = (*TokenCore)(nil)

// MintAccess mints a short-lived access credential for user.
func (t *TokenCore) MintAccess(user *domain.User) (string, time.Time, error) {
	credential, expiresAt, err := t.mint(user, t.accessTTL)
	if err == nil {
		metrics.CredentialsMintedTotal.WithLabelValues("access").Inc()
	}
	return credential, expiresAt, err
}

// MintRefresh mints a long-lived refresh credential for user.
func (t *TokenCore) MintRefresh(user *domain.User) (string, time.Time, error) {
	credential, expiresAt, err := t.mint(user, t.refreshTTL)
	if err == nil {
		metrics.CredentialsMintedTotal.WithLabelValues("refresh").Inc()
	}
	return credential, expiresAt, err
}

func (t *TokenCore) mint(user *domain.User, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"roles":    user.Roles,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"jti":      domain.NewEntityID(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign credential: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, structure, and expiry, returning the claims.
// No algorithm other than HMAC-SHA256 is ever accepted.
func (t *TokenCore) Verify(credential string) (domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.CredentialsVerifiedTotal.WithLabelValues("expired").Inc()
			return domain.TokenClaims{}, ErrExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			metrics.CredentialsVerifiedTotal.WithLabelValues("bad_signature").Inc()
			return domain.TokenClaims{}, ErrBadSignature
		}
		metrics.CredentialsVerifiedTotal.WithLabelValues("malformed").Inc()
		return domain.TokenClaims{}, ErrMalformed
	}
	if !parsed.Valid {
		metrics.CredentialsVerifiedTotal.WithLabelValues("malformed").Inc()
		return domain.TokenClaims{}, ErrMalformed
	}

	result, err := claimsFromMap(claims)
	if err != nil {
		metrics.CredentialsVerifiedTotal.WithLabelValues("malformed").Inc()
		return result, err
	}
	metrics.CredentialsVerifiedTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func claimsFromMap(m jwt.MapClaims) (domain.TokenClaims, error) {
	sub, _ := m["sub"].(string)
	username, _ := m["username"].(string)
	jti, _ := m["jti"].(string)
	if sub == "" || jti == "" {
		return domain.TokenClaims{}, ErrMalformed
	}

	var roles []string
	if raw, ok := m["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	iat, err := numericDate(m["iat"])
	if err != nil {
		return domain.TokenClaims{}, ErrMalformed
	}
	exp, err := numericDate(m["exp"])
	if err != nil {
		return domain.TokenClaims{}, ErrMalformed
	}
	if exp.Before(time.Now().UTC()) {
		return domain.TokenClaims{}, ErrExpired
	}

	return domain.TokenClaims{
		Subject:   sub,
		Username:  username,
		Roles:     roles,
		IssuedAt:  iat,
		ExpiresAt: exp,
		TokenID:   jti,
	}, nil
}

func numericDate(v interface{}) (time.Time, error) {
	f, ok := v.(float64)
	if !ok {
		return time.Time{}, ErrMalformed
	}
	return time.Unix(int64(f), 0).UTC(), nil
}

// ParseBearer extracts the credential from a "Bearer <token>" header value
// (case-insensitive scheme, single-space separator), adapted from the
// teacher's middleware/auth.go header parsing.
func (t *TokenCore) ParseBearer(headerValue string) (string, bool) {
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
