package crypto

import "golang.org/x/crypto/bcrypt"

// PasswordHasher transforms a password into a verifier that is costly to
// invert (C2), adapted from the teacher's bcrypt usage in
// core/service/auth_service.go.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a PasswordHasher. cost <= 0 uses bcrypt's
// default cost (10), matching the spec's minimum work factor.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns an adaptive digest with embedded salt and work factor. No
// plaintext password is ever stored, logged, or returned.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. bcrypt's comparison is
// constant-time over digests of equal length.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
