package auth

import (
	"testing"
	"time"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       domain.NewEntityID(),
		Username: "alice",
		Roles:    []string{domain.RoleClient},
	}
}

func TestTokenCore_MintAndVerifyAccess(t *testing.T) {
	core := NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), 0, 0)
	user := testUser()

	credential, expiresAt, err := core.MintAccess(user)
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}
	if time.Until(expiresAt) > DefaultAccessTTL {
		t.Fatalf("expiresAt too far in the future: %v", expiresAt)
	}

	claims, err := core.Verify(credential)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, user.ID)
	}
	if claims.Username != user.Username {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, user.Username)
	}
	if !claims.HasRole(domain.RoleClient) {
		t.Fatalf("expected role %q in claims", domain.RoleClient)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected non-empty token id")
	}
}

func TestTokenCore_MintRefreshOutlivesAccess(t *testing.T) {
	core := NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), 0, 0)
	user := testUser()

	_, accessExp, err := core.MintAccess(user)
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}
	_, refreshExp, err := core.MintRefresh(user)
	if err != nil {
		t.Fatalf("MintRefresh: %v", err)
	}
	if !refreshExp.After(accessExp) {
		t.Fatalf("expected refresh expiry %v after access expiry %v", refreshExp, accessExp)
	}
}

func TestTokenCore_Verify_RejectsWrongSecret(t *testing.T) {
	core := NewTokenCore([]byte("secret-a-secret-a-secret-a-secret"), 0, 0)
	other := NewTokenCore([]byte("secret-b-secret-b-secret-b-secret"), 0, 0)

	credential, _, err := core.MintAccess(testUser())
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}

	if _, err := other.Verify(credential); err != ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestTokenCore_Verify_RejectsExpired(t *testing.T) {
	core := NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), -1*time.Minute, 0)

	credential, _, err := core.MintAccess(testUser())
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}

	if _, err := core.Verify(credential); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestTokenCore_Verify_RejectsMalformed(t *testing.T) {
	core := NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), 0, 0)

	if _, err := core.Verify("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed credential")
	}
}

func TestTokenCore_ParseBearer(t *testing.T) {
	core := NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), 0, 0)

	cases := []struct {
		header    string
		wantToken string
		wantOK    bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
		{"Bearer ", "", false},
	}

	for _, c := range cases {
		token, ok := core.ParseBearer(c.header)
		if ok != c.wantOK || token != c.wantToken {
			t.Fatalf("ParseBearer(%q) = (%q, %v), want (%q, %v)", c.header, token, ok, c.wantToken, c.wantOK)
		}
	}
}
