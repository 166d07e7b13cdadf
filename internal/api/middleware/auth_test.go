package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/auth"
	"github.com/ndavault/nda-vault/internal/core/domain"
)

func newTestCore() *auth.TokenCore {
	return auth.NewTokenCore([]byte("0123456789abcdef0123456789abcdef"), 0, 0)
}

func TestAuthMiddleware_ValidCredential(t *testing.T) {
	e := echo.New()
	core := newTestCore()
	registry := auth.NewRegistry()

	credential, _, err := core.MintAccess(&domain.User{ID: "u1", Username: "alice", Roles: []string{domain.RoleClient}})
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+credential)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(core, registry)(func(c echo.Context) error {
		called = true
		claims, ok := ClaimsFromContext(c)
		if !ok {
			t.Fatalf("expected claims to be set")
		}
		if claims.Username != "alice" {
			t.Fatalf("unexpected username: %q", claims.Username)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTestCore(), auth.NewRegistry())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidCredential(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-credential")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTestCore(), auth.NewRegistry())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedCredential(t *testing.T) {
	e := echo.New()
	core := newTestCore()
	registry := auth.NewRegistry()

	credential, _, err := core.MintAccess(&domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("MintAccess: %v", err)
	}
	claims, err := core.Verify(credential)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	registry.Revoke(claims.TokenID, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+credential)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(core, registry)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
