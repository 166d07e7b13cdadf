package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

type stubIdentityService struct {
	registerFn  func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn     func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	refreshFn   func(ctx context.Context, refresh string) (*ports.Credentials, error)
	logoutFn    func(ctx context.Context, access, refresh string) error
	autoLoginFn func(ctx context.Context, username, userID string) (*domain.User, error)
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubIdentityService) Refresh(ctx context.Context, refresh string) (*ports.Credentials, error) {
	return s.refreshFn(ctx, refresh)
}

func (s *stubIdentityService) Logout(ctx context.Context, access, refresh string) error {
	return s.logoutFn(ctx, access, refresh)
}

func (s *stubIdentityService) AutoLogin(ctx context.Context, username, userID string) (*domain.User, error) {
	return s.autoLoginFn(ctx, username, userID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubIdentityService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || len(in.Roles) != 1 || in.Roles[0] != domain.RoleClient {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Username: in.Username, Roles: in.Roles}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"hunter2pass","roles":["client"]}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]*domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["user"].Username != "alice" {
		t.Fatalf("unexpected user in response: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_RejectsInvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubIdentityService{})

	body := strings.NewReader(`{"username":""}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				User: &domain.User{Username: username},
				Credentials: ports.Credentials{Access: "access-tok", Refresh: "refresh-tok"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"hunter2pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate to the error handler, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubIdentityService{
		refreshFn: func(ctx context.Context, refresh string) (*ports.Credentials, error) {
			if refresh != "old-refresh" {
				t.Fatalf("unexpected refresh credential: %q", refresh)
			}
			return &ports.Credentials{Access: "new-access", Refresh: "new-refresh"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"refresh":"old-refresh"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubIdentityService{
		logoutFn: func(ctx context.Context, access, refresh string) error {
			called = true
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"access":"a","refresh":"r"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("expected identity service Logout to be called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_AutoLogin_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubIdentityService{
		autoLoginFn: func(ctx context.Context, username, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","user_id":"u1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/auto-login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.AutoLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
