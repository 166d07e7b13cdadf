package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/api/middleware"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

type stubProcessService struct {
	createFn func(ctx context.Context, claims domain.TokenClaims, in ports.CreateProcessInput) (domain.ProcessProjection, error)
	listFn   func(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.ProcessProjection, error)
	shareFn  func(ctx context.Context, claims domain.TokenClaims, in ports.ShareProcessInput) (*domain.Share, error)
	accessFn func(ctx context.Context, claims domain.TokenClaims, in ports.AccessProcessInput) (*ports.AccessResult, error)
}

func (s *stubProcessService) CreateProcess(ctx context.Context, claims domain.TokenClaims, in ports.CreateProcessInput) (domain.ProcessProjection, error) {
	return s.createFn(ctx, claims, in)
}

func (s *stubProcessService) ListProcesses(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.ProcessProjection, error) {
	return s.listFn(ctx, claims, ownerID)
}

func (s *stubProcessService) ShareProcess(ctx context.Context, claims domain.TokenClaims, in ports.ShareProcessInput) (*domain.Share, error) {
	return s.shareFn(ctx, claims, in)
}

func (s *stubProcessService) AccessProcess(ctx context.Context, claims domain.TokenClaims, in ports.AccessProcessInput) (*ports.AccessResult, error) {
	return s.accessFn(ctx, claims, in)
}

func ownerRequestContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ClaimsContextKey, domain.TokenClaims{
		Subject:  "owner-id-1",
		Username: "owner1",
		Roles:    []string{domain.RoleClient},
	})
	return c, rec
}

func TestProcessHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		createFn: func(ctx context.Context, claims domain.TokenClaims, in ports.CreateProcessInput) (domain.ProcessProjection, error) {
			if in.OwnerID != "owner-id-1" || in.Title != "contract" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return domain.ProcessProjection{ID: "p1", OwnerID: in.OwnerID, Title: in.Title, Status: domain.StatusActive}, nil
		},
	}
	handler := NewProcessHandler(stub)

	c, rec := ownerRequestContext(e, http.MethodPost, "/processes", `{"title":"contract","description":"d","confidential_body":"secret"}`)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProcessHandler_Create_RequiresClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewProcessHandler(&stubProcessService{})

	req := httptest.NewRequest(http.MethodPost, "/processes", strings.NewReader(`{"title":"x","confidential_body":"y"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	if err == nil {
		t.Fatalf("expected error without claims")
	}
}

func TestProcessHandler_List_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		listFn: func(ctx context.Context, claims domain.TokenClaims, ownerID string) ([]domain.ProcessProjection, error) {
			if ownerID != "owner-id-1" {
				t.Fatalf("unexpected owner id: %q", ownerID)
			}
			return []domain.ProcessProjection{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	handler := NewProcessHandler(stub)

	c, rec := ownerRequestContext(e, http.MethodGet, "/processes", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProcessHandler_Share_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		shareFn: func(ctx context.Context, claims domain.TokenClaims, in ports.ShareProcessInput) (*domain.Share, error) {
			if in.ProcessID != "p1" || in.PartnerPublicKey != "GPARTNERKEY" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Share{ID: "s1", ProcessID: in.ProcessID, PartnerPublicKey: in.PartnerPublicKey, SharedAt: time.Now()}, nil
		},
	}
	handler := NewProcessHandler(stub)

	c, rec := ownerRequestContext(e, http.MethodPost, "/processes/p1/shares", `{"partner_public_key":"GPARTNERKEY"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Share(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProcessHandler_Share_PropagatesForbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		shareFn: func(ctx context.Context, claims domain.TokenClaims, in ports.ShareProcessInput) (*domain.Share, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewProcessHandler(stub)

	c, _ := ownerRequestContext(e, http.MethodPost, "/processes/p1/shares", `{"partner_public_key":"GPARTNERKEY"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.Share(c)
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestProcessHandler_Access_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		accessFn: func(ctx context.Context, claims domain.TokenClaims, in ports.AccessProcessInput) (*ports.AccessResult, error) {
			if in.ProcessID != "p1" || in.PartnerUsername != "owner1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AccessResult{ProcessID: in.ProcessID, Title: "t", Body: "plaintext", AccessedAt: time.Now()}, nil
		},
	}
	handler := NewProcessHandler(stub)

	c, rec := ownerRequestContext(e, http.MethodPost, "/processes/p1/access", `{"partner_username":"owner1","partner_public_key":"GPARTNERKEY"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Access(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProcessHandler_Access_RejectsNotShared(t *testing.T) {
	e := newTestEcho()
	stub := &stubProcessService{
		accessFn: func(ctx context.Context, claims domain.TokenClaims, in ports.AccessProcessInput) (*ports.AccessResult, error) {
			return nil, domain.ErrNotShared
		},
	}
	handler := NewProcessHandler(stub)

	c, _ := ownerRequestContext(e, http.MethodPost, "/processes/p1/access", `{"partner_username":"owner1","partner_public_key":"GPARTNERKEY"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.Access(c)
	if err != domain.ErrNotShared {
		t.Fatalf("expected ErrNotShared to propagate, got %v", err)
	}
}
