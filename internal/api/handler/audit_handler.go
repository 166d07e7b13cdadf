package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/api/middleware"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// AuditHandler exposes per-owner access notifications over HTTP (C9).
type AuditHandler struct {
	service ports.AuditService
}

// NewAuditHandler wires an AuditHandler.
func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns every access notification for the authenticated owner,
// most recent first (§4.9).
func (h *AuditHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}

	notifications, err := h.service.ListAccesses(c.Request().Context(), claims, claims.Subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]domain.AccessNotification{"accesses": notifications})
}
