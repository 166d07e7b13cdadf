package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/api/middleware"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// ProcessHandler exposes creation, listing, sharing, and authorized access
// of confidential processes over HTTP (C8).
type ProcessHandler struct {
	service ports.ProcessService
}

// NewProcessHandler wires a ProcessHandler.
func NewProcessHandler(service ports.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

type createProcessRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	ConfidentialBody string `json:"confidential_body" validate:"required"`
}

type shareProcessRequest struct {
	PartnerPublicKey string `json:"partner_public_key" validate:"required"`
}

type accessProcessRequest struct {
	PartnerUsername  string `json:"partner_username" validate:"required"`
	PartnerPublicKey string `json:"partner_public_key" validate:"required"`
}

type shareResponse struct {
	ID               string `json:"id"`
	ProcessID        string `json:"process_id"`
	PartnerPublicKey string `json:"partner_public_key"`
	LedgerTxnHash    string `json:"ledger_txn_hash"`
	SharedAt         string `json:"shared_at"`
}

func toShareResponse(s *domain.Share) shareResponse {
	return shareResponse{
		ID:               s.ID,
		ProcessID:        s.ProcessID,
		PartnerPublicKey: s.PartnerPublicKey,
		LedgerTxnHash:    s.LedgerTxnHash,
		SharedAt:         s.SharedAt.Format(timeLayout),
	}
}

type accessResultResponse struct {
	ProcessID   string `json:"process_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	AccessedAt  string `json:"accessed_at"`
}

func toAccessResultResponse(r *ports.AccessResult) accessResultResponse {
	return accessResultResponse{
		ProcessID:   r.ProcessID,
		Title:       r.Title,
		Description: r.Description,
		Body:        r.Body,
		AccessedAt:  r.AccessedAt.Format(timeLayout),
	}
}

// Create creates a new confidential process owned by the authenticated
// client (§4.8.1).
func (h *ProcessHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}

	var req createProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	process, err := h.service.CreateProcess(c.Request().Context(), claims, ports.CreateProcessInput{
		OwnerID:          claims.Subject,
		Title:            req.Title,
		Description:      req.Description,
		ConfidentialBody: req.ConfidentialBody,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, process)
}

// List returns every process owned by the authenticated client, newest
// first (§4.8.2).
func (h *ProcessHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}

	processes, err := h.service.ListProcesses(c.Request().Context(), claims, claims.Subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]domain.ProcessProjection{"processes": processes})
}

// Share anchors a share grant for a process on the ledger (§4.8.3).
func (h *ProcessHandler) Share(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}

	var req shareProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	share, err := h.service.ShareProcess(c.Request().Context(), claims, ports.ShareProcessInput{
		OwnerUsername:    claims.Username,
		ProcessID:        c.Param("id"),
		PartnerPublicKey: req.PartnerPublicKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toShareResponse(share))
}

// Access decrypts and returns a process body for an authorized partner
// (§4.8.4).
func (h *ProcessHandler) Access(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}

	var req accessProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.AccessProcess(c.Request().Context(), claims, ports.AccessProcessInput{
		ProcessID:        c.Param("id"),
		PartnerUsername:  req.PartnerUsername,
		PartnerPublicKey: req.PartnerPublicKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccessResultResponse(result))
}
