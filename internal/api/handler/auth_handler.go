package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// AuthHandler exposes registration, login, refresh, logout, and
// auto-login (C7) over HTTP.
type AuthHandler struct {
	identity ports.IdentityService
}

// NewAuthHandler wires an AuthHandler.
func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerRequest struct {
	Username    string   `json:"username" validate:"required"`
	DisplayName string   `json:"display_name"`
	Password    string   `json:"password" validate:"required,min=8"`
	Roles       []string `json:"roles" validate:"required,min=1"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type logoutRequest struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type autoLoginRequest struct {
	Username string `json:"username" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
}

type credentialsResponse struct {
	Access           string `json:"access"`
	AccessExpiresAt  string `json:"access_expires_at"`
	Refresh          string `json:"refresh"`
	RefreshExpiresAt string `json:"refresh_expires_at"`
}

type authResponse struct {
	User        *domain.User        `json:"user"`
	Credentials credentialsResponse `json:"credentials"`
}

func toCredentialsResponse(c ports.Credentials) credentialsResponse {
	return credentialsResponse{
		Access:           c.Access,
		AccessExpiresAt:  c.AccessExpiresAt.Format(timeLayout),
		Refresh:          c.Refresh,
		RefreshExpiresAt: c.RefreshExpiresAt.Format(timeLayout),
	}
}

// Register creates a new user account, provisioning a funded ledger
// account in the process.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Roles:       req.Roles,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]*domain.User{"user": user})
}

// Login authenticates a user and mints a fresh credential pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		User:        result.User,
		Credentials: toCredentialsResponse(result.Credentials),
	})
}

// Refresh rotates a refresh credential.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	creds, err := h.identity.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]credentialsResponse{"credentials": toCredentialsResponse(*creds)})
}

// Logout revokes whichever of the supplied credentials verify
// successfully.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.identity.Logout(c.Request().Context(), req.Access, req.Refresh); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AutoLogin is the trust-bearing bypass facility (§4.7.5): it returns the
// same public projection as Login without issuing any credential. Callers
// must have already established trust in the supplied user id through some
// other channel.
func (h *AuthHandler) AutoLogin(c echo.Context) error {
	var req autoLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identity.AutoLogin(c.Request().Context(), req.Username, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]*domain.User{"user": user})
}
