package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

// ClaimsContextKey is the echo.Context key the request boundary stores
// verified claims under.
const ClaimsContextKey = "claims"

// Auth implements the request boundary (C10): extract the bearer
// credential, verify it, consult the revocation registry, and yield the
// claims to the handler. Any failure yields Unauthorized. Role checks are
// left to the handler since they are operation-specific.
func Auth(tokens ports.TokenCore, registry ports.RevocationRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			credential, ok := tokens.ParseBearer(header)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			claims, err := tokens.Verify(credential)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired credential")
			}

			if registry.IsRevoked(claims.TokenID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "credential has been revoked")
			}

			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext extracts the claims injected by Auth. Presence proves
// the middleware ran; ok is false only if it did not.
func ClaimsFromContext(c echo.Context) (domain.TokenClaims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(domain.TokenClaims)
	return claims, ok
}
