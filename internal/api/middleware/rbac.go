package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC rejects requests whose claims carry none of allowedRoles. It must
// run after Auth, which is what populates the claims RBAC reads.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			for _, role := range claims.Roles {
				if _, match := allowed[role]; match {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
