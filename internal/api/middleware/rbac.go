package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/auth"
	"github.com/proton-market/marketplace-api/internal/core/domain"
	"github.com/proton-market/marketplace-api/internal/pkg/metrics"
)

// RBAC enforces the access policy for action. It must run after Auth.
func RBAC(action auth.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrAuthHeaderMissing
			}
			if err := auth.Authorize(action, user.Role); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues(string(action)).Inc()
				return err
			}
			return next(c)
		}
	}
}
