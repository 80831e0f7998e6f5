package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// UserKey is the echo context key holding the authenticated caller.
const UserKey = "user"

// SessionResolver turns an Authorization header into the caller's identity.
type SessionResolver interface {
	Resolve(ctx context.Context, header string) (*domain.SanitizedUser, error)
}

// Auth resolves the bearer token and injects the caller into context.
// Resolution errors are returned as-is for the HTTP error handler to map.
func Auth(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			user, err := resolver.Resolve(c.Request().Context(), header)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the caller injected by Auth, or nil.
func CurrentUser(c echo.Context) *domain.SanitizedUser {
	user, _ := c.Get(UserKey).(*domain.SanitizedUser)
	return user
}
