package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/api/middleware"
	"github.com/proton-market/marketplace-api/internal/core/domain"
)

const (
	// IdempotencyKeyHeader lets clients retry create requests safely.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayedHeader is set on responses replayed for a known key.
	IdempotentReplayedHeader = "Idempotent-Replayed"
)

// currentUser returns the caller injected by the Auth middleware. A missing
// caller means the route was registered without Auth, which is a wiring bug.
func currentUser(c echo.Context) (*domain.SanitizedUser, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}
	return user, nil
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// Both failures are reported as 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
