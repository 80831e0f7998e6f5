package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/domain"
	"github.com/proton-market/marketplace-api/internal/core/ports"
)

// AdminHandler serves the admin-only endpoints.
type AdminHandler struct {
	marketplace ports.MarketplaceService
	auth        ports.AuthService
}

func NewAdminHandler(marketplace ports.MarketplaceService, auth ports.AuthService) *AdminHandler {
	return &AdminHandler{marketplace: marketplace, auth: auth}
}

// Overview handles GET /admin/overview.
//
// @Summary      Collection counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Overview
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.marketplace.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// SetUserStatus handles PATCH /admin/users/:email/status.
//
// @Summary      Activate or deactivate an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string             true  "Account email"
// @Param        body   body      userStatusRequest  true  "New status"
// @Success      200    {object}  domain.SanitizedUser
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /admin/users/{email}/status [patch]
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req userStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.SetActive(c.Request().Context(), actor, c.Param("email"), *req.IsActive)
	if err != nil {
		// Here the unknown account is the path target, not the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}
