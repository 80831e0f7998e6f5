package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// Root handles GET /.
//
// @Summary  Service banner
// @Tags     info
// @Produce  json
// @Success  200  {object}  messageResponse
// @Router   / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Proton API running"})
}

// Schema handles GET /schema and lists the collections the service manages.
//
// @Summary  Known collections
// @Tags     info
// @Produce  json
// @Success  200  {object}  schemaResponse
// @Router   /schema [get]
func Schema(c echo.Context) error {
	return c.JSON(http.StatusOK, schemaResponse{Collections: append([]string(nil), domain.Collections...)})
}
