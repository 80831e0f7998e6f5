package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/domain"
	"github.com/proton-market/marketplace-api/internal/core/ports"
)

// MarketplaceHandler serves the vendor, buyer, investor and job endpoints.
// Role checks happen in the RBAC middleware before any method here runs.
type MarketplaceHandler struct {
	service ports.MarketplaceService
}

func NewMarketplaceHandler(service ports.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}

// CreateProduct handles POST /vendor/products.
//
// @Summary      List a product
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /vendor/products [post]
func (h *MarketplaceHandler) CreateProduct(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.CreateProduct(c.Request().Context(), user, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// ListMyProducts handles GET /vendor/products.
//
// @Summary      List the caller's products
// @Tags         vendor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /vendor/products [get]
func (h *MarketplaceHandler) ListMyProducts(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	docs, err := h.service.ListMyProducts(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(docs))
}

// CreateRequirement handles POST /buyer/requirements.
//
// @Summary      Post a requirement
// @Tags         buyer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      requirementRequest  true  "Requirement"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /buyer/requirements [post]
func (h *MarketplaceHandler) CreateRequirement(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req requirementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.CreateRequirement(c.Request().Context(), user, toRequirementInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// ListMyRequirements handles GET /buyer/requirements.
//
// @Summary      List the caller's requirements
// @Tags         buyer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /buyer/requirements [get]
func (h *MarketplaceHandler) ListMyRequirements(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	docs, err := h.service.ListMyRequirements(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(docs))
}

// CreateProject handles POST /investor/projects.
//
// @Summary      Create an investment project
// @Tags         investor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /investor/projects [post]
func (h *MarketplaceHandler) CreateProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.CreateProject(c.Request().Context(), user, toProjectInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// ListProjects handles GET /investor/projects. Public.
//
// @Summary      List investment projects
// @Tags         investor
// @Produce      json
// @Success      200  {array}  object
// @Router       /investor/projects [get]
func (h *MarketplaceHandler) ListProjects(c echo.Context) error {
	docs, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(docs))
}

// Invest handles POST /investor/invest.
//
// @Summary      Invest in a project
// @Tags         investor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Replay protection key"
// @Param        body             body      investRequest  true   "Investment"
// @Success      201              {object}  createdResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /investor/invest [post]
func (h *MarketplaceHandler) Invest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req investRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(IdempotencyKeyHeader)
	res, err := h.service.Invest(c.Request().Context(), user, toInvestInput(req, key))
	if err != nil {
		return err
	}
	markReplay(c, res)
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// CreateJob handles POST /job/listings.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job listing"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /job/listings [post]
func (h *MarketplaceHandler) CreateJob(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.CreateJob(c.Request().Context(), user, toJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// ListJobs handles GET /job/listings. Public.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  object
// @Router       /job/listings [get]
func (h *MarketplaceHandler) ListJobs(c echo.Context) error {
	docs, err := h.service.ListJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(docs))
}

// Apply handles POST /job/apply.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Replay protection key"
// @Param        body             body      applyRequest  true   "Application"
// @Success      201              {object}  createdResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /job/apply [post]
func (h *MarketplaceHandler) Apply(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(IdempotencyKeyHeader)
	res, err := h.service.Apply(c.Request().Context(), user, toApplyInput(req, key))
	if err != nil {
		return err
	}
	markReplay(c, res)
	return c.JSON(http.StatusCreated, toCreatedResponse(res))
}

// markReplay flags a response that was served from an earlier request with
// the same Idempotency-Key. The body and status match the original.
func markReplay(c echo.Context, res *ports.CreatedResult) {
	if res.Replayed {
		c.Response().Header().Set(IdempotentReplayedHeader, "true")
	}
}

// nonNil renders an empty result as [] rather than null.
func nonNil(docs []domain.Document) []domain.Document {
	if docs == nil {
		return []domain.Document{}
	}
	return docs
}
