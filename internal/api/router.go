package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/proton-market/marketplace-api/docs"
	"github.com/proton-market/marketplace-api/internal/api/handler"
	"github.com/proton-market/marketplace-api/internal/api/middleware"
	"github.com/proton-market/marketplace-api/internal/core/auth"
	"github.com/proton-market/marketplace-api/internal/core/ports"
)

// Dependencies carries everything the HTTP layer needs. Services are built
// by the caller so the router stays free of storage concerns.
type Dependencies struct {
	Sessions    middleware.SessionResolver
	Auth        ports.AuthService
	Marketplace ports.MarketplaceService
	// HealthChecks feeds /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Pinger
	Log          zerolog.Logger
	// AllowOrigins configures CORS. Empty allows any origin.
	AllowOrigins []string
	// Registerer enables HTTP metrics and /metrics when non-nil. The same
	// registry must not be handed to two routers.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins(deps.AllowOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.IdempotencyKeyHeader,
		},
	}))
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: deps.Registerer,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}

	requireAuth := middleware.Auth(deps.Sessions)
	// guard returns the middleware chain protecting action.
	guard := func(action auth.Action) []echo.MiddlewareFunc {
		if auth.IsPublic(action) {
			return nil
		}
		return []echo.MiddlewareFunc{requireAuth, middleware.RBAC(action)}
	}

	// --- Info & docs ---
	e.GET("/", handler.Root)
	e.GET("/schema", handler.Schema)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Marketplace routes ---
	mh := handler.NewMarketplaceHandler(deps.Marketplace)
	e.POST("/vendor/products", mh.CreateProduct, guard(auth.ActionProductCreate)...)
	e.GET("/vendor/products", mh.ListMyProducts, guard(auth.ActionProductListOwn)...)
	e.POST("/buyer/requirements", mh.CreateRequirement, guard(auth.ActionRequirementCreate)...)
	e.GET("/buyer/requirements", mh.ListMyRequirements, guard(auth.ActionRequirementList)...)
	e.POST("/investor/projects", mh.CreateProject, guard(auth.ActionProjectCreate)...)
	e.GET("/investor/projects", mh.ListProjects, guard(auth.ActionProjectList)...)
	e.POST("/investor/invest", mh.Invest, guard(auth.ActionProjectInvest)...)
	e.POST("/job/listings", mh.CreateJob, guard(auth.ActionJobCreate)...)
	e.GET("/job/listings", mh.ListJobs, guard(auth.ActionJobList)...)
	e.POST("/job/apply", mh.Apply, guard(auth.ActionJobApply)...)

	// --- Admin routes ---
	ah := handler.NewAdminHandler(deps.Marketplace, deps.Auth)
	e.GET("/admin/overview", ah.Overview, guard(auth.ActionAdminOverview)...)
	e.PATCH("/admin/users/:email/status", ah.SetUserStatus, guard(auth.ActionAdminUserStatus)...)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
