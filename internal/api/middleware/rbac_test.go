package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/proton-market/marketplace-api/internal/core/auth"
	"github.com/proton-market/marketplace-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(UserKey, &domain.SanitizedUser{ID: "u1", Role: domain.RoleAdmin})

	called := false
	handler := RBAC(auth.ActionJobCreate)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(UserKey, &domain.SanitizedUser{ID: "u1", Role: domain.RoleBuyer})

	handler := RBAC(auth.ActionProductCreate)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var denied *domain.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("err = %v, want AccessDeniedError", err)
	}
	if denied.Detail != "Only vendors can create products" {
		t.Fatalf("detail = %q", denied.Detail)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden in chain")
	}
}

func TestRBAC_RequiresCaller(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := RBAC(auth.ActionAdminOverview)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrAuthHeaderMissing) {
		t.Fatalf("err = %v, want ErrAuthHeaderMissing", err)
	}
}
