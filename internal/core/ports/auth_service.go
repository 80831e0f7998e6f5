package ports

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// SignupInput carries the self-declared account details.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by successful signup and login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	User        *domain.SanitizedUser
}

// AuthService defines account use cases.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SetActive(ctx context.Context, actor *domain.SanitizedUser, email string, active bool) (*domain.SanitizedUser, error)
}
