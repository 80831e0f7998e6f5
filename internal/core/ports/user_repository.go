package ports

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for identities in the "user" collection.
// Implementations must enforce email uniqueness and report a collision as
// domain.ErrDuplicateEmail.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, email string, active bool) (*domain.User, error)
}
