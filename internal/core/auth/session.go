package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// UserLookup is the read side of the user store the resolver depends on.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionResolver turns an Authorization header into the caller's identity.
// It only reads, so resolving the same header twice yields the same result.
type SessionResolver struct {
	codec *TokenCodec
	users UserLookup
}

// NewSessionResolver wires a resolver over codec and users.
func NewSessionResolver(codec *TokenCodec, users UserLookup) *SessionResolver {
	return &SessionResolver{codec: codec, users: users}
}

// Resolve validates header and loads the account named by the token subject.
func (r *SessionResolver) Resolve(ctx context.Context, header string) (*domain.SanitizedUser, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}

	claims, err := r.codec.Verify(raw)
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, domain.ErrUserNotFound
		case errors.Is(err, domain.ErrStoreUnavailable):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: resolve session: %w", domain.ErrStoreUnavailable, err)
		}
	}
	return user.Sanitize(), nil
}

// ParseBearer extracts the token from a "Bearer <token>" header value. The
// scheme comparison is case-insensitive.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", domain.ErrAuthHeaderMissing
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", domain.ErrAuthSchemeInvalid
	}
	return token, nil
}
