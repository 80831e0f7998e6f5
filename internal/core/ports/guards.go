package ports

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// IdempotencyStore binds a client-supplied Idempotency-Key to the document
// it created so a retried request returns the original result.
//
// Claim atomically reserves key within scope. When claimed is false the key
// is already held: id is the stored result, or empty while the owning
// request is still running. The owner must follow a successful Claim with
// Complete, or Release when the create fails.
type IdempotencyStore interface {
	Claim(ctx context.Context, scope, key string) (id string, claimed bool, err error)
	Complete(ctx context.Context, scope, key, id string) error
	Release(ctx context.Context, scope, key string) error
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RegisterFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditRecorder accepts authentication audit events. Record must not block
// the request path.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}
