package memory

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// AuditRepository appends audit events to the authevent collection of a
// DocumentStore.
type AuditRepository struct {
	docs *DocumentStore
}

func NewAuditRepository(docs *DocumentStore) *AuditRepository {
	return &AuditRepository{docs: docs}
}

func (r *AuditRepository) InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	_, err := r.docs.Insert(ctx, domain.CollectionAuthEvents, domain.Document{
		"event_id":    event.ID,
		"email":       event.Email,
		"kind":        string(event.Kind),
		"role":        string(event.Role),
		"actor":       event.Actor,
		"occurred_at": event.OccurredAt,
	})
	return err
}
