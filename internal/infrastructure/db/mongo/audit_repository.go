package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// AuditRepository persists authentication events to the authevent collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(domain.CollectionAuthEvents)}
}

// InsertAuthEvent stores one audit entry. Password material never reaches
// this layer.
func (r *AuditRepository) InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"event_id":    event.ID,
		"email":       event.Email,
		"kind":        string(event.Kind),
		"occurred_at": event.OccurredAt.UTC(),
	}
	if event.Role != "" {
		doc["role"] = string(event.Role)
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
