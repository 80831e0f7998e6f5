package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// EnsureIndexes creates the indexes the API relies on. The unique index on
// user.email is what enforces one account per email under concurrent signups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		domain.CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		domain.CollectionProducts:     {{Keys: bson.D{{Key: "vendor_id", Value: 1}}}},
		domain.CollectionRequirements: {{Keys: bson.D{{Key: "buyer_id", Value: 1}}}},
		domain.CollectionTransactions: {{Keys: bson.D{{Key: "investor_id", Value: 1}}}},
		domain.CollectionApplications: {{Keys: bson.D{{Key: "user_id", Value: 1}}}},
		domain.CollectionAuthEvents: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "occurred_at", Value: -1}}},
		},
	}

	for collection, indexes := range plan {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
