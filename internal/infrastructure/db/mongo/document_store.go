package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// DocumentStore implements ports.DocumentStore over a MongoDB database.
type DocumentStore struct {
	db *mongo.Database
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

// Insert writes doc and returns the generated ObjectID as a hex string.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc domain.Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := primitive.NewObjectID()
	record := bson.M{"_id": id}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		record[k] = v
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("%w: insert into %s: %w", domain.ErrStoreUnavailable, collection, err)
	}
	return id.Hex(), nil
}

// Find returns every document matching filter with _id coerced to a string.
func (s *DocumentStore) Find(ctx context.Context, collection string, filter domain.Filter) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(collection).Find(ctx, toBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("%w: find in %s: %w", domain.ErrStoreUnavailable, collection, err)
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStoreUnavailable, collection, err)
	}

	out := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (s *DocumentStore) Count(ctx context.Context, collection string, filter domain.Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %w", domain.ErrStoreUnavailable, collection, err)
	}
	return n, nil
}

func toBSON(filter domain.Filter) bson.M {
	out := bson.M{}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func fromBSON(m bson.M) domain.Document {
	doc := make(domain.Document, len(m))
	for k, v := range m {
		doc[k] = v
	}
	if oid, ok := m["_id"].(primitive.ObjectID); ok {
		doc["_id"] = oid.Hex()
	}
	return doc
}
