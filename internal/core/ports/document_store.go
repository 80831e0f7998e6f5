package ports

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// DocumentStore is the narrow persistence contract for marketplace
// collections. Failures to reach the backing store are reported wrapped in
// domain.ErrStoreUnavailable.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc domain.Document) (string, error)
	// Find returns matching documents in no particular order, each with "_id"
	// rendered as a string.
	Find(ctx context.Context, collection string, filter domain.Filter) ([]domain.Document, error)
	Count(ctx context.Context, collection string, filter domain.Filter) (int64, error)
}
