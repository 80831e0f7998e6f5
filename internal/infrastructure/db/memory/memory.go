// Package memory provides process-local implementations of the persistence
// ports. It backs local development (STORE_BACKEND=memory) and tests; data
// does not survive a restart.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// DocumentStore keeps documents per collection in insertion order.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string][]domain.Document)}
}

// Insert stores a copy of doc under a fresh ObjectID-style id.
func (s *DocumentStore) Insert(_ context.Context, collection string, doc domain.Document) (string, error) {
	id := primitive.NewObjectID().Hex()
	stored := cloneDoc(doc)
	stored["_id"] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()
	return id, nil
}

func (s *DocumentStore) Find(_ context.Context, collection string, filter domain.Filter) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, 0)
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			out = append(out, cloneDoc(doc))
		}
	}
	return out, nil
}

func (s *DocumentStore) Count(_ context.Context, collection string, filter domain.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func matches(doc domain.Document, filter domain.Filter) bool {
	for k, want := range filter {
		if got, ok := doc[k]; !ok || got != want {
			return false
		}
	}
	return true
}

func cloneDoc(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}
