package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// UserRepository keeps users keyed by lowercased email. When constructed
// with a DocumentStore, each created user is also counted in its "user"
// collection so admin overview counts stay consistent.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	docs  *DocumentStore
}

func NewUserRepository(docs *DocumentStore) *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User), docs: docs}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	key := domain.NormalizeEmail(user.Email)

	r.mu.Lock()
	if _, exists := r.users[key]; exists {
		r.mu.Unlock()
		return nil, domain.ErrDuplicateEmail
	}
	stored := *user
	stored.ID = primitive.NewObjectID().Hex()
	stored.Email = key
	r.users[key] = &stored
	r.mu.Unlock()

	if r.docs != nil {
		r.docs.mu.Lock()
		r.docs.collections[domain.CollectionUsers] = append(r.docs.collections[domain.CollectionUsers],
			domain.Document{"_id": stored.ID, "email": key, "role": string(stored.Role)})
		r.docs.mu.Unlock()
	}

	clone := stored
	return &clone, nil
}

func (r *UserRepository) SetActive(_ context.Context, email string, active bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}
