package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

func TestDocumentStore_InsertFindCount(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	id, err := s.Insert(ctx, "productlisting", domain.Document{"vendor_id": "v1", "title": "Widget"})
	if err != nil || id == "" {
		t.Fatalf("Insert = %q, %v", id, err)
	}
	_, _ = s.Insert(ctx, "productlisting", domain.Document{"vendor_id": "v2", "title": "Gadget"})

	docs, _ := s.Find(ctx, "productlisting", domain.Filter{"vendor_id": "v1"})
	if len(docs) != 1 || docs[0]["_id"] != id || docs[0]["title"] != "Widget" {
		t.Fatalf("unexpected docs: %+v", docs)
	}

	docs[0]["title"] = "mutated"
	again, _ := s.Find(ctx, "productlisting", domain.Filter{"vendor_id": "v1"})
	if again[0]["title"] != "Widget" {
		t.Fatalf("Find returned a shared reference")
	}

	if n, _ := s.Count(ctx, "productlisting", nil); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
	if n, _ := s.Count(ctx, "joblisting", nil); n != 0 {
		t.Fatalf("Count on empty collection = %d", n)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentStore()
	repo := NewUserRepository(docs)

	created, err := repo.Create(ctx, &domain.User{Email: "A@x.com", Role: domain.RoleBuyer, IsActive: true})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if created.ID == "" || created.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", created)
	}

	if _, err := repo.Create(ctx, &domain.User{Email: "a@X.com"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if n, _ := docs.Count(ctx, domain.CollectionUsers, nil); n != 1 {
		t.Fatalf("user collection count = %d, want 1", n)
	}

	updated, err := repo.SetActive(ctx, "a@x.com", false)
	if err != nil || updated.IsActive {
		t.Fatalf("SetActive = %+v, %v", updated, err)
	}
	if _, err := repo.SetActive(ctx, "ghost@x.com", false); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuditRepository_AppendsToAuthEvents(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentStore()
	repo := NewAuditRepository(docs)

	err := repo.InsertAuthEvent(ctx, &domain.AuthEvent{ID: "e1", Email: "a@x.com", Kind: domain.AuthEventLoginFailed})
	if err != nil {
		t.Fatalf("InsertAuthEvent: %v", err)
	}

	n, _ := docs.Count(ctx, domain.CollectionAuthEvents, domain.Filter{"kind": "login_failed"})
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
