package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

func decodeUser(t *testing.T, doc bson.M) *domain.User {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var mu mongoUser
	if err := bson.Unmarshal(raw, &mu); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return mu.toDomain()
}

func TestMongoUser_MissingFieldsUseSignupDefaults(t *testing.T) {
	u := decodeUser(t, bson.M{
		"_id":   primitive.NewObjectID(),
		"email": "legacy@x.com",
		"role":  "buyer",
	})
	if !u.IsActive {
		t.Fatalf("record without is_active decoded as deactivated")
	}
	if u.KYCStatus != domain.KYCPending {
		t.Fatalf("kyc_status = %q, want pending", u.KYCStatus)
	}
}

func TestMongoUser_ExplicitDeactivationKept(t *testing.T) {
	u := decodeUser(t, bson.M{
		"_id":        primitive.NewObjectID(),
		"email":      "off@x.com",
		"is_active":  false,
		"kyc_status": "approved",
	})
	if u.IsActive {
		t.Fatalf("is_active=false decoded as active")
	}
	if u.KYCStatus != domain.KYCApproved {
		t.Fatalf("kyc_status = %q", u.KYCStatus)
	}
}

func TestToMongoUser_WritesIsActive(t *testing.T) {
	mu := toMongoUser(&domain.User{Email: "a@x.com", IsActive: false})
	if mu.IsActive == nil || *mu.IsActive {
		t.Fatalf("IsActive = %v, want explicit false", mu.IsActive)
	}
}
