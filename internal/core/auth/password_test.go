package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, pw := range []string{"pw123", "correct horse battery staple", "ñandú-☃", " "} {
		digest, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", pw, err)
		}
		if digest == pw {
			t.Fatalf("digest equals plaintext")
		}
		if !h.Verify(pw, digest) {
			t.Fatalf("Verify(%q) = false, want true", pw)
		}
		if h.Verify(pw+"x", digest) {
			t.Fatalf("Verify accepted a different password for %q", pw)
		}
	}
}

func TestHasher_SaltedDigests(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct digests for the same password")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-hash", "$2a$10$short", "pw123"} {
		if h.Verify("pw123", digest) {
			t.Fatalf("Verify accepted malformed digest %q", digest)
		}
	}
}

func TestNewHasher_ClampsCost(t *testing.T) {
	cases := map[int]int{
		0:   bcrypt.DefaultCost,
		1:   bcrypt.MinCost,
		12:  12,
		100: bcrypt.MaxCost,
	}
	for in, want := range cases {
		if got := NewHasher(in).cost; got != want {
			t.Errorf("NewHasher(%d).cost = %d, want %d", in, got, want)
		}
	}
}

func TestHasher_DigestCarriesCost(t *testing.T) {
	h := NewHasher(5)
	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("bcrypt.Cost error = %v", err)
	}
	if cost != 5 {
		t.Fatalf("cost = %d, want 5", cost)
	}
}

func TestHasher_RejectsOverlongPasswordByBytes(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if _, err := h.Hash(strings.Repeat("é", 72)); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("Hash(144 bytes) error = %v, want ErrPasswordTooLong", err)
	}
	if _, err := h.Hash(strings.Repeat("é", 36)); err != nil {
		t.Fatalf("Hash(72 bytes) error = %v", err)
	}
}
