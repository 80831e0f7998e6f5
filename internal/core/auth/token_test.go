package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

var baseTime = time.Unix(1_700_000_000, 0).UTC()

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	subjects := []string{"v@x.com", "alice@example.com", "a.b+c@sub.domain.io", "x_y-z@q.co"}

	for _, sub := range subjects {
		for _, role := range domain.Roles {
			token, err := codec.Issue(sub, role)
			if err != nil {
				t.Fatalf("Issue(%q, %q) error = %v", sub, role, err)
			}
			claims, err := codec.Verify(token)
			if err != nil {
				t.Fatalf("Verify error = %v", err)
			}
			if claims.Subject != sub || claims.Role != role {
				t.Fatalf("claims = {%q %q}, want {%q %q}", claims.Subject, claims.Role, sub, role)
			}
		}
	}
}

func TestTokenCodec_LowercasesSubject(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	token, _ := codec.Issue("Mixed@Case.COM", domain.RoleBuyer)

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if claims.Subject != "mixed@case.com" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestTokenCodec_ExpiryIsIssuedAtPlusTTL(t *testing.T) {
	codec := NewTokenCodec("secret", 0, WithClock(fixedClock(baseTime)))
	token, _ := codec.Issue("a@b.com", domain.RoleVendor)

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != DefaultTokenTTL {
		t.Fatalf("exp - iat = %v, want %v", got, DefaultTokenTTL)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	issuer := NewTokenCodec("secret", time.Minute, WithClock(fixedClock(baseTime)))
	token, _ := issuer.Issue("a@b.com", domain.RoleInvestor)
	exp := baseTime.Add(time.Minute)

	// exp = now + 1s
	before := NewTokenCodec("secret", time.Minute, WithClock(fixedClock(exp.Add(-time.Second))))
	if _, err := before.Verify(token); err != nil {
		t.Fatalf("token one second before expiry rejected: %v", err)
	}

	// exp = now - 1s
	after := NewTokenCodec("secret", time.Minute, WithClock(fixedClock(exp.Add(time.Second))))
	if _, err := after.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_ExpiredIsNotInvalid(t *testing.T) {
	issuer := NewTokenCodec("secret", time.Minute, WithClock(fixedClock(baseTime)))
	token, _ := issuer.Issue("a@b.com", domain.RoleBuyer)

	later := NewTokenCodec("secret", time.Minute, WithClock(fixedClock(baseTime.Add(time.Hour))))
	_, err := later.Verify(token)
	if errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expired token classified as invalid: %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	token, _ := NewTokenCodec("right", time.Hour).Issue("a@b.com", domain.RoleBuyer)

	_, err := NewTokenCodec("wrong", time.Hour).Verify(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "a@b.com",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenCodec("secret", time.Hour).Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for HS512 token, got %v", err)
	}
}

func TestTokenCodec_RejectsMissingClaims(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"no exp":       {"sub": "a@b.com", "role": "vendor"},
		"no sub":       {"role": "vendor", "exp": time.Now().Add(time.Hour).Unix()},
		"unknown role": {"sub": "a@b.com", "role": "superuser", "exp": time.Now().Add(time.Hour).Unix()},
	}
	codec := NewTokenCodec("secret", time.Hour)

	for name, claims := range cases {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("%s: sign: %v", name, err)
		}
		if _, err := codec.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func TestTokenCodec_VerifyIsIdempotent(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	token, _ := codec.Issue("a@b.com", domain.RoleEmployee)

	first, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("first Verify error = %v", err)
	}
	second, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("second Verify error = %v", err)
	}
	if first.Subject != second.Subject || first.Role != second.Role || !first.ExpiresAt.Equal(second.ExpiresAt.Time) || first.ID != second.ID {
		t.Fatalf("claims differ between calls: %+v vs %+v", first, second)
	}
}
