package handler

import (
	"strings"
	"testing"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&signupRequest{Name: "A", Email: "not-an-email", Password: "pw"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"email must be a valid email", "role is required"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestValidator_RequiredPointerMeansPresent(t *testing.T) {
	v := NewValidator()
	zero := 0.0
	months := 0

	err := v.Validate(&projectRequest{Title: "P", TargetAmount: &zero, ExpectedROIPct: &zero, DurationMonths: &months})
	if err != nil {
		t.Fatalf("zero values present should pass: %v", err)
	}

	err = v.Validate(&projectRequest{Title: "P"})
	if err == nil || !strings.Contains(err.Error(), "target_amount is required") {
		t.Fatalf("expected target_amount required, got %v", err)
	}
}

func TestValidator_PasswordLengthCap(t *testing.T) {
	v := NewValidator()
	req := &signupRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73), Role: "buyer"}
	if err := v.Validate(req); err == nil {
		t.Fatalf("expected password length error")
	}
}

func TestValidator_PasswordCapCountsBytes(t *testing.T) {
	v := NewValidator()

	// 72 runes, 144 bytes.
	req := &signupRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("é", 72), Role: "buyer"}
	err := v.Validate(req)
	if err == nil || !strings.Contains(err.Error(), "password must be at most 72 bytes") {
		t.Fatalf("expected byte length error, got %v", err)
	}

	req.Password = strings.Repeat("é", 36)
	if err := v.Validate(req); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}
