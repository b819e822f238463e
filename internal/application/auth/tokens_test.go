package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 19*time.Hour)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected subject user-1, got %s", userID)
	}
}

func TestTokensDifferAcrossIssuances(t *testing.T) {
	svc := NewTokenService("test-secret", 19*time.Hour)

	base := time.Now()
	svc.now = func() time.Time { return base }
	first, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Second) }
	second, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if first == second {
		t.Error("tokens issued at different times should differ")
	}
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", 19*time.Hour)

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(18*time.Hour + 59*time.Minute) }
	if _, err := svc.Validate(token); err != nil {
		t.Errorf("token should still be valid at 18h59m: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(19*time.Hour + 1*time.Minute) }
	_, err = svc.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired at 19h01m, got %v", err)
	}
}

func TestWrongSecretIsMalformed(t *testing.T) {
	issuer := NewTokenService("secret-a", 19*time.Hour)
	validator := NewTokenService("secret-b", 19*time.Hour)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = validator.Validate(token)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed for foreign secret, got %v", err)
	}
}

func TestGarbageTokenIsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", 19*time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestMissingSecret(t *testing.T) {
	svc := NewTokenService("", 19*time.Hour)

	if svc.Ready() {
		t.Error("service with empty secret must not report ready")
	}
	if _, err := svc.Issue("user-1"); !errors.Is(err, ErrSecretMissing) {
		t.Errorf("Issue: expected ErrSecretMissing, got %v", err)
	}
	if _, err := svc.Validate("anything"); !errors.Is(err, ErrSecretMissing) {
		t.Errorf("Validate: expected ErrSecretMissing, got %v", err)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	svc := NewTokenService("test-secret", 19*time.Hour)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	first, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("first Validate failed: %v", err)
	}
	second, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if first != second {
		t.Errorf("Validate not idempotent: %s vs %s", first, second)
	}
}
