package persist

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signKey(t *testing.T, role string, exp *time.Time) string {
	t.Helper()
	claims := KeyClaims{
		Role: role,
		Ref:  "labproject",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "supabase",
			IssuedAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("project-secret"))
	if err != nil {
		t.Fatalf("signing key: %v", err)
	}
	return token
}

func TestInspectKeyJWT(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour)
	key := signKey(t, "anon", &exp)

	info, err := InspectKey(key, time.Now())
	if err != nil {
		t.Fatalf("InspectKey: %v", err)
	}
	if !info.JWT {
		t.Error("expected key to be recognised as a JWT")
	}
	if info.Role != "anon" {
		t.Errorf("expected role 'anon', got %q", info.Role)
	}
	if info.ExpiresAt == nil || info.ExpiresAt.Unix() != exp.Unix() {
		t.Errorf("expected expiry %v, got %v", exp, info.ExpiresAt)
	}
}

func TestInspectKeyExpired(t *testing.T) {
	exp := time.Now().Add(-time.Minute)
	key := signKey(t, "anon", &exp)

	_, err := InspectKey(key, time.Now())
	if !errors.Is(err, ErrKeyExpired) {
		t.Errorf("expected ErrKeyExpired, got %v", err)
	}
}

func TestInspectKeyWithoutExpiry(t *testing.T) {
	key := signKey(t, "anon", nil)

	info, err := InspectKey(key, time.Now())
	if err != nil {
		t.Fatalf("InspectKey: %v", err)
	}
	if info.ExpiresAt != nil {
		t.Errorf("expected no expiry, got %v", info.ExpiresAt)
	}
}

func TestInspectKeyOpaque(t *testing.T) {
	info, err := InspectKey("sb_publishable_abc123", time.Now())
	if err != nil {
		t.Fatalf("expected opaque key to be accepted, got %v", err)
	}
	if info.JWT {
		t.Error("expected opaque key not to be treated as a JWT")
	}
}
