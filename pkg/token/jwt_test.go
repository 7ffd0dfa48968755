package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	jwt := NewJWT("test-secret", 1)
	userID := uuid.New()

	signed, expiresAt, err := jwt.Issue(userID, "admin")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour {
		t.Errorf("expiry further out than configured: %v", expiresAt)
	}

	claims, err := jwt.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	signed, _, err := NewJWT("secret-one", 1).Issue(uuid.New(), "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewJWT("secret-two", 1).Verify(signed); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := NewJWT("test-secret", 1).Verify("not-a-token"); err == nil {
		t.Error("expected verification to fail for malformed input")
	}
}
