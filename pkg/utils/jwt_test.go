package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	config := JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	userID := uuid.New()

	token, _, err := GenerateAccessToken(config, userID, "staff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseAccessToken(config, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "staff" {
		t.Fatalf("expected role staff, got %s", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(JWTConfig{Secret: "one", ExpiryHours: 1}, uuid.New(), "guest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseAccessToken(JWTConfig{Secret: "two", ExpiryHours: 1}, token); err == nil {
		t.Fatal("expected verification failure with the wrong secret")
	}
}

func TestAccessTokenGarbage(t *testing.T) {
	if _, err := ParseAccessToken(JWTConfig{Secret: "one"}, "not-a-token"); err == nil {
		t.Fatal("expected parse failure")
	}
}
