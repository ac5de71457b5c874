package jwt

import (
	"testing"

	"hangouts/backend/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := ParseUserID(token)
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseUserID(token + "x"); err == nil {
		t.Error("expected a tampered token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	config.AppConfig = &config.Config{JWTSecret: "other-secret"}
	if _, err := ParseUserID(token); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}
}
