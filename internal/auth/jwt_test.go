package auth

import (
	"testing"

	"github.com/example/gomall/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "unit-test-secret"}

	token, err := GenerateToken(cfg, 7, "alice", RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "secret-a"}, 1, "admin", RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(&config.JWTConfig{Secret: "secret-b"}, token); err == nil {
		t.Fatal("expected parse error with wrong secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken(&config.JWTConfig{Secret: "s"}, "not-a-token"); err == nil {
		t.Fatal("expected parse error for malformed token")
	}
}
